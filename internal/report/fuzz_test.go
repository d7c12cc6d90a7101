package report

import (
	"bytes"
	"testing"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzDecode(f *testing.F) {
	f.Add([]byte(sampleJSON), uint8(CodecJSON))
	f.Add([]byte(sampleYAML), uint8(CodecYAML))
	f.Add([]byte(`{"format":"1.0.0","source":{"lines":{"0":""}}}`), uint8(CodecJSON))
	f.Add([]byte{0x81, 0xa6, 'f', 'o', 'r', 'm', 'a', 't', 0xa5, '1', '.', '0', '.', '0'}, uint8(CodecMsgpack))
	f.Fuzz(func(t *testing.T, data []byte, c uint8) {
		if len(data) > maxFuzzInput {
			data = data[:maxFuzzInput]
		}
		codec := Codec(c%3 + 1)
		doc, err := Decode(data, codec)
		if err != nil || Validate(doc) != nil {
			return
		}
		// Anything that validates must render without panicking and
		// survive re-encoding.
		_ = Program(doc)
		var buf bytes.Buffer
		if err := Encode(&buf, doc, CodecMsgpack); err != nil {
			t.Fatalf("encode: %v", err)
		}
		if _, err := Decode(buf.Bytes(), CodecMsgpack); err != nil {
			t.Fatalf("re-decode: %v", err)
		}
	})
}
