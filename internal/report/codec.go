package report

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Codec is a serialization format of report documents.
type Codec uint8

const (
	CodecJSON Codec = iota + 1
	CodecYAML
	CodecMsgpack
)

func (c Codec) String() string {
	switch c {
	case CodecJSON:
		return "json"
	case CodecYAML:
		return "yaml"
	case CodecMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// CodecFromPath picks the codec from the file extension.
func CodecFromPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return CodecJSON, nil
	case ".yaml", ".yml":
		return CodecYAML, nil
	case ".mp", ".msgpack":
		return CodecMsgpack, nil
	default:
		return 0, fmt.Errorf("%s: unknown report extension (expected .json, .yaml, .yml, .mp or .msgpack)", path)
	}
}

// Decode reads a document from data.
func Decode(data []byte, codec Codec) (Document, error) {
	var doc Document
	var err error
	switch codec {
	case CodecJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case CodecYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	case CodecMsgpack:
		err = msgpack.Unmarshal(data, &doc)
	default:
		return Document{}, fmt.Errorf("unknown codec %d", codec)
	}
	if err != nil {
		return Document{}, fmt.Errorf("decode %s report: %w", codec, err)
	}
	return doc, nil
}

// Encode writes doc to w.
func Encode(w io.Writer, doc Document, codec Codec) error {
	switch codec {
	case CodecJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case CodecYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case CodecMsgpack:
		return msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("unknown codec %d", codec)
	}
}
