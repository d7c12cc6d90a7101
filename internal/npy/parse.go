package npy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// charCodes are the single-character type codes of the LP64 model.
var charCodes = map[byte]Descriptor{
	'?': scalar(KindBool, 1),
	'b': scalar(KindInt, 1),
	'B': scalar(KindUint, 1),
	'h': scalar(KindInt, 2),
	'H': scalar(KindUint, 2),
	'i': scalar(KindInt, 4),
	'I': scalar(KindUint, 4),
	'l': scalar(KindInt, 8),
	'L': scalar(KindUint, 8),
	'q': scalar(KindInt, 8),
	'Q': scalar(KindUint, 8),
	'e': scalar(KindFloat, 2),
	'f': scalar(KindFloat, 4),
	'd': scalar(KindFloat, 8),
	'g': scalar(KindFloat, 16),
	'F': scalar(KindComplex, 8),
	'D': scalar(KindComplex, 16),
	'G': scalar(KindComplex, 32),
	'O': scalar(KindObject, 8),
}

// ParseTypestr parses an array-interface typestr ("<i4", "|b1", "f8") or a
// single-character type code ("l", "d").
func ParseTypestr(s string) (Descriptor, error) {
	in := s
	s = strings.TrimSpace(s)
	if s == "" {
		return Descriptor{}, &ParseError{Input: in, Msg: "empty"}
	}
	if len(s) == 1 {
		if d, ok := charCodes[s[0]]; ok {
			return d, nil
		}
		return Descriptor{}, &ParseError{Input: in, Msg: "unknown type code"}
	}

	order := OrderNative
	switch s[0] {
	case OrderNative, OrderLittle, OrderBig, OrderNA:
		order = s[0]
		s = s[1:]
	}
	if s == "" {
		return Descriptor{}, &ParseError{Input: in, Msg: "missing kind"}
	}
	kind := s[0]
	if strings.IndexByte("iufbcVO", kind) < 0 {
		if d, ok := charCodes[kind]; ok && len(s) == 1 {
			d.ByteOrder = order
			return d, nil
		}
		return Descriptor{}, &ParseError{Input: in, Msg: fmt.Sprintf("unknown kind %q", kind)}
	}
	size := 0
	if digits := s[1:]; digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil || n <= 0 {
			return Descriptor{}, &ParseError{Input: in, Msg: "invalid item size"}
		}
		size = n
	}
	switch {
	case kind == KindObject && size == 0:
		size = 8
	case size == 0:
		return Descriptor{}, &ParseError{Input: in, Msg: "missing item size"}
	}

	d := scalar(kind, size)
	if kind == KindVoid {
		d.Alignment = 1
	}
	if d.ByteOrder != OrderNA {
		d.ByteOrder = order
	}
	return d, nil
}

// ParseDescr parses a structured descriptor in the JSON form of the
// array-interface descr protocol:
//
//	[["x", "<i4"], ["pt", [["a", "<f8"], ["b", "<f8"]]]]
//
// The result carries field names, field types and the aligned flag only;
// offsets and item size are left for Mapper.LayoutRecord.
func ParseDescr(data []byte, aligned bool) (Descriptor, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Descriptor{}, &ParseError{Input: string(data), Msg: err.Error()}
	}
	return descrFields(raw, aligned)
}

func descrFields(raw []json.RawMessage, aligned bool) (Descriptor, error) {
	d := Descriptor{Kind: KindVoid, ByteOrder: OrderNA, IsAlignedStruct: aligned}
	for _, entry := range raw {
		var pair []json.RawMessage
		if err := json.Unmarshal(entry, &pair); err != nil || len(pair) != 2 {
			return Descriptor{}, &ParseError{Input: string(entry), Msg: "expected [name, type]"}
		}
		var name string
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return Descriptor{}, &ParseError{Input: string(pair[0]), Msg: "field name must be a string"}
		}
		var typestr string
		if err := json.Unmarshal(pair[1], &typestr); err == nil {
			fd, err := ParseTypestr(typestr)
			if err != nil {
				return Descriptor{}, err
			}
			d.Fields = append(d.Fields, Field{Name: name, Desc: fd})
			continue
		}
		var nested []json.RawMessage
		if err := json.Unmarshal(pair[1], &nested); err != nil {
			return Descriptor{}, &ParseError{Input: string(pair[1]), Msg: "field type must be a typestr or a descr list"}
		}
		fd, err := descrFields(nested, aligned)
		if err != nil {
			return Descriptor{}, err
		}
		d.Fields = append(d.Fields, Field{Name: name, Desc: fd})
	}
	return d, nil
}

// Descr renders d in the JSON descr form accepted by ParseDescr.
func (d Descriptor) Descr() ([]byte, error) {
	return json.Marshal(d.descrValue())
}

func (d Descriptor) descrValue() any {
	if d.Kind != KindVoid || len(d.Fields) == 0 {
		return d.Str()
	}
	out := make([][2]any, len(d.Fields))
	for i, f := range d.Fields {
		out[i] = [2]any{f.Name, f.Desc.descrValue()}
	}
	return out
}
