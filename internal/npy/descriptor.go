package npy

import (
	"fmt"
	"strings"

	"golang.org/x/sys/cpu"
)

// Kind letters of descriptors.
const (
	KindInt     byte = 'i'
	KindUint    byte = 'u'
	KindFloat   byte = 'f'
	KindBool    byte = 'b'
	KindComplex byte = 'c'
	KindVoid    byte = 'V'
	KindObject  byte = 'O'
)

// Byte-order characters.
const (
	OrderNative byte = '='
	OrderLittle byte = '<'
	OrderBig    byte = '>'
	OrderNA     byte = '|'
)

// NativeOrder is the explicit byte-order character of the host.
var NativeOrder = func() byte {
	if cpu.IsBigEndian {
		return OrderBig
	}
	return OrderLittle
}()

// Field is a named member of a structured descriptor.
type Field struct {
	Name   string
	Desc   Descriptor
	Offset int
}

// Descriptor describes the layout of one array element.
type Descriptor struct {
	Kind            byte
	ItemSize        int
	ByteOrder       byte
	Alignment       int
	Fields          []Field
	IsAlignedStruct bool
}

// Numeric reports whether the kind is one whose byte order matters.
func (d Descriptor) Numeric() bool {
	return strings.IndexByte("iufbc", d.Kind) >= 0
}

// NativeByteOrder reports whether d can be read without byte swapping.
func (d Descriptor) NativeByteOrder() bool {
	switch d.ByteOrder {
	case OrderNative, OrderNA, 0:
		return true
	default:
		return d.ByteOrder == NativeOrder
	}
}

// resolvedOrder is the byte-order character as written in a typestr.
func (d Descriptor) resolvedOrder() byte {
	if d.ItemSize <= 1 || d.Kind == KindVoid || d.Kind == KindObject || d.ByteOrder == OrderNA {
		return OrderNA
	}
	if d.ByteOrder == OrderNative || d.ByteOrder == 0 {
		return NativeOrder
	}
	return d.ByteOrder
}

// Str renders the array-interface typestr, e.g. "<i4" or "|V16".
func (d Descriptor) Str() string {
	return fmt.Sprintf("%c%c%d", d.resolvedOrder(), d.Kind, d.ItemSize)
}

// String renders scalars as their typestr and records in the NumPy repr
// style.
func (d Descriptor) String() string {
	if d.Kind != KindVoid || len(d.Fields) == 0 {
		return d.Str()
	}
	parts := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		parts[i] = fmt.Sprintf("('%s', %s)", f.Name, f.Desc.fieldRepr())
	}
	s := "dtype([" + strings.Join(parts, ", ") + "]"
	if d.IsAlignedStruct {
		s += ", align=True"
	}
	return s + ")"
}

func (d Descriptor) fieldRepr() string {
	if d.Kind == KindVoid && len(d.Fields) > 0 {
		parts := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			parts[i] = fmt.Sprintf("('%s', %s)", f.Name, f.Desc.fieldRepr())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "'" + d.Str() + "'"
}

// Equal reports whether two descriptors describe the same layout. Native
// and explicit host byte order compare equal.
func (d Descriptor) Equal(o Descriptor) bool {
	if d.Kind != o.Kind || d.ItemSize != o.ItemSize || d.resolvedOrder() != o.resolvedOrder() {
		return false
	}
	if d.IsAlignedStruct != o.IsAlignedStruct || len(d.Fields) != len(o.Fields) {
		return false
	}
	for i := range d.Fields {
		a, b := d.Fields[i], o.Fields[i]
		if a.Name != b.Name || a.Offset != b.Offset || !a.Desc.Equal(b.Desc) {
			return false
		}
	}
	return true
}
