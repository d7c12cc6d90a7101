package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the kinds of scalar and composite type tags.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindComplex
	KindObject
	KindStruct
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindComplex:
		return "complex"
	case KindObject:
		return "object"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width is the precision of a numeric type in bits. Complex widths cover
// both components (complex128 is two float64).
type Width uint16

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
	Width128 Width = 128
	Width256 Width = 256
)

// Bytes returns the width in bytes.
func (w Width) Bytes() int {
	return int(w) / 8
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Width   Width  // numeric kinds
	Elem    TypeID // arrays
	Ndim    uint8  // arrays
	Name    string // C spelling of named aliases ("long", "double"); empty otherwise
	Payload uint32 // struct slot
}

// Descriptor helpers ---------------------------------------------------------

// MakeInt describes a signed integer of the given width.
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width}
}

// MakeComplex describes a complex type; width covers both components.
func MakeComplex(width Width) Type {
	return Type{Kind: KindComplex, Width: width}
}

// MakeNamed attaches a C spelling to a numeric descriptor. Named types are
// distinct from their sized counterparts (long is not int64) but share
// their width and signedness.
func MakeNamed(name string, t Type) Type {
	t.Name = name
	return t
}

// MakeArray describes an ndim-dimensional array of elem.
func MakeArray(elem TypeID, ndim uint8) Type {
	return Type{Kind: KindArray, Elem: elem, Ndim: ndim}
}

// IsInt reports whether t is a signed or unsigned integer.
func (t Type) IsInt() bool {
	return t.Kind == KindInt || t.Kind == KindUint
}

// Signed reports whether t is a signed integer.
func (t Type) Signed() bool {
	return t.Kind == KindInt
}
