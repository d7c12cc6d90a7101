package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the scalar types.
type Builtins struct {
	Invalid TypeID
	Bool    TypeID
	Object  TypeID

	Int8, Int16, Int32, Int64     TypeID
	Uint8, Uint16, Uint32, Uint64 TypeID

	Float32, Float64, Float128        TypeID
	Complex64, Complex128, Complex256 TypeID

	// C spellings
	Short, CInt, Long, LongLong    TypeID
	UShort, UInt, ULong, ULongLong TypeID
	Float, Double, LongDouble      TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	structs  []StructInfo
	sindex   map[string]uint32
}

// NewInterner constructs an interner seeded with built-in scalars.
func NewInterner() *Interner {
	in := &Interner{
		index:  make(map[Type]TypeID, 64),
		sindex: make(map[string]uint32, 8),
	}
	in.structs = append(in.structs, StructInfo{}) // reserve 0 as invalid sentinel
	b := &in.builtins
	b.Invalid = in.internRaw(Type{Kind: KindInvalid})
	b.Bool = in.Intern(Type{Kind: KindBool})
	b.Object = in.Intern(Type{Kind: KindObject})

	b.Int8 = in.Intern(MakeInt(Width8))
	b.Int16 = in.Intern(MakeInt(Width16))
	b.Int32 = in.Intern(MakeInt(Width32))
	b.Int64 = in.Intern(MakeInt(Width64))
	b.Uint8 = in.Intern(MakeUint(Width8))
	b.Uint16 = in.Intern(MakeUint(Width16))
	b.Uint32 = in.Intern(MakeUint(Width32))
	b.Uint64 = in.Intern(MakeUint(Width64))

	b.Float32 = in.Intern(MakeFloat(Width32))
	b.Float64 = in.Intern(MakeFloat(Width64))
	b.Float128 = in.Intern(MakeFloat(Width128))
	b.Complex64 = in.Intern(MakeComplex(Width64))
	b.Complex128 = in.Intern(MakeComplex(Width128))
	b.Complex256 = in.Intern(MakeComplex(Width256))

	// LP64 data model.
	b.Short = in.Intern(MakeNamed("short", MakeInt(Width16)))
	b.CInt = in.Intern(MakeNamed("int", MakeInt(Width32)))
	b.Long = in.Intern(MakeNamed("long", MakeInt(Width64)))
	b.LongLong = in.Intern(MakeNamed("longlong", MakeInt(Width64)))
	b.UShort = in.Intern(MakeNamed("ushort", MakeUint(Width16)))
	b.UInt = in.Intern(MakeNamed("uint", MakeUint(Width32)))
	b.ULong = in.Intern(MakeNamed("ulong", MakeUint(Width64)))
	b.ULongLong = in.Intern(MakeNamed("ulonglong", MakeUint(Width64)))
	b.Float = in.Intern(MakeNamed("float", MakeFloat(Width32)))
	b.Double = in.Intern(MakeNamed("double", MakeFloat(Width64)))
	b.LongDouble = in.Intern(MakeNamed("longdouble", MakeFloat(Width128)))
	return in
}

// Builtins returns TypeIDs for scalar types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Array interns an ndim-dimensional array of elem.
func (in *Interner) Array(elem TypeID, ndim uint8) TypeID {
	return in.Intern(MakeArray(elem, ndim))
}
