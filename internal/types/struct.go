package types

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// StructField describes a single named field of a struct type.
type StructField struct {
	Name string
	Type TypeID
}

// StructInfo stores metadata for a struct type.
type StructInfo struct {
	Fields []StructField
	Packed bool
}

// Struct interns a struct with the given ordered fields. Structs are
// structural: equal field lists with equal packing share a TypeID.
func (in *Interner) Struct(fields []StructField, packed bool) TypeID {
	key := structKey(fields, packed)
	if slot, ok := in.sindex[key]; ok {
		return in.Intern(Type{Kind: KindStruct, Payload: slot})
	}
	slot, err := safecast.Conv[uint32](len(in.structs))
	if err != nil {
		panic(fmt.Errorf("struct info overflow: %w", err))
	}
	in.structs = append(in.structs, StructInfo{Fields: slices.Clone(fields), Packed: packed})
	in.sindex[key] = slot
	return in.Intern(Type{Kind: KindStruct, Payload: slot})
}

// StructInfo returns metadata for the provided struct TypeID.
func (in *Interner) StructInfo(typeID TypeID) (*StructInfo, bool) {
	tt, ok := in.Lookup(typeID)
	if !ok || tt.Kind != KindStruct {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.structs) {
		return nil, false
	}
	return &in.structs[tt.Payload], true
}

// StructFields returns a copy of struct fields for the TypeID.
func (in *Interner) StructFields(typeID TypeID) []StructField {
	info, ok := in.StructInfo(typeID)
	if !ok || len(info.Fields) == 0 {
		return nil
	}
	return slices.Clone(info.Fields)
}

func structKey(fields []StructField, packed bool) string {
	var sb strings.Builder
	if packed {
		sb.WriteString("packed:")
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, "%s=%d;", f.Name, f.Type)
	}
	return sb.String()
}
