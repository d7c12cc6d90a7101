package types

import (
	"fmt"
	"strings"
)

// Label returns a user-friendly label for a TypeID.
func Label(typesIn *Interner, id TypeID) string {
	return labelDepth(typesIn, id, 0)
}

func labelDepth(typesIn *Interner, id TypeID, depth int) string {
	if id == NoTypeID {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	if tt.Name != "" {
		return tt.Name
	}
	switch tt.Kind {
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindInt:
		return fmt.Sprintf("int%d", tt.Width)
	case KindUint:
		return fmt.Sprintf("uint%d", tt.Width)
	case KindFloat:
		return fmt.Sprintf("float%d", tt.Width)
	case KindComplex:
		return fmt.Sprintf("complex%d", tt.Width)
	case KindArray:
		dims := make([]string, tt.Ndim)
		for i := range dims {
			dims[i] = ":"
		}
		return labelDepth(typesIn, tt.Elem, depth+1) + "[" + strings.Join(dims, ", ") + "]"
	case KindStruct:
		info, ok := typesIn.StructInfo(id)
		if !ok {
			return "struct { ? }"
		}
		parts := make([]string, len(info.Fields))
		for i, f := range info.Fields {
			parts[i] = f.Name + ": " + labelDepth(typesIn, f.Type, depth+1)
		}
		prefix := "struct"
		if info.Packed {
			prefix = "packed struct"
		}
		if len(parts) == 0 {
			return prefix + " {}"
		}
		return prefix + " { " + strings.Join(parts, ", ") + " }"
	default:
		return tt.Kind.String()
	}
}

// Find looks up a scalar type by its label ("int32", "double", "object").
func (in *Interner) Find(name string) (TypeID, bool) {
	if in == nil {
		return NoTypeID, false
	}
	for i, tt := range in.types {
		if tt.Kind == KindInvalid || tt.Kind == KindStruct || tt.Kind == KindArray {
			continue
		}
		id := TypeID(i)
		if Label(in, id) == name {
			return id, true
		}
	}
	return NoTypeID, false
}
