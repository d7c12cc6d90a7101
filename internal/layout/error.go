package layout

import (
	"fmt"

	"numlens/internal/types"
)

// LayoutErrorKind enumerates types of layout calculation errors.
type LayoutErrorKind uint8

const (
	// LayoutErrUnsized indicates a type with no fixed in-memory size
	// (array views).
	LayoutErrUnsized LayoutErrorKind = iota + 1
	// LayoutErrUnknownType indicates a TypeID missing from the interner.
	LayoutErrUnknownType
)

// LayoutError represents an error during memory layout calculation.
type LayoutError struct {
	Kind  LayoutErrorKind
	Type  types.TypeID
	Label string
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case LayoutErrUnsized:
		return fmt.Sprintf("type %s has no fixed size", e.Label)
	case LayoutErrUnknownType:
		return fmt.Sprintf("unknown type#%d", e.Type)
	default:
		return fmt.Sprintf("layout error kind=%d type#%d", e.Kind, e.Type)
	}
}
