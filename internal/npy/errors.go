package npy

import "fmt"

// UnmappableTypeError reports a descriptor the compiler refuses to map,
// such as numeric data in non-native byte order.
type UnmappableTypeError struct {
	Desc   Descriptor
	Reason string
}

func (e *UnmappableTypeError) Error() string {
	return fmt.Sprintf("unmappable type %s: %s", e.Desc.Str(), e.Reason)
}

// UnsupportedDescriptorError reports a kind/size combination with no
// matching type tag.
type UnsupportedDescriptorError struct {
	Desc   Descriptor
	Reason string
}

func (e *UnsupportedDescriptorError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("no type for descriptor %s", e.Desc.Str())
	}
	return fmt.Sprintf("no type for descriptor %s: %s", e.Desc.Str(), e.Reason)
}

// ConversionError reports a type tag with no descriptor.
type ConversionError struct {
	Label string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert '%s' to numpy type", e.Label)
}

// ParseError reports a malformed typestr or descr document.
type ParseError struct {
	Input string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid dtype %q: %s", e.Input, e.Msg)
}
