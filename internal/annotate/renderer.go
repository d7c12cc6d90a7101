package annotate

import (
	"errors"
	"fmt"
	"slices"
)

// Capability names a rendering mode of a Renderer.
type Capability string

const (
	// CapDot renders a graphviz description.
	CapDot Capability = "dot"
	// CapSource renders annotated source plus a line-number mapping back
	// to the primary source.
	CapSource Capability = "source"
)

// CapabilitySet is the declared set of capabilities of a Renderer.
type CapabilitySet []Capability

// Has reports whether c is declared in the set.
func (s CapabilitySet) Has(c Capability) bool {
	return slices.Contains(s, c)
}

var (
	// ErrUnsupportedCapability is returned by Render for a capability the
	// renderer does not declare.
	ErrUnsupportedCapability = errors.New("unsupported rendering capability")
	// ErrUnknownIntermediate is returned when a requested intermediate is not
	// registered in the program.
	ErrUnknownIntermediate = errors.New("unknown intermediate")
	// ErrUnexpectedRendering is returned when a renderer answers a capability
	// with the wrong variant.
	ErrUnexpectedRendering = errors.New("unexpected rendering variant")
)

// UnsupportedCapability builds the error a Renderer returns for c.
func UnsupportedCapability(c Capability) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedCapability, c)
}

// Renderer renders an intermediate representation.
type Renderer interface {
	Capabilities() CapabilitySet
	Render(c Capability) (Rendering, error)
}

// Rendering is the result of Renderer.Render; the concrete variant is
// determined by the capability that produced it.
type Rendering interface {
	Capability() Capability
}

// SourceRendering is the CapSource variant.
type SourceRendering struct {
	LinenoMap LinenoMap
	Source    Source
}

// Capability implements Rendering.
func (SourceRendering) Capability() Capability { return CapSource }

// DotRendering is the CapDot variant.
type DotRendering struct {
	Graph string
}

// Capability implements Rendering.
func (DotRendering) Capability() Capability { return CapDot }
