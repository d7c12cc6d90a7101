package annotate

import (
	"fmt"
	"iter"
)

// Resolved is an intermediate rendered for one capability.
type Resolved struct {
	Name      string
	Rendering Rendering
}

// ResolvedSource is an intermediate rendered with CapSource.
type ResolvedSource struct {
	Name      string
	LinenoMap LinenoMap
	Source    Source
}

// SelectIntermediates renders the requested intermediates in the order of
// names. Intermediates whose renderer lacks the capability are skipped.
// A name missing from the program yields ErrUnknownIntermediate and ends
// the sequence, as does a failing Render call.
//
// The sequence is lazy: nothing is rendered until it is ranged over.
func SelectIntermediates(p Program, names []string, capability Capability) iter.Seq2[Resolved, error] {
	return func(yield func(Resolved, error) bool) {
		reg := p.registry()
		for _, name := range names {
			in, ok := reg[name]
			if !ok {
				yield(Resolved{Name: name}, fmt.Errorf("%w: %q", ErrUnknownIntermediate, name))
				return
			}
			if in.Renderer == nil || !in.Renderer.Capabilities().Has(capability) {
				continue
			}
			rendering, err := in.Renderer.Render(capability)
			if err != nil {
				yield(Resolved{Name: name}, fmt.Errorf("render %s as %s: %w", name, capability, err))
				return
			}
			if !yield(Resolved{Name: name, Rendering: rendering}, nil) {
				return
			}
		}
	}
}

// ResolveSources collects the CapSource renderings of the requested
// intermediates.
func ResolveSources(p Program, names []string) ([]ResolvedSource, error) {
	var out []ResolvedSource
	for r, err := range SelectIntermediates(p, names, CapSource) {
		if err != nil {
			return nil, err
		}
		src, ok := r.Rendering.(SourceRendering)
		if !ok {
			return nil, fmt.Errorf("%w: %s answered %s with %T", ErrUnexpectedRendering, r.Name, CapSource, r.Rendering)
		}
		out = append(out, ResolvedSource{Name: r.Name, LinenoMap: src.LinenoMap, Source: src.Source})
	}
	return out, nil
}

// DotGraph is the graphviz rendering of one intermediate.
type DotGraph struct {
	Name  string
	Graph string
}

// SelectDot yields the graphviz renderings of the requested intermediates
// that support CapDot.
func SelectDot(p Program, names []string) iter.Seq2[DotGraph, error] {
	return func(yield func(DotGraph, error) bool) {
		for r, err := range SelectIntermediates(p, names, CapDot) {
			if err != nil {
				yield(DotGraph{Name: r.Name}, err)
				return
			}
			dot, ok := r.Rendering.(DotRendering)
			if !ok {
				yield(DotGraph{Name: r.Name}, fmt.Errorf("%w: %s answered %s with %T", ErrUnexpectedRendering, r.Name, CapDot, r.Rendering))
				return
			}
			if !yield(DotGraph{Name: r.Name, Graph: dot.Graph}, nil) {
				return
			}
		}
	}
}
