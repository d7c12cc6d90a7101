package report

import (
	"golang.org/x/text/unicode/norm"

	"numlens/internal/annotate"
)

// StaticRenderer serves precomputed renderings of one intermediate.
type StaticRenderer struct {
	caps   annotate.CapabilitySet
	source annotate.SourceRendering
	dot    string
}

// Capabilities implements annotate.Renderer.
func (r *StaticRenderer) Capabilities() annotate.CapabilitySet { return r.caps }

// Render implements annotate.Renderer.
func (r *StaticRenderer) Render(c annotate.Capability) (annotate.Rendering, error) {
	if !r.caps.Has(c) {
		return nil, annotate.UnsupportedCapability(c)
	}
	switch c {
	case annotate.CapSource:
		return r.source, nil
	case annotate.CapDot:
		return annotate.DotRendering{Graph: r.dot}, nil
	}
	return nil, annotate.UnsupportedCapability(c)
}

// Program converts a validated document into an annotate.Program.
func Program(doc Document) annotate.Program {
	p := annotate.Program{PythonSource: toSource(doc.Source)}
	for _, ir := range doc.Intermediates {
		p.Intermediates = append(p.Intermediates, annotate.Intermediate{
			Name:     ir.Name,
			Renderer: newStaticRenderer(ir),
		})
	}
	return p
}

func newStaticRenderer(ir IntermediateDoc) *StaticRenderer {
	r := &StaticRenderer{dot: ir.Dot}
	if ir.Source != nil {
		r.source = annotate.SourceRendering{
			LinenoMap: annotate.LinenoMap(ir.LinenoMap),
			Source:    toSource(*ir.Source),
		}
	}
	if len(ir.Capabilities) > 0 {
		for _, c := range ir.Capabilities {
			r.caps = append(r.caps, annotate.Capability(c))
		}
		return r
	}
	if ir.Source != nil {
		r.caps = append(r.caps, annotate.CapSource)
	}
	if ir.Dot != "" {
		r.caps = append(r.caps, annotate.CapDot)
	}
	return r
}

func toSource(doc SourceDoc) annotate.Source {
	src := annotate.Source{
		Linemap:     make(annotate.Linemap, len(doc.Lines)),
		Annotations: make(map[int][]annotate.Annotation, len(doc.Annotations)),
	}
	for lineno, line := range doc.Lines {
		src.Linemap[lineno] = norm.NFC.String(line)
	}
	for lineno, annots := range doc.Annotations {
		out := make([]annotate.Annotation, 0, len(annots))
		for _, a := range annots {
			out = append(out, annotate.Annotation{Type: annotate.Category(a.Type), Value: a.Value})
		}
		src.Annotations[lineno] = out
	}
	return src
}
