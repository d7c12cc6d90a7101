package highlight

import (
	"numlens/internal/annotate"
)

// HighlightProgram highlights the primary source as Python and wraps every
// intermediate so that its source renderings come back highlighted as
// LLVM IR. Dot renderings pass through untouched.
func (h *Highlighter) HighlightProgram(p annotate.Program) (annotate.Program, error) {
	src, err := h.HighlightSource(p.PythonSource, LangPython)
	if err != nil {
		return annotate.Program{}, err
	}
	out := annotate.Program{PythonSource: src, Intermediates: make([]annotate.Intermediate, len(p.Intermediates))}
	for i, ir := range p.Intermediates {
		if ir.Renderer == nil {
			out.Intermediates[i] = ir
			continue
		}
		out.Intermediates[i] = annotate.Intermediate{
			Name:     ir.Name,
			Renderer: &irRenderer{inner: ir.Renderer, h: h},
		}
	}
	return out, nil
}

type irRenderer struct {
	inner annotate.Renderer
	h     *Highlighter
}

func (r *irRenderer) Capabilities() annotate.CapabilitySet { return r.inner.Capabilities() }

func (r *irRenderer) Render(c annotate.Capability) (annotate.Rendering, error) {
	rendering, err := r.inner.Render(c)
	if err != nil {
		return nil, err
	}
	sr, ok := rendering.(annotate.SourceRendering)
	if !ok {
		return rendering, nil
	}
	src, err := r.h.HighlightSource(sr.Source, LangLLVM)
	if err != nil {
		return nil, err
	}
	return annotate.SourceRendering{LinenoMap: sr.LinenoMap, Source: src}, nil
}
