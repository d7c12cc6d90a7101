package highlight

import (
	"strings"
	"unicode"

	"numlens/internal/annotate"
)

// HighlightSource returns a copy of src whose lines are highlighted for
// the console. Annotations are shared with src. Each line is highlighted
// on its own and its indentation is kept outside the escape sequences so
// annotation blocks still line up under the code.
func (h *Highlighter) HighlightSource(src annotate.Source, lang Language) (annotate.Source, error) {
	out := annotate.Source{
		Linemap:     make(annotate.Linemap, len(src.Linemap)),
		Annotations: src.Annotations,
	}
	for _, lineno := range src.Linemap.Lines() {
		line := src.Linemap[lineno]
		code := strings.TrimLeftFunc(line, unicode.IsSpace)
		indent := line[:len(line)-len(code)]
		if code == "" {
			out.Linemap[lineno] = line
			continue
		}
		lit, err := h.Lex(code, lang, OutputConsole, false)
		if err != nil {
			return annotate.Source{}, err
		}
		out.Linemap[lineno] = indent + strings.TrimRight(lit, "\n")
	}
	return out, nil
}
