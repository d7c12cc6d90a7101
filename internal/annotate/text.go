package annotate

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	gutterWidth  = 4
	annotWidth   = 40
	sectionWidth = 80
	baseIndent   = 8
	headerIndent = 8
	annotSep     = "-"
	annotMarker  = "||"
	sectionFill  = "="
	blankHeader  = "     |  "
)

// TextOptions controls RenderText.
type TextOptions struct {
	// Intermediates lists the intermediates to show, e.g. ["llvm"].
	Intermediates []string
	// Inline shows intermediate code under each annotated line instead of
	// in trailing sections.
	Inline bool
}

// LineKind classifies a line of the text report.
type LineKind uint8

const (
	LineCode       LineKind = iota // numbered source line
	LineSeparator                  // rule opening and closing an annotation block
	LineSection                    // banner and closing rule of a separate section
	LineBanner                     // name banner of an inline intermediate
	LineAnnotation                 // "<category>: <values>"
	LineIR                         // inline intermediate code
)

// LineWriter receives the report one line at a time together with the
// line's kind. text carries neither the indentation nor the newline.
// RenderText uses it when the destination implements it.
type LineWriter interface {
	WriteLine(kind LineKind, indent int, text string) error
}

// emitter writes report lines, remembering the first write error.
type emitter struct {
	w   io.Writer
	lw  LineWriter
	err error
}

func newEmitter(w io.Writer) *emitter {
	e := newEmitter(w)
	e.lw, _ = w.(LineWriter)
	return e
}

func (e *emitter) emitline(kind LineKind, indent int, s string) {
	if e.err != nil {
		return
	}
	if e.lw != nil {
		e.err = e.lw.WriteLine(kind, indent, s)
		return
	}
	_, e.err = io.WriteString(e.w, strings.Repeat(" ", indent)+s+"\n")
}

// RenderText writes the text report of p to w.
func RenderText(w io.Writer, p Program, opts TextOptions) error {
	irs, err := ResolveSources(p, opts.Intermediates)
	if err != nil {
		return err
	}
	e := newEmitter(w)

	var inline []ResolvedSource
	if opts.Inline {
		inline = irs
	}
	renderSource(p.PythonSource, e, baseIndent, inline, nil)

	if !opts.Inline && len(irs) > 0 {
		for _, ir := range irs {
			e.emitline(LineSection, 0, center(ir.Name, sectionWidth, sectionFill))
			renderSource(ir.Source, e, baseIndent, nil, ir.LinenoMap)
		}
		e.emitline(LineSection, 0, strings.Repeat(sectionFill, sectionWidth))
	}
	return e.err
}

// renderSource writes one source block. With a non-empty header mapping each
// line is prefixed by the primary line it came from.
func renderSource(src Source, e *emitter, indent int, irs []ResolvedSource, header LinenoMap) {
	var headers map[int]string
	if len(header) > 0 {
		indent += headerIndent
		headers = make(map[int]string)
		for _, pyLineno := range header.Lines() {
			for _, irLineno := range header[pyLineno] {
				headers[irLineno] = fmt.Sprintf("%*d |  ", gutterWidth, pyLineno)
			}
		}
	}

	for _, lineno := range src.Linemap.Lines() {
		line := src.Linemap[lineno]
		label := ""
		if headers != nil {
			var ok bool
			if label, ok = headers[lineno]; !ok {
				label = blankHeader
			}
		}
		e.emitline(LineCode, 0, label+fmt.Sprintf("%*d    %s", gutterWidth, lineno, line))

		lines := annotationLines(src.Annotations[lineno])
		lines = append(lines, gatherTextIntermediates(irs, lineno)...)
		if len(lines) == 0 {
			continue
		}

		start := indent + leadingSpace(line) + 2
		sep := center(annotMarker, annotWidth, annotSep)
		e.emitline(LineSeparator, start, sep)
		for _, l := range lines {
			e.emitline(l.kind, start, l.text)
		}
		e.emitline(LineSeparator, start, sep)
	}
}

// leadingSpace counts the whitespace characters before the code on line.
func leadingSpace(line string) int {
	return utf8.RuneCountInString(line) - utf8.RuneCountInString(strings.TrimLeftFunc(line, unicode.IsSpace))
}
