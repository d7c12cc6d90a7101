// Package highlight wraps the chroma syntax highlighter for source and
// LLVM listings.
//
// The highlighter is probed once with Probe; the returned handle records
// whether highlighting is available and why not. An unavailable handle
// still answers Lex, returning the input unchanged after a single warning.
package highlight

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fatih/color"

	"numlens/internal/trace"
)

// Language selects the lexer.
type Language string

const (
	LangPython Language = "python"
	LangLLVM   Language = "llvm"
)

// Output selects the formatter.
type Output string

const (
	OutputHTML    Output = "html"
	OutputConsole Output = "console"
)

var (
	ErrUnknownLanguage = errors.New("unknown highlight language")
	ErrUnknownOutput   = errors.New("unknown highlight output")
)

// ParseLanguage validates a language name.
func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToLower(s)); l {
	case LangPython, LangLLVM:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q (expected: python|llvm)", ErrUnknownLanguage, s)
}

// ParseOutput validates an output name.
func ParseOutput(s string) (Output, error) {
	switch o := Output(strings.ToLower(s)); o {
	case OutputHTML, OutputConsole:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q (expected: html|console)", ErrUnknownOutput, s)
}

// lexer and formatter names in the chroma registries
var (
	lexerNames = map[Language]string{
		LangPython: "python",
		LangLLVM:   "llvm",
	}
	consoleFormatter = "terminal256"
)

// Options configures Probe.
type Options struct {
	Style   string       // chroma style name, "monokai" when empty
	Tracer  trace.Tracer // receives the unavailability warning
	Warning io.Writer    // stderr when nil
}

// Highlighter is the probed highlighting capability.
type Highlighter struct {
	Available bool
	Reason    string

	lexers  map[Language]chroma.Lexer
	console chroma.Formatter
	style   *chroma.Style

	tracer  trace.Tracer
	warnOut io.Writer
	warn    sync.Once
}

// Probe checks that every lexer and formatter the wrapper needs is
// registered and returns the resulting handle.
func Probe(opts Options) *Highlighter {
	h := &Highlighter{
		lexers:  make(map[Language]chroma.Lexer, len(lexerNames)),
		tracer:  opts.Tracer,
		warnOut: opts.Warning,
	}
	if h.tracer == nil {
		h.tracer = trace.Nop
	}
	if h.warnOut == nil {
		h.warnOut = os.Stderr
	}

	var missing []string
	for _, lang := range []Language{LangPython, LangLLVM} {
		lx := lexers.Get(lexerNames[lang])
		if lx == nil {
			missing = append(missing, "lexer "+lexerNames[lang])
			continue
		}
		h.lexers[lang] = chroma.Coalesce(lx)
	}
	if f, ok := formatters.Registry[consoleFormatter]; ok {
		h.console = f
	} else {
		missing = append(missing, "formatter "+consoleFormatter)
	}

	styleName := opts.Style
	if styleName == "" {
		styleName = "monokai"
	}
	if st, ok := styles.Registry[styleName]; ok {
		h.style = st
	} else {
		missing = append(missing, "style "+styleName)
	}

	if len(missing) > 0 {
		h.Reason = "missing " + strings.Join(missing, ", ")
		return h
	}
	h.Available = true
	return h
}

// Lex highlights code. With inlineCSS the HTML output carries inline
// styles; otherwise it references CSS classes (see StyleSheet). When the
// highlighter is unavailable the code is returned unchanged.
func (h *Highlighter) Lex(code string, lang Language, out Output, inlineCSS bool) (string, error) {
	if _, ok := lexerNames[lang]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	formatter, err := h.formatter(out, inlineCSS)
	if err != nil {
		return "", err
	}
	if !h.Available {
		h.warnUnavailable()
		return code, nil
	}

	it, err := h.lexers[lang].Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", lang, err)
	}
	var sb strings.Builder
	if err := formatter.Format(&sb, h.style, it); err != nil {
		return "", fmt.Errorf("format %s: %w", out, err)
	}
	return sb.String(), nil
}

func (h *Highlighter) formatter(out Output, inlineCSS bool) (chroma.Formatter, error) {
	switch out {
	case OutputHTML:
		return html.New(html.WithClasses(!inlineCSS)), nil
	case OutputConsole:
		return h.console, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOutput, out)
}

// StyleSheet writes the CSS for class-based HTML output.
func (h *Highlighter) StyleSheet(w io.Writer) error {
	if !h.Available {
		h.warnUnavailable()
		return nil
	}
	return html.New(html.WithClasses(true)).WriteCSS(w, h.style)
}

func (h *Highlighter) warnUnavailable() {
	h.warn.Do(func() {
		msg := "syntax highlighting disabled: " + h.Reason
		trace.Warn(h.tracer, "highlight", msg)
		_, _ = color.New(color.FgYellow).Fprintf(h.warnOut, "warning: %s\n", msg)
	})
}
