package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"numlens/internal/annotate"
)

// Palette holds the styles applied to report lines.
type Palette struct {
	Separator lipgloss.Style
	Section   lipgloss.Style
	Banner    lipgloss.Style
	Category  lipgloss.Style
}

// DefaultPalette returns the palette used by the CLI.
func DefaultPalette(r *lipgloss.Renderer) Palette {
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return Palette{
		Separator: base.Foreground(lipgloss.Color("8")),
		Section:   base.Bold(true).Foreground(lipgloss.Color("5")),
		Banner:    base.Foreground(lipgloss.Color("6")),
		Category:  base.Bold(true).Foreground(lipgloss.Color("3")),
	}
}

// ReportWriter styles a text report by line kind. Separators, banners and
// annotation categories are coloured; code and intermediate text pass
// through untouched, and so does indentation.
type ReportWriter struct {
	w       io.Writer
	color   bool
	palette Palette
}

// NewReportWriter wraps w. With color off the writer is a pass-through.
func NewReportWriter(w io.Writer, color bool) *ReportWriter {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &ReportWriter{w: w, color: color, palette: DefaultPalette(r)}
}

// Write forwards p unstyled.
func (rw *ReportWriter) Write(p []byte) (int, error) {
	return rw.w.Write(p)
}

// WriteLine implements annotate.LineWriter.
func (rw *ReportWriter) WriteLine(kind annotate.LineKind, indent int, text string) error {
	_, err := io.WriteString(rw.w, strings.Repeat(" ", indent)+rw.style(kind, text)+"\n")
	return err
}

func (rw *ReportWriter) style(kind annotate.LineKind, text string) string {
	if !rw.color || text == "" {
		return text
	}
	switch kind {
	case annotate.LineSeparator:
		return rw.palette.Separator.Render(text)
	case annotate.LineSection:
		return rw.palette.Section.Render(text)
	case annotate.LineBanner:
		return rw.palette.Banner.Render(text)
	case annotate.LineAnnotation:
		if cat, rest, ok := strings.Cut(text, ": "); ok {
			return rw.palette.Category.Render(cat+":") + " " + rest
		}
	}
	return text
}
