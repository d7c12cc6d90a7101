package annotate

import (
	"errors"
	"strings"
	"testing"
)

type stubRenderer struct {
	caps  CapabilitySet
	src   SourceRendering
	graph string
	calls int
}

func (r *stubRenderer) Capabilities() CapabilitySet { return r.caps }

func (r *stubRenderer) Render(c Capability) (Rendering, error) {
	r.calls++
	switch {
	case !r.caps.Has(c):
		return nil, UnsupportedCapability(c)
	case c == CapSource:
		return r.src, nil
	case c == CapDot:
		return DotRendering{Graph: r.graph}, nil
	}
	return nil, UnsupportedCapability(c)
}

func sampleProgram(ir *stubRenderer) Program {
	return Program{
		PythonSource: Source{
			Linemap: Linemap{
				1: "def f(x):",
				2: "    return x * 2",
			},
			Annotations: map[int][]Annotation{
				2: {{Type: CatTypes, Value: "x:int64"}},
			},
		},
		Intermediates: []Intermediate{{Name: "llvm", Renderer: ir}},
	}
}

func llvmRenderer() *stubRenderer {
	return &stubRenderer{
		caps: CapabilitySet{CapSource, CapDot},
		src: SourceRendering{
			LinenoMap: LinenoMap{2: {5}},
			Source: Source{Linemap: Linemap{
				4: "entry:",
				5: "  %r = mul i64 %x, 2",
				6: "  ret i64 %r",
			}},
		},
		graph: "digraph f {}",
	}
}

func TestRenderTextPlainSource(t *testing.T) {
	p := Program{PythonSource: Source{Linemap: Linemap{3: "c", 1: "a", 2: "b"}}}
	var sb strings.Builder
	if err := RenderText(&sb, p, TextOptions{Inline: true}); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	want := "   1    a\n   2    b\n   3    c\n"
	if got := sb.String(); got != want {
		t.Fatalf("unexpected report:\nwant:\n%q\ngot:\n%q", want, got)
	}
}

func TestRenderTextInline(t *testing.T) {
	var sb strings.Builder
	err := RenderText(&sb, sampleProgram(llvmRenderer()), TextOptions{Intermediates: []string{"llvm"}, Inline: true})
	if err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	pad := strings.Repeat(" ", 14)
	sep := pad + strings.Repeat("-", 19) + "||" + strings.Repeat("-", 19) + "\n"
	want := "   1    def f(x):\n" +
		"   2        return x * 2\n" +
		sep +
		pad + "Types: x:int64\n" +
		pad + strings.Repeat("_", 18) + "llvm" + strings.Repeat("_", 18) + "\n" +
		pad + "  %r = mul i64 %x, 2\n" +
		sep
	if got := sb.String(); got != want {
		t.Fatalf("unexpected report:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderTextSeparate(t *testing.T) {
	var sb strings.Builder
	err := RenderText(&sb, sampleProgram(llvmRenderer()), TextOptions{Intermediates: []string{"llvm"}})
	if err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	pad := strings.Repeat(" ", 14)
	sep := pad + strings.Repeat("-", 19) + "||" + strings.Repeat("-", 19) + "\n"
	want := "   1    def f(x):\n" +
		"   2        return x * 2\n" +
		sep +
		pad + "Types: x:int64\n" +
		sep +
		strings.Repeat("=", 38) + "llvm" + strings.Repeat("=", 38) + "\n" +
		"     |     4    entry:\n" +
		"   2 |     5      %r = mul i64 %x, 2\n" +
		"     |     6      ret i64 %r\n" +
		strings.Repeat("=", 80) + "\n"
	if got := sb.String(); got != want {
		t.Fatalf("unexpected report:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderTextSeparateWithoutIntermediates(t *testing.T) {
	p := sampleProgram(llvmRenderer())
	var sb strings.Builder
	if err := RenderText(&sb, p, TextOptions{}); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if strings.Contains(sb.String(), "=") {
		t.Fatalf("no section banners expected without intermediates:\n%s", sb.String())
	}
}

func TestRenderTextIndentsUnderCode(t *testing.T) {
	p := Program{PythonSource: Source{
		Linemap:     Linemap{1: "\t\tpass"},
		Annotations: map[int][]Annotation{1: {{Type: CatPyCall, Value: "print"}}},
	}}
	var sb strings.Builder
	if err := RenderText(&sb, p, TextOptions{Inline: true}); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	lines := strings.Split(sb.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected an annotation block, got %q", sb.String())
	}
	if want := strings.Repeat(" ", 12) + "Python call: print"; lines[2] != want {
		t.Fatalf("want %q, got %q", want, lines[2])
	}
}

func TestRenderTextMissingIntermediateLine(t *testing.T) {
	ir := llvmRenderer()
	ir.src.LinenoMap = LinenoMap{2: {5, 42}}
	var sb strings.Builder
	if err := RenderText(&sb, sampleProgram(ir), TextOptions{Intermediates: []string{"llvm"}, Inline: true}); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if !strings.Contains(sb.String(), "  %r = mul i64 %x, 2\n"+strings.Repeat(" ", 14)+"\n") {
		t.Fatalf("missing intermediate line should render empty:\n%s", sb.String())
	}
}

func TestRenderTextUnknownIntermediate(t *testing.T) {
	var sb strings.Builder
	err := RenderText(&sb, sampleProgram(llvmRenderer()), TextOptions{Intermediates: []string{"llvmm"}})
	if !errors.Is(err, ErrUnknownIntermediate) {
		t.Fatalf("expected ErrUnknownIntermediate, got %v", err)
	}
	if sb.Len() != 0 {
		t.Fatalf("nothing should be written on lookup failure, got %q", sb.String())
	}
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("sink closed")
	}
	w.n--
	return len(p), nil
}

func TestRenderTextReportsWriteError(t *testing.T) {
	w := &failingWriter{n: 1}
	err := RenderText(w, sampleProgram(llvmRenderer()), TextOptions{Inline: true})
	if err == nil || err.Error() != "sink closed" {
		t.Fatalf("expected sink error, got %v", err)
	}
}

type kindRecorder struct {
	kinds []LineKind
	texts []string
}

func (r *kindRecorder) Write(p []byte) (int, error) { return len(p), nil }

func (r *kindRecorder) WriteLine(kind LineKind, indent int, text string) error {
	r.kinds = append(r.kinds, kind)
	r.texts = append(r.texts, text)
	return nil
}

func TestRenderTextReportsLineKinds(t *testing.T) {
	ir := llvmRenderer()
	// intermediate text that resembles an annotation stays intermediate text
	ir.src.Source.Linemap[5] = "Types: i64"
	rec := &kindRecorder{}
	err := RenderText(rec, sampleProgram(ir), TextOptions{Intermediates: []string{"llvm"}, Inline: true})
	if err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	want := []LineKind{LineCode, LineCode, LineSeparator, LineAnnotation, LineBanner, LineIR, LineSeparator}
	if len(rec.kinds) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(rec.kinds), rec.texts, len(want))
	}
	for i := range want {
		if rec.kinds[i] != want[i] {
			t.Fatalf("line %d (%q): kind %d, want %d", i, rec.texts[i], rec.kinds[i], want[i])
		}
	}
	if rec.texts[5] != "Types: i64" {
		t.Fatalf("unexpected ir text %q", rec.texts[5])
	}

	rec = &kindRecorder{}
	if err := RenderText(rec, sampleProgram(llvmRenderer()), TextOptions{Intermediates: []string{"llvm"}}); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if rec.kinds[5] != LineSection || rec.kinds[len(rec.kinds)-1] != LineSection {
		t.Fatalf("separate section should be framed by section lines: %v", rec.kinds)
	}
	if rec.texts[7] != "   2 |     5      %r = mul i64 %x, 2" {
		t.Fatalf("header label should be part of the code line: %q", rec.texts[7])
	}
}
