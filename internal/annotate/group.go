package annotate

import (
	"fmt"
	"strings"
)

// GatherTextAnnotations renders the annotations of a single line, one
// "<category>: <values>" entry per category. Categories appear in the order
// they are first seen and collect every value of that category, adjacent
// or not.
func GatherTextAnnotations(annots []Annotation) []string {
	if len(annots) == 0 {
		return nil
	}
	var order []Category
	values := make(map[Category][]string, len(annots))
	for _, a := range annots {
		if _, seen := values[a.Type]; !seen {
			order = append(order, a.Type)
		}
		values[a.Type] = append(values[a.Type], fmt.Sprint(a.Value))
	}
	out := make([]string, 0, len(order))
	for _, cat := range order {
		out = append(out, string(cat)+": "+strings.Join(values[cat], " "))
	}
	return out
}

// reportLine is one line of an annotation block.
type reportLine struct {
	kind LineKind
	text string
}

func annotationLines(annots []Annotation) []reportLine {
	texts := GatherTextAnnotations(annots)
	out := make([]reportLine, len(texts))
	for i, s := range texts {
		out[i] = reportLine{LineAnnotation, s}
	}
	return out
}

// gatherTextIntermediates renders the inline intermediate fragments that
// originate from lineno.
func gatherTextIntermediates(irs []ResolvedSource, lineno int) []reportLine {
	var out []reportLine
	for _, ir := range irs {
		irLines := ir.LinenoMap[lineno]
		if len(irLines) == 0 {
			continue
		}
		out = append(out, reportLine{LineBanner, center(ir.Name, annotWidth, "_")})
		for _, irLineno := range irLines {
			// missing lines render empty
			out = append(out, reportLine{LineIR, ir.Source.Linemap[irLineno]})
		}
	}
	return out
}
