package annotate

import (
	"slices"
	"testing"
)

func TestGatherTextAnnotations(t *testing.T) {
	tests := []struct {
		name   string
		annots []Annotation
		want   []string
	}{
		{
			name: "empty",
			want: nil,
		},
		{
			name: "same category contiguous",
			annots: []Annotation{
				{Type: CatTypes, Value: "v1"},
				{Type: CatTypes, Value: "v2"},
			},
			want: []string{"Types: v1 v2"},
		},
		{
			name: "different categories keep first-seen order",
			annots: []Annotation{
				{Type: CatErrCheck, Value: "NULL"},
				{Type: CatTypes, Value: "x:int64"},
			},
			want: []string{"Error check: NULL", "Types: x:int64"},
		},
		{
			name: "non-contiguous category coalesces",
			annots: []Annotation{
				{Type: CatTypes, Value: "a"},
				{Type: CatCoercion, Value: "int->object"},
				{Type: CatTypes, Value: "b"},
			},
			want: []string{"Types: a b", "Coercion: int->object"},
		},
		{
			name: "values are stringified",
			annots: []Annotation{
				{Type: CatNumPy, Value: 3},
				{Type: CatNumPy, Value: true},
			},
			want: []string{"NumPy: 3 true"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GatherTextAnnotations(tt.annots)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		s     string
		width int
		fill  string
		want  string
	}{
		{"x", 5, "-", "--x--"},
		{"ab", 5, "-", "--ab-"},
		{"abc", 6, "_", "_abc__"},
		{"toolong", 3, "=", "toolong"},
	}
	for _, tt := range tests {
		if got := center(tt.s, tt.width, tt.fill); got != tt.want {
			t.Fatalf("center(%q, %d): want %q, got %q", tt.s, tt.width, tt.want, got)
		}
	}
}

func TestCategoryKnown(t *testing.T) {
	if !CatPyAttr.Known() {
		t.Fatalf("Python attribute should be known")
	}
	if Category("Bogus").Known() {
		t.Fatalf("unexpected known category")
	}
}
