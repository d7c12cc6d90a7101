package annotate

import (
	"maps"
	"slices"
)

// Category labels an annotation.
type Category string

const (
	CatTypes    Category = "Types"
	CatCAPI     Category = "Python C API"
	CatNumPy    Category = "NumPy"
	CatErrCheck Category = "Error check"
	CatCoercion Category = "Coercion"
	CatPyCall   Category = "Python call"
	CatPyAttr   Category = "Python attribute"
)

// Categories lists every known category in declaration order.
var Categories = []Category{
	CatTypes,
	CatCAPI,
	CatNumPy,
	CatErrCheck,
	CatCoercion,
	CatPyCall,
	CatPyAttr,
}

// Known reports whether c is one of the fixed categories.
func (c Category) Known() bool {
	return slices.Contains(Categories, c)
}

// Annotation is a categorized diagnostic value attached to one source line.
type Annotation struct {
	Type  Category
	Value any
}

// Linemap maps 1-based line numbers to the literal text of the line.
type Linemap map[int]string

// Lines returns the line numbers in ascending order.
func (m Linemap) Lines() []int {
	return slices.Sorted(maps.Keys(m))
}

// LinenoMap associates a primary source line with the intermediate lines
// that originated from it.
type LinenoMap map[int][]int

// Lines returns the primary line numbers in ascending order.
func (m LinenoMap) Lines() []int {
	return slices.Sorted(maps.Keys(m))
}

// Source is a block of text with per-line annotations.
type Source struct {
	Linemap     Linemap
	Annotations map[int][]Annotation
}

// Intermediate is a named alternate representation of a program.
type Intermediate struct {
	Name     string
	Renderer Renderer
}

// Program is the unit handed to the renderers: the primary source plus the
// intermediates produced while compiling it.
type Program struct {
	PythonSource  Source
	Intermediates []Intermediate
}

// registry indexes intermediates by name. Later entries shadow earlier ones.
func (p Program) registry() map[string]Intermediate {
	reg := make(map[string]Intermediate, len(p.Intermediates))
	for _, in := range p.Intermediates {
		reg[in.Name] = in
	}
	return reg
}

// IntermediateNames returns the registered names in declaration order.
func (p Program) IntermediateNames() []string {
	names := make([]string, 0, len(p.Intermediates))
	for _, in := range p.Intermediates {
		names = append(names, in.Name)
	}
	return names
}
