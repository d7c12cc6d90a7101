package report

// Document is the serialized form of a program and its intermediates.
type Document struct {
	Format        string            `json:"format" yaml:"format" msgpack:"format"`
	Source        SourceDoc         `json:"source" yaml:"source" msgpack:"source"`
	Intermediates []IntermediateDoc `json:"intermediates,omitempty" yaml:"intermediates,omitempty" msgpack:"intermediates,omitempty"`
}

// SourceDoc is a serialized annotate.Source.
type SourceDoc struct {
	Lines       map[int]string          `json:"lines" yaml:"lines" msgpack:"lines"`
	Annotations map[int][]AnnotationDoc `json:"annotations,omitempty" yaml:"annotations,omitempty" msgpack:"annotations,omitempty"`
}

// AnnotationDoc is a serialized annotate.Annotation.
type AnnotationDoc struct {
	Type  string `json:"type" yaml:"type" msgpack:"type"`
	Value any    `json:"value" yaml:"value" msgpack:"value"`
}

// IntermediateDoc is one serialized intermediate. Capabilities may be
// omitted; they are then derived from the populated fields.
type IntermediateDoc struct {
	Name         string        `json:"name" yaml:"name" msgpack:"name"`
	Capabilities []string      `json:"capabilities,omitempty" yaml:"capabilities,omitempty" msgpack:"capabilities,omitempty"`
	LinenoMap    map[int][]int `json:"linenomap,omitempty" yaml:"linenomap,omitempty" msgpack:"linenomap,omitempty"`
	Source       *SourceDoc    `json:"source,omitempty" yaml:"source,omitempty" msgpack:"source,omitempty"`
	Dot          string        `json:"dot,omitempty" yaml:"dot,omitempty" msgpack:"dot,omitempty"`
}
