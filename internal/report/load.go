package report

import (
	"context"
	"fmt"
	"os"

	"numlens/internal/annotate"
	"numlens/internal/trace"
)

// Report is a decoded report file.
type Report struct {
	Path  string
	Codec Codec
	Raw   []byte
	Doc   Document
}

// Open reads, decodes and validates the report at path.
func Open(ctx context.Context, path string) (*Report, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeItem, "decode", trace.CurrentSpan(ctx))
	defer span.End(path)

	codec, err := CodecFromPath(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	doc, err := Decode(raw, codec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := Validate(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	span.WithExtra("codec", codec.String())
	return &Report{Path: path, Codec: codec, Raw: raw, Doc: doc}, nil
}

// Program returns the annotate.Program of the report.
func (r *Report) Program() annotate.Program {
	return Program(r.Doc)
}
