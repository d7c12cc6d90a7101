package report

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"

	"numlens/internal/annotate"
)

// FormatConstraint is the range of report format versions understood.
const FormatConstraint = "^1.0"

var (
	ErrUnsupportedFormat = errors.New("unsupported report format")
	ErrInvalidReport     = errors.New("invalid report")
)

var formatConstraint = func() *semver.Constraints {
	c, err := semver.NewConstraint(FormatConstraint)
	if err != nil {
		panic(err)
	}
	return c
}()

// CheckFormat verifies the document's format version.
func CheckFormat(version string) error {
	if version == "" {
		return fmt.Errorf("%w: missing format version", ErrUnsupportedFormat)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedFormat, version, err)
	}
	if !formatConstraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedFormat, v, FormatConstraint)
	}
	return nil
}

// Validate checks the structural invariants of a document: positive line
// numbers, known annotation categories and consistent capabilities.
func Validate(doc Document) error {
	if err := CheckFormat(doc.Format); err != nil {
		return err
	}
	if err := validateSource("source", doc.Source); err != nil {
		return err
	}
	seen := make(map[string]bool, len(doc.Intermediates))
	for i, ir := range doc.Intermediates {
		where := fmt.Sprintf("intermediates[%d]", i)
		if ir.Name == "" {
			return fmt.Errorf("%w: %s: missing name", ErrInvalidReport, where)
		}
		if seen[ir.Name] {
			return fmt.Errorf("%w: %s: duplicate intermediate %q", ErrInvalidReport, where, ir.Name)
		}
		seen[ir.Name] = true
		for py, irLines := range ir.LinenoMap {
			if py <= 0 || slices.ContainsFunc(irLines, func(n int) bool { return n <= 0 }) {
				return fmt.Errorf("%w: %s: non-positive line in linenomap", ErrInvalidReport, where)
			}
		}
		if ir.Source != nil {
			if err := validateSource(where+".source", *ir.Source); err != nil {
				return err
			}
		}
		for _, c := range ir.Capabilities {
			switch annotate.Capability(c) {
			case annotate.CapSource:
				if ir.Source == nil {
					return fmt.Errorf("%w: %s: declares %q without a source", ErrInvalidReport, where, c)
				}
			case annotate.CapDot:
				if ir.Dot == "" {
					return fmt.Errorf("%w: %s: declares %q without a graph", ErrInvalidReport, where, c)
				}
			default:
				return fmt.Errorf("%w: %s: unknown capability %q", ErrInvalidReport, where, c)
			}
		}
	}
	return nil
}

func validateSource(where string, src SourceDoc) error {
	for lineno := range src.Lines {
		if lineno <= 0 {
			return fmt.Errorf("%w: %s: non-positive line number %d", ErrInvalidReport, where, lineno)
		}
	}
	for lineno, annots := range src.Annotations {
		if lineno <= 0 {
			return fmt.Errorf("%w: %s: annotation on non-positive line %d", ErrInvalidReport, where, lineno)
		}
		for _, a := range annots {
			if !annotate.Category(a.Type).Known() {
				return fmt.Errorf("%w: %s: line %d: unknown annotation category %q", ErrInvalidReport, where, lineno, a.Type)
			}
		}
	}
	return nil
}
