package model

import "fmt"

// DiagnosticKind is the taxonomy of non-fatal scan problems.
type DiagnosticKind string

const (
	DiagParseError            DiagnosticKind = "structural-parse-error"
	DiagConflictingMarkers    DiagnosticKind = "unrecognized-attribute-combination"
	DiagUnresolvedFixture     DiagnosticKind = "unresolved-fixture"
	DiagUnsupportedParameters DiagnosticKind = "unsupported-parameterization"
	DiagInvalidArgument       DiagnosticKind = "invalid-attribute-argument"
	DiagReadError             DiagnosticKind = "unreadable-unit"
)

// Diagnostic is a problem scoped to one item of one unit.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Message string         `json:"message" yaml:"message"`
	Unit    Path           `json:"unit" yaml:"unit"`
	Item    string         `json:"item,omitempty" yaml:"item,omitempty"`
	Span    Span           `json:"span" yaml:"span"`
}

func (d Diagnostic) String() string {
	if d.Item != "" {
		return fmt.Sprintf("%s:%d: %s: %s (%s)", d.Unit, d.Span.StartLine, d.Kind, d.Message, d.Item)
	}

	return fmt.Sprintf("%s:%d: %s: %s", d.Unit, d.Span.StartLine, d.Kind, d.Message)
}
