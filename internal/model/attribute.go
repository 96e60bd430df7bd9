package model

import "time"

// AttributeRecord is one attribute as written in the source, before interpretation.
type AttributeRecord struct {
	// Name is the attribute path, e.g. "test", "tokio::test" or "case::one".
	Name string
	// Ordinal is the 0-based position within the owning item's attribute list.
	Ordinal int
	// Args are the top-level comma separated argument tokens, trimmed.
	Args []string
	// RawArgs is the text between the outer parentheses (or after `=`).
	RawArgs string
	// HasArgs reports whether an argument list was written at all: `#[case]`
	// and `#[case()]` differ.
	HasArgs bool
	Span    Span
}

// AttributeKind is the closed set of attribute meanings the interpreter knows.
type AttributeKind string

const (
	AttrTest          AttributeKind = "test-marker"
	AttrParameterized AttributeKind = "parameterized-marker"
	AttrCase          AttributeKind = "case-entry"
	AttrValues        AttributeKind = "values-entry"
	AttrFixture       AttributeKind = "fixture-definition"
	AttrTimeout       AttributeKind = "timeout-override"
	AttrAsyncRuntime  AttributeKind = "async-runtime-marker"

	// Parameter-level markers.
	AttrCaseMarker AttributeKind = "case-marker"
	AttrFiles      AttributeKind = "files-entry"
	AttrFuture     AttributeKind = "future-marker"
	AttrFrom       AttributeKind = "fixture-rename"
	AttrWith       AttributeKind = "fixture-override"
	AttrDefault    AttributeKind = "fixture-default"

	AttrUnrecognized AttributeKind = "unrecognized"
)

// CaseFlavor tells which attribute family produced a case entry.
type CaseFlavor string

const (
	// FlavorRstest is `#[case(...)]` / `#[case::label(...)]`.
	FlavorRstest CaseFlavor = "rstest"
	// FlavorTestCase is `#[test_case(args ; "description")]`.
	FlavorTestCase CaseFlavor = "test_case"
)

// Attribute is an interpreted AttributeRecord.
type Attribute struct {
	Record AttributeRecord
	Kind   AttributeKind
	// Label is the inline label of `case::label(...)` or the escaped
	// description of a test_case entry.
	Label  string
	Flavor CaseFlavor
	// Values holds the parsed argument tokens, in order.
	Values []Value
	// Expected is the `=> expected` part of a test_case entry.
	Expected string
	// Runtime is set for async-runtime markers ("tokio", "async_std", ...).
	Runtime string
	// Timeout is set for timeout overrides whose argument is a duration.
	Timeout *time.Duration
	// Awaited is set on future markers written as `#[awt]` or `#[future(awt)]`.
	Awaited bool
}

// ValueKind classifies a literal argument token.
type ValueKind string

const (
	ValueInt      ValueKind = "int"
	ValueFloat    ValueKind = "float"
	ValueString   ValueKind = "string"
	ValueChar     ValueKind = "char"
	ValueBool     ValueKind = "bool"
	ValueDuration ValueKind = "duration"
	// ValueExpr is any token the engine keeps as opaque text.
	ValueExpr ValueKind = "expr"
)

// Value is an argument token with its structured form when unambiguous.
type Value struct {
	Raw      string        `json:"raw" yaml:"raw"`
	Kind     ValueKind     `json:"kind" yaml:"kind"`
	Int      int64         `json:"int,omitempty" yaml:"int,omitempty"`
	Float    float64       `json:"float,omitempty" yaml:"float,omitempty"`
	Str      string        `json:"str,omitempty" yaml:"str,omitempty"`
	Bool     bool          `json:"bool,omitempty" yaml:"bool,omitempty"`
	Duration time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}
