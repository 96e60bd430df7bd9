package model

import (
	"strings"
	"time"
)

// Synchronicity says how a discovered test is driven: plainly or inside a
// named async runtime.
type Synchronicity string

// Sync is a plain synchronous test.
const Sync Synchronicity = "sync"

const asyncRuntimePrefix = "async-runtime:"

// AsyncRuntime builds the synchronicity of a test wrapped by the given runtime.
func AsyncRuntime(name string) Synchronicity {
	return Synchronicity(asyncRuntimePrefix + name)
}

// IsAsync reports whether the test runs inside an async runtime.
func (s Synchronicity) IsAsync() bool {
	return strings.HasPrefix(string(s), asyncRuntimePrefix)
}

// Runtime returns the runtime name, or "" for sync tests.
func (s Synchronicity) Runtime() string {
	return strings.TrimPrefix(string(s), asyncRuntimePrefix)
}

// BindingSource tells where an argument value comes from.
type BindingSource string

const (
	BindCase    BindingSource = "case"
	BindValues  BindingSource = "values"
	BindFiles   BindingSource = "files"
	BindFixture BindingSource = "fixture"
	BindDefault BindingSource = "default"
	BindWith    BindingSource = "with"
)

// Binding is one concrete parameter -> value assignment.
type Binding struct {
	Param   string          `json:"param" yaml:"param"`
	Source  BindingSource   `json:"source" yaml:"source"`
	Value   *Value          `json:"value,omitempty" yaml:"value,omitempty"`
	Fixture *FixtureBinding `json:"fixture,omitempty" yaml:"fixture,omitempty"`
	// Deferred means the value suspends and is resolved by the test body.
	Deferred bool `json:"deferred,omitempty" yaml:"deferred,omitempty"`
	// Awaited means the suspension is resolved before the body runs.
	Awaited bool `json:"awaited,omitempty" yaml:"awaited,omitempty"`
}

// FixtureBinding describes the fixture that produces a parameter's value.
type FixtureBinding struct {
	Name  string    `json:"name" yaml:"name"`
	Path  []string  `json:"path" yaml:"path"`
	Async bool      `json:"async,omitempty" yaml:"async,omitempty"`
	Args  []Binding `json:"args,omitempty" yaml:"args,omitempty"`
}

// DiscoveredTest is one concrete, addressable test instance.
type DiscoveredTest struct {
	ID       string         `json:"id" yaml:"id"`
	Unit     Path           `json:"unit" yaml:"unit"`
	Path     []string       `json:"path" yaml:"path"`
	Name     string         `json:"name" yaml:"name"`
	Sync     Synchronicity  `json:"sync" yaml:"sync"`
	Timeout  *time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Bindings []Binding      `json:"bindings,omitempty" yaml:"bindings,omitempty"`
	// CaseIndex is set for case-expanded tests.
	CaseIndex *int   `json:"caseIndex,omitempty" yaml:"caseIndex,omitempty"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
	// Combination holds the per-axis positions of combinator-expanded tests.
	Combination []int `json:"combination,omitempty" yaml:"combination,omitempty"`
	Span        Span  `json:"span" yaml:"span"`
}

// BaseName is the qualified path of the function the test comes from.
func (t DiscoveredTest) BaseName() string {
	return strings.Join(t.Path, "::")
}

// Parameterized reports whether the test is one of several instances of a function.
func (t DiscoveredTest) Parameterized() bool {
	return t.CaseIndex != nil || len(t.Combination) > 0
}
