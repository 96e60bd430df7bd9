package model

// MarkerKind is the primary role of a test function parameter.
type MarkerKind string

const (
	// MarkerFixture is the default: the parameter is a fixture reference.
	MarkerFixture MarkerKind = "fixture"
	// MarkerCase takes its value from each case entry.
	MarkerCase MarkerKind = "case"
	// MarkerValues draws its value from an enumerated set.
	MarkerValues MarkerKind = "values"
	// MarkerFiles draws its value from files matching glob patterns.
	MarkerFiles MarkerKind = "files"
)

// ParameterMarker classifies one parameter. Kind is exclusive; Future and
// the fixture modifiers combine with it.
type ParameterMarker struct {
	Kind MarkerKind
	// Values holds the enumerated set for MarkerValues, or the glob
	// patterns for MarkerFiles.
	Values []Value
	// Future means the value is produced by a suspending expression.
	Future bool
	// Awaited means the suspension is resolved before the test body runs.
	Awaited bool
	// From renames the fixture lookup.
	From string
	// With holds positional overrides for the fixture's own parameters.
	With []Value
	// Default is the `default(expr)` written on a fixture definition parameter.
	Default *Value
	// Conflict is set when more than one exclusive marker was written.
	Conflict bool
}

// FixtureName returns the name used to look the parameter's fixture up.
func (pm ParameterMarker) FixtureName(param string) string {
	if pm.From != "" {
		return pm.From
	}

	return param
}
