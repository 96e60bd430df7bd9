package domain

import (
	"crypto/sha256"
	"fmt"
	"log/slog"

	"rsdisco.dev/pkg/rsdisco/internal/adapter"
	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// Scanner discovers the tests of one source unit. Scan is pure: the same
// unit always yields the same result and nothing is shared between calls.
type Scanner interface {
	Scan(unit m.SourceUnit) (m.ScanResult, error)
}

type scanner struct {
	adapter.RustFileAdapter
	strategy Strategy
}

// NewScanner creates a Scanner extracting syntax with rust and expanding
// strategy-gated parameterization with strategy.
func NewScanner(rust adapter.RustFileAdapter, strategy Strategy) Scanner {
	return &scanner{RustFileAdapter: rust, strategy: strategy}
}

// Scan extracts the unit, discovers every function's tests and composes the
// tree. Problems scoped to items are diagnostics; the error is only set when
// the unit could not be parsed at all.
func (s *scanner) Scan(unit m.SourceUnit) (m.ScanResult, error) {
	items, diags, err := s.Extract(unit)
	if err != nil {
		return m.ScanResult{}, fmt.Errorf("extract %s: %w", unit.Path, err)
	}

	functions := interpretFunctions(unit.Path, items, nil)
	fixtures := newFixtureIndex(functions)
	var (
		discovered []m.DiscoveredTest
		owners     []int
	)

	for _, fn := range functions {
		diags = append(diags, fn.diags...)

		tests, fnDiags := s.discover(unit.Path, fn, fixtures)
		diags = append(diags, fnDiags...)

		for range tests {
			owners = append(owners, fn.item.Span.StartByte)
		}

		discovered = append(discovered, tests...)
	}

	// Functions sharing a qualified path (cfg-gated twins) share a namespace.
	dedupeNames(discovered)

	found := make(TestsByItem)

	for i := range discovered {
		discovered[i].ID = testID(unit.Path, discovered[i].Name)
		found[owners[i]] = append(found[owners[i]], discovered[i])
	}

	tree := BuildTree(unit.Path, items, found)

	slog.Debug("scanned unit", "unit", unit.Path, "tests", tree.CountTests(), "diagnostics", len(diags))

	return m.ScanResult{
		Unit:        unit.Path,
		Hash:        fmt.Sprintf("%x", sha256.Sum256(unit.Content)),
		Items:       items,
		Tree:        tree,
		Tests:       tree.Tests(),
		Diagnostics: diags,
	}, nil
}

// interpretFunctions flattens the item tree into interpreted functions in
// declaration order.
func interpretFunctions(unit m.Path, items []m.SourceItem, acc []interpretedItem) []interpretedItem {
	for _, item := range items {
		switch item.Kind {
		case m.ItemFunction:
			acc = append(acc, interpretItem(unit, item))
		case m.ItemModule:
			acc = interpretFunctions(unit, item.Children, acc)
		}
	}

	return acc
}

// discovery carries the per-function state of one discover call.
type discovery struct {
	unit     m.Path
	fn       interpretedItem
	strategy Strategy
	fixtures *FixtureIndex
	sync     m.Synchronicity
	awaitAll bool
	diags    []m.Diagnostic
}

func (d *discovery) report(kind m.DiagnosticKind, span m.Span, format string, args ...any) {
	d.diags = append(d.diags, newDiagnostic(kind, fmt.Sprintf(format, args...), d.unit, d.fn.base(), span))
}

func (s *scanner) discover(unit m.Path, fn interpretedItem, fixtures *FixtureIndex) ([]m.DiscoveredTest, []m.Diagnostic) {
	parameterized := fn.has(m.AttrParameterized)
	cases := ExpandCases(fn.attrs)
	runtime := runtimeOf(fn.attrs)

	flavors := make(map[m.CaseFlavor]int)
	for _, c := range cases.Cases {
		flavors[c.Flavor]++
	}

	isTest := parameterized || fn.has(m.AttrTest) || runtime != "" || len(cases.Cases) > 0
	if !isTest || fn.has(m.AttrFixture) {
		return nil, nil
	}

	d := &discovery{
		unit:     unit,
		fn:       fn,
		strategy: s.strategy,
		fixtures: fixtures,
		sync:     m.Sync,
		awaitAll: fn.has(m.AttrFuture),
	}

	switch {
	case runtime != "":
		d.sync = m.AsyncRuntime(runtime)
	case fn.item.Async && (parameterized || len(cases.Cases) > 0):
		d.sync = m.AsyncRuntime(DefaultAsyncRuntime)
	}

	for _, marker := range fn.markers {
		if marker.Conflict {
			return nil, nil
		}
	}

	if flavors[m.FlavorRstest] > 0 && flavors[m.FlavorTestCase] > 0 {
		d.report(m.DiagConflictingMarkers, fn.item.Span, "case and test_case entries on one function")
		return nil, d.diags
	}

	var tests []m.DiscoveredTest

	if flavors[m.FlavorTestCase] > 0 {
		tests = d.testCases(cases)
	} else {
		tests = d.rstest(cases, parameterized)
	}

	return tests, d.diags
}

func runtimeOf(attrs []m.Attribute) string {
	runtime := ""

	for _, attr := range attrs {
		if attr.Kind == m.AttrAsyncRuntime {
			runtime = attr.Runtime
		}
	}

	return runtime
}

func (d *discovery) newTest(name string, span m.Span) m.DiscoveredTest {
	return m.DiscoveredTest{
		Unit: d.unit,
		Path: d.fn.item.QualifiedPath,
		Name: name,
		Sync: d.sync,
		Span: span,
	}
}

// testCases expands test_case entries: arguments bind to every parameter
// in declaration order.
func (d *discovery) testCases(cases CaseList) []m.DiscoveredTest {
	params := d.fn.item.Params
	tests := make([]m.DiscoveredTest, 0, len(cases.Cases))

	for _, c := range cases.Cases {
		if len(c.Values) != len(params) {
			d.report(m.DiagInvalidArgument, c.Span, "test case %d has %d arguments, function takes %d", c.Index, len(c.Values), len(params))
			continue
		}

		test := d.newTest(CaseName(d.fn.base(), c), c.Span)
		test.Timeout = cases.EffectiveTimeout(c)
		test.Label = c.Label
		test.CaseIndex = intPtr(c.Index)

		for i, param := range params {
			v := c.Values[i]
			test.Bindings = append(test.Bindings, m.Binding{Param: param.Name, Source: m.BindCase, Value: &v})
		}

		tests = append(tests, test)
	}

	return tests
}

// rstest expands case entries or value combinations and resolves fixtures.
//
//nolint:cyclop // one branch per parameterization form
func (d *discovery) rstest(cases CaseList, parameterized bool) []m.DiscoveredTest {
	var (
		caseParams []int
		axes       []Axis
		axisParams []int
	)

	for i, marker := range d.fn.markers {
		param := d.fn.item.Params[i]

		switch marker.Kind {
		case m.MarkerCase:
			caseParams = append(caseParams, i)
		case m.MarkerValues:
			axes = append(axes, Axis{Param: param.Name, Source: m.BindValues, Values: marker.Values, Future: marker.Future, Awaited: marker.Awaited})
			axisParams = append(axisParams, i)
		case m.MarkerFiles:
			files, err := d.strategy.ExpandFiles(d.unit, marker.Values)
			if err != nil {
				d.report(m.DiagUnsupportedParameters, param.Span, "parameter `%s`: %v", param.Name, err)
				return nil
			}

			axes = append(axes, Axis{Param: param.Name, Source: m.BindFiles, Values: files, Future: marker.Future, Awaited: marker.Awaited})
			axisParams = append(axisParams, i)
		}
	}

	switch {
	case len(cases.Cases) > 0 && len(axes) > 0:
		d.report(m.DiagConflictingMarkers, d.fn.item.Span, "case entries combined with values or files parameters")
		return nil
	case len(caseParams) > 0 && len(cases.Cases) == 0:
		d.report(m.DiagConflictingMarkers, d.fn.item.Span, "`#[case]` parameters without case entries")
		return nil
	}

	fixtures, ok := d.resolveFixtures(parameterized)
	if !ok {
		return nil
	}

	base := d.fn.base()

	switch {
	case len(cases.Cases) > 0:
		return d.caseTests(cases, caseParams, fixtures)
	case len(axes) > 0:
		return d.combinationTests(base, cases, axes, axisParams, fixtures)
	}

	test := d.newTest(base, d.fn.item.Span)
	test.Timeout = cases.Default
	test.Bindings = d.bindings(fixtures, nil)

	return []m.DiscoveredTest{test}
}

// resolveFixtures binds every fixture parameter. Plain tests take no
// injected parameters, so only parameterized functions resolve.
func (d *discovery) resolveFixtures(parameterized bool) (map[int]m.Binding, bool) {
	bound := make(map[int]m.Binding)
	if !parameterized {
		return bound, true
	}

	ok := true

	for i, marker := range d.fn.markers {
		if marker.Kind != m.MarkerFixture {
			continue
		}

		param := d.fn.item.Params[i]

		fixture, err := d.fixtures.Resolve(marker.FixtureName(param.Name), d.fn.item.ModulePath(), marker.With)
		if err != nil {
			d.report(m.DiagUnresolvedFixture, param.Span, "parameter `%s`: %v", param.Name, err)
			ok = false

			continue
		}

		if surplus := len(marker.With) - len(fixture.Args); surplus > 0 {
			d.report(m.DiagInvalidArgument, param.Span, "parameter `%s`: with(...) passes %d argument(s) but fixture `%s` takes %d",
				param.Name, len(marker.With), fixture.Name, len(fixture.Args))
		}

		bound[i] = m.Binding{
			Param:    param.Name,
			Source:   m.BindFixture,
			Fixture:  fixture,
			Deferred: marker.Future,
			Awaited:  marker.Future && (marker.Awaited || d.awaitAll),
		}
	}

	return bound, ok
}

// bindings lays out per-parameter bindings in declaration order. perTest
// holds the bindings that vary between instances.
func (d *discovery) bindings(fixtures map[int]m.Binding, perTest map[int]m.Binding) []m.Binding {
	var out []m.Binding

	for i := range d.fn.item.Params {
		if b, ok := perTest[i]; ok {
			out = append(out, b)
		} else if b, ok := fixtures[i]; ok {
			out = append(out, b)
		}
	}

	return out
}

func (d *discovery) caseTests(cases CaseList, caseParams []int, fixtures map[int]m.Binding) []m.DiscoveredTest {
	tests := make([]m.DiscoveredTest, 0, len(cases.Cases))

	for _, c := range cases.Cases {
		if len(c.Values) != len(caseParams) {
			d.report(m.DiagInvalidArgument, c.Span, "case %d has %d arguments, function has %d case parameters", c.Index, len(c.Values), len(caseParams))
			continue
		}

		perTest := make(map[int]m.Binding, len(caseParams))

		for k, idx := range caseParams {
			v := c.Values[k]
			marker := d.fn.markers[idx]
			perTest[idx] = m.Binding{
				Param:    d.fn.item.Params[idx].Name,
				Source:   m.BindCase,
				Value:    &v,
				Deferred: marker.Future,
				Awaited:  marker.Future && (marker.Awaited || d.awaitAll),
			}
		}

		test := d.newTest(CaseName(d.fn.base(), c), c.Span)
		test.Timeout = cases.EffectiveTimeout(c)
		test.Label = c.Label
		test.CaseIndex = intPtr(c.Index)
		test.Bindings = d.bindings(fixtures, perTest)

		tests = append(tests, test)
	}

	return tests
}

func (d *discovery) combinationTests(base string, cases CaseList, axes []Axis, axisParams []int, fixtures map[int]m.Binding) []m.DiscoveredTest {
	combos := Combine(axes)
	names := CombinationNames(base, axes, combos)
	tests := make([]m.DiscoveredTest, 0, len(combos))

	for n, combo := range combos {
		perTest := make(map[int]m.Binding, len(axes))

		for a, pos := range combo {
			v := axes[a].Values[pos]
			perTest[axisParams[a]] = m.Binding{
				Param:    axes[a].Param,
				Source:   axes[a].Source,
				Value:    &v,
				Deferred: axes[a].Future,
				Awaited:  axes[a].Future && (axes[a].Awaited || d.awaitAll),
			}
		}

		test := d.newTest(names[n], d.fn.item.Span)
		test.Timeout = cases.Default
		test.Combination = combo
		test.Bindings = d.bindings(fixtures, perTest)

		tests = append(tests, test)
	}

	return tests
}

func intPtr(v int) *int {
	return &v
}
