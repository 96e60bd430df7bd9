package controller

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// sampleInventory is lib.rs with `mod tests { fn f (2 cases); async fn slow }`.
func sampleInventory() m.Inventory {
	second := time.Second
	twoSeconds := 2 * time.Second
	zero, one := 0, 1

	caseTest := func(idx *int, name string, value string) m.DiscoveredTest {
		return m.DiscoveredTest{
			ID:        "lib.rs::tests::f::" + name,
			Unit:      "lib.rs",
			Path:      []string{"tests", "f"},
			Name:      "tests::f::" + name,
			Sync:      m.Sync,
			CaseIndex: idx,
			Bindings:  []m.Binding{{Param: "x", Source: m.BindCase, Value: &m.Value{Raw: value, Kind: m.ValueInt}}},
			Span:      m.Span{StartLine: 3, EndLine: 3},
		}
	}

	case0 := caseTest(&zero, "case_0", "1")
	case1 := caseTest(&one, "case_1", "2")
	case1.Timeout = &second

	slow := m.DiscoveredTest{
		ID:      "lib.rs::tests::slow",
		Unit:    "lib.rs",
		Path:    []string{"tests", "slow"},
		Name:    "tests::slow",
		Sync:    m.AsyncRuntime("tokio"),
		Timeout: &twoSeconds,
		Bindings: []m.Binding{{
			Param:    "db",
			Source:   m.BindFixture,
			Fixture:  &m.FixtureBinding{Name: "db", Path: []string{"tests", "db"}, Async: true},
			Deferred: true,
			Awaited:  true,
		}},
		Span: m.Span{StartLine: 10, EndLine: 12},
	}

	tree := &m.TestNode{Kind: m.NodeUnit, Name: "lib.rs", Children: []*m.TestNode{{
		Kind: m.NodeModule,
		Name: "tests",
		Path: []string{"tests"},
		Span: m.Span{StartLine: 1, EndLine: 13},
		Children: []*m.TestNode{
			{
				Kind: m.NodeFunction,
				Name: "f",
				Path: []string{"tests", "f"},
				Children: []*m.TestNode{
					{Kind: m.NodeTest, Name: "case_0", Path: []string{"tests", "f"}, Test: &case0},
					{Kind: m.NodeTest, Name: "case_1", Path: []string{"tests", "f"}, Test: &case1},
				},
			},
			{Kind: m.NodeTest, Name: "slow", Path: []string{"tests", "slow"}, Test: &slow},
		},
	}}}

	return m.Inventory{Version: 1, Units: []m.ScanResult{{Unit: "lib.rs", Tree: tree}}}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":       FormatTable,
		"names":  FormatNames,
		" TREE ": FormatTree,
		"json":   FormatJSON,
		"yaml":   FormatYAML,
	}

	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRenderInventory_Names(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderInventory(&buf, sampleInventory(), FormatNames))

	assert.Equal(t, "lib.rs::tests::f::case_0\nlib.rs::tests::f::case_1\nlib.rs::tests::slow\n", buf.String())
}

func TestRenderInventory_Table(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderInventory(&buf, sampleInventory(), FormatTable))

	out := buf.String()
	assert.Contains(t, out, "lib.rs::tests::f::case_0")
	assert.Contains(t, out, "x=2")
	assert.Contains(t, out, "async-runtime:tokio")
	assert.Contains(t, out, "db=fixture:db(async).await")
	assert.Contains(t, strings.ToLower(out), "3 tests")
}

func TestRenderInventory_Tree(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderInventory(&buf, sampleInventory(), FormatTree))

	want := "lib.rs (3)\n" +
		"└── mod tests\n" +
		"    ├── f (2)\n" +
		"    │   ├── case_0\n" +
		"    │   └── case_1 timeout=1s\n" +
		"    └── slow [tokio] timeout=2s\n"

	assert.Equal(t, want, buf.String())
}

func TestRenderInventory_JSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderInventory(&buf, sampleInventory(), FormatJSON))

	var decoded m.Inventory
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded.CountTests())
}

func TestRenderInventory_UnknownFormat(t *testing.T) {
	err := RenderInventory(&bytes.Buffer{}, sampleInventory(), Format("xml"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatBindings(t *testing.T) {
	bindings := []m.Binding{
		{Param: "a", Value: &m.Value{Raw: `"x"`}},
		{Param: "b", Value: &m.Value{Raw: "1"}, Deferred: true},
		{Param: "c", Fixture: &m.FixtureBinding{Name: "conn"}},
	}

	assert.Equal(t, `a="x", b=1 (deferred), c=fixture:conn`, FormatBindings(bindings))
	assert.Empty(t, FormatBindings(nil))
}
