package adapter

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

func extract(t *testing.T, src string) ([]m.SourceItem, []m.Diagnostic) {
	t.Helper()

	items, diags, err := NewLocalRustFileAdapter().Extract(m.SourceUnit{Path: "src/lib.rs", Content: []byte(src)})
	require.NoError(t, err)

	return items, diags
}

func attrNames(item m.SourceItem) []string {
	names := make([]string, 0, len(item.Attributes))
	for _, attr := range item.Attributes {
		names = append(names, attr.Name)
	}

	return names
}

func functionNames(items []m.SourceItem) []string {
	var names []string

	for _, item := range items {
		if item.Kind == m.ItemFunction {
			names = append(names, item.Name)
		}

		names = append(names, functionNames(item.Children)...)
	}

	return names
}

func TestLocalRustFileAdapter_Extract_TopLevelAndNested(t *testing.T) {
	src := `#[test]
fn top_level_math() {
    assert_eq!(1 + 1, 2);
}

mod nested {
    #[test]
    fn nested_math() {}

    mod extra_nested {
        #[test]
        fn extra_nested_math() {}
    }
}
`
	items, diags := extract(t, src)
	require.Empty(t, diags)
	require.Len(t, items, 2)

	top := items[0]
	assert.Equal(t, m.ItemFunction, top.Kind)
	assert.Equal(t, []string{"top_level_math"}, top.QualifiedPath)
	assert.Empty(t, top.ModulePath())
	assert.Equal(t, []string{"test"}, attrNames(top))
	assert.Equal(t, 2, top.Span.StartLine)
	assert.Equal(t, 4, top.Span.EndLine)

	nested := items[1]
	assert.Equal(t, m.ItemModule, nested.Kind)
	require.Len(t, nested.Children, 2)
	assert.Equal(t, []string{"nested", "nested_math"}, nested.Children[0].QualifiedPath)

	extra := nested.Children[1]
	assert.Equal(t, m.ItemModule, extra.Kind)
	require.Len(t, extra.Children, 1)
	assert.Equal(t, []string{"nested", "extra_nested", "extra_nested_math"}, extra.Children[0].QualifiedPath)
}

func TestLocalRustFileAdapter_Extract_CommentsBetweenAttributes(t *testing.T) {
	src := `#[rstest]
#[case(0)]
// random comment in between
#[case(1)]
/* block */
#[case::two(2)]
fn parameterized(#[case] x: u64) {}
`
	items, diags := extract(t, src)
	require.Empty(t, diags)
	require.Len(t, items, 1)

	fn := items[0]
	assert.Equal(t, []string{"rstest", "case", "case", "case::two"}, attrNames(fn))

	for i, attr := range fn.Attributes {
		assert.Equal(t, i, attr.Ordinal)
	}

	assert.Equal(t, []string{"1"}, fn.Attributes[2].Args)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "x", fn.Params[0].Name)
	assert.Equal(t, "case", fn.Params[0].Attributes[0].Name)
}

func TestLocalRustFileAdapter_Extract_AttributesResetOnOtherItems(t *testing.T) {
	src := `#[derive(Debug)]
struct S;

fn plain() {}

#[test]
async fn later() {}
`
	items, diags := extract(t, src)
	require.Empty(t, diags)
	require.Len(t, items, 2)

	assert.Empty(t, items[0].Attributes)
	assert.False(t, items[0].Async)
	assert.Equal(t, []string{"test"}, attrNames(items[1]))
	assert.True(t, items[1].Async)
}

func TestLocalRustFileAdapter_Extract_OutOfLineModule(t *testing.T) {
	items, diags := extract(t, "mod mymod;\n\nfn main() {}\n")
	require.Empty(t, diags)
	require.Len(t, items, 2)

	assert.Equal(t, m.ItemModule, items[0].Kind)
	assert.Empty(t, items[0].Children)
}

func TestLocalRustFileAdapter_Extract_MalformedFunctionKeepsSiblings(t *testing.T) {
	src := `#[test]
fn first() {}

#[test]
fn broken(x: ) {}

#[test]
fn last() {}
`
	items, diags := extract(t, src)

	names := functionNames(items)
	assert.Contains(t, names, "first")
	assert.Contains(t, names, "last")
	assert.NotContains(t, names, "broken")

	require.NotEmpty(t, diags)
	assert.Equal(t, m.DiagParseError, diags[0].Kind)
	assert.Equal(t, m.Path("src/lib.rs"), diags[0].Unit)
}

func TestLocalRustFileAdapter_Extract_Fixture(t *testing.T) {
	src, err := os.ReadFile("testdata/rstest_lib.rs")
	require.NoError(t, err)

	items, diags := extract(t, string(src))
	require.Empty(t, diags)
	require.Len(t, items, 1)

	tests := items[0]
	assert.Equal(t, "tests", tests.Name)
	assert.Equal(t, []string{"cfg"}, attrNames(tests))

	assert.Equal(t, []string{
		"bar",
		"fixture_injected",
		"long_and_boring_descriptive_name",
		"fixture_rename",
		"parameterized",
		"parameterized_tokio",
		"parameterized_async_std",
		"fifth",
	}, functionNames(items))

	fifth := tests.Children[len(tests.Children)-1]
	require.Len(t, fifth.Params, 2)
	assert.Equal(t, "word", fifth.Params[0].Name)
	assert.Equal(t, []string{`"a"`, `"bb"`, `"ccc"`}, fifth.Params[0].Attributes[0].Args)

	tokio := tests.Children[5]
	assert.True(t, tokio.Async)
	assert.Equal(t, []string{"rstest", "case", "case", "case", "case", "tokio::test"}, attrNames(tokio))
}

func TestLocalRustFileAdapter_Extract_Deterministic(t *testing.T) {
	src, err := os.ReadFile("testdata/rstest_lib.rs")
	require.NoError(t, err)

	first, _ := extract(t, string(src))
	second, _ := extract(t, string(src))

	assert.Equal(t, first, second)
}
