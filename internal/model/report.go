package model

// TestNodeKind classifies the nodes of a unit's test tree.
type TestNodeKind string

const (
	NodeUnit     TestNodeKind = "unit"
	NodeModule   TestNodeKind = "module"
	NodeFunction TestNodeKind = "function"
	NodeTest     TestNodeKind = "test"
)

// TestNode is one node of the test tree. Test is only set on NodeTest.
type TestNode struct {
	Kind     TestNodeKind    `json:"kind" yaml:"kind"`
	Name     string          `json:"name" yaml:"name"`
	Path     []string        `json:"path,omitempty" yaml:"path,omitempty"`
	Span     Span            `json:"span" yaml:"span"`
	Test     *DiscoveredTest `json:"test,omitempty" yaml:"test,omitempty"`
	Children []*TestNode     `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tests returns the instances below the node in tree order.
func (n *TestNode) Tests() []DiscoveredTest {
	if n == nil {
		return nil
	}

	var tests []DiscoveredTest
	if n.Test != nil {
		tests = append(tests, *n.Test)
	}

	for _, child := range n.Children {
		tests = append(tests, child.Tests()...)
	}

	return tests
}

// CountTests returns the number of instances below the node.
func (n *TestNode) CountTests() int {
	if n == nil {
		return 0
	}

	count := 0
	if n.Test != nil {
		count++
	}

	for _, child := range n.Children {
		count += child.CountTests()
	}

	return count
}

// ScanResult is everything one scan of one unit produces.
type ScanResult struct {
	Unit        Path             `json:"unit" yaml:"unit"`
	Hash        string           `json:"hash,omitempty" yaml:"hash,omitempty"`
	Items       []SourceItem     `json:"-" yaml:"-"`
	Tree        *TestNode        `json:"tree" yaml:"tree"`
	Tests       []DiscoveredTest `json:"-" yaml:"-"`
	Diagnostics []Diagnostic     `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Inventory is the merged result of scanning many units.
type Inventory struct {
	Version int          `json:"version" yaml:"version"`
	Units   []ScanResult `json:"units" yaml:"units"`
}

// CountTests returns the total number of instances in the inventory.
func (inv Inventory) CountTests() int {
	count := 0
	for _, unit := range inv.Units {
		count += unit.Tree.CountTests()
	}

	return count
}

// Tests flattens the inventory in unit order.
func (inv Inventory) Tests() []DiscoveredTest {
	var tests []DiscoveredTest
	for _, unit := range inv.Units {
		tests = append(tests, unit.Tree.Tests()...)
	}

	return tests
}

// Diagnostics collects the diagnostics of every unit.
func (inv Inventory) Diagnostics() []Diagnostic {
	var diags []Diagnostic
	for _, unit := range inv.Units {
		diags = append(diags, unit.Diagnostics...)
	}

	return diags
}
