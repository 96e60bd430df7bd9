package domain

import (
	"strings"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// TestsByItem holds the tests discovered per function, keyed by the start
// byte of the function item.
type TestsByItem map[int][]m.DiscoveredTest

// BuildTree composes a unit's items and the tests discovered per function
// into one tree in declaration order. Modules without tests are left out.
// Parameterized functions group their instances under a function node; plain
// tests are leaves of their module.
func BuildTree(unit m.Path, items []m.SourceItem, tests TestsByItem) *m.TestNode {
	root := &m.TestNode{Kind: m.NodeUnit, Name: string(unit)}
	root.Children = buildChildren(items, tests)

	return root
}

func buildChildren(items []m.SourceItem, tests TestsByItem) []*m.TestNode {
	var nodes []*m.TestNode

	for _, item := range items {
		switch item.Kind {
		case m.ItemModule:
			children := buildChildren(item.Children, tests)
			if len(children) == 0 {
				continue
			}

			nodes = append(nodes, &m.TestNode{
				Kind:     m.NodeModule,
				Name:     item.Name,
				Path:     item.QualifiedPath,
				Span:     item.Span,
				Children: children,
			})
		case m.ItemFunction:
			if node := functionNode(item, tests[item.Span.StartByte]); node != nil {
				nodes = append(nodes, node)
			}
		}
	}

	return nodes
}

func functionNode(item m.SourceItem, tests []m.DiscoveredTest) *m.TestNode {
	if len(tests) == 0 {
		return nil
	}

	if len(tests) == 1 && !tests[0].Parameterized() {
		test := tests[0]

		return &m.TestNode{Kind: m.NodeTest, Name: item.Name, Path: item.QualifiedPath, Span: test.Span, Test: &test}
	}

	node := &m.TestNode{Kind: m.NodeFunction, Name: item.Name, Path: item.QualifiedPath, Span: item.Span}
	prefix := joinPath(item.QualifiedPath) + pathSep

	for i := range tests {
		test := tests[i]
		node.Children = append(node.Children, &m.TestNode{
			Kind: m.NodeTest,
			Name: strings.TrimPrefix(test.Name, prefix),
			Path: item.QualifiedPath,
			Span: test.Span,
			Test: &test,
		})
	}

	return node
}
