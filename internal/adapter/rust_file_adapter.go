package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
	"rsdisco.dev/pkg/rsdisco/pkg"
)

// RustFileAdapter encapsulates syntax extraction for Rust-like sources so the
// domain layer works on SourceItems only and never touches a syntax tree.
type RustFileAdapter interface {
	// Extract builds the structural item tree of a unit. Items that cannot
	// be extracted are reported as diagnostics; the error is reserved for
	// failures of the parser itself.
	Extract(unit m.SourceUnit) ([]m.SourceItem, []m.Diagnostic, error)
}

// LocalRustFileAdapter provides a RustFileAdapter backed by tree-sitter.
type LocalRustFileAdapter struct{}

// NewLocalRustFileAdapter constructs a LocalRustFileAdapter.
func NewLocalRustFileAdapter() *LocalRustFileAdapter {
	return &LocalRustFileAdapter{}
}

// Extract parses the unit and walks its top-level items. A new tree-sitter
// parser is created per call so concurrent extractions share nothing.
func (a *LocalRustFileAdapter) Extract(unit m.SourceUnit) ([]m.SourceItem, []m.Diagnostic, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, unit.Content)
	if err != nil {
		return nil, nil, fmt.Errorf("tree-sitter parse failed for %s: %w", unit.Path, err)
	}
	defer tree.Close()

	ex := &extraction{
		unit:  unit.Path,
		src:   unit.Content,
		lines: newLineIndex(unit.Content),
	}

	items := ex.items(tree.RootNode(), nil)

	slog.Debug("extracted items", "unit", unit.Path, "items", len(items), "diagnostics", len(ex.diags))

	return items, ex.diags, nil
}

type extraction struct {
	unit  m.Path
	src   []byte
	lines lineIndex
	diags []m.Diagnostic
}

// items walks the named children of a source file or module body. Attribute
// items accumulate until the item they decorate; comments are transparent.
func (ex *extraction) items(parent *sitter.Node, modPath []string) []m.SourceItem {
	var (
		items   []m.SourceItem
		pending []*sitter.Node
	)

	if parent == nil {
		return nil
	}

	for i := 0; i < int(parent.NamedChildCount()); i++ {
		child := parent.NamedChild(i)
		if child == nil {
			continue
		}

		switch child.Type() {
		case "attribute_item":
			pending = append(pending, child)

			continue
		case "line_comment", "block_comment", "inner_attribute_item":
			continue
		case "function_item":
			if item, ok := ex.function(child, pending, modPath); ok {
				items = append(items, item)
			}
		case "mod_item":
			if item, ok := ex.module(child, pending, modPath); ok {
				items = append(items, item)
			}
		case "ERROR":
			ex.report(m.DiagParseError, "unparseable syntax", strings.Join(modPath, "::"), ex.nodeSpan(child))
			// Complete items nested in the error region are still discoverable.
			items = append(items, ex.items(child, modPath)...)
		}

		pending = nil
	}

	return items
}

func (ex *extraction) function(node *sitter.Node, attrNodes []*sitter.Node, modPath []string) (m.SourceItem, bool) {
	nameNode := node.ChildByFieldName("name")
	paramsNode := node.ChildByFieldName("parameters")

	if nameNode == nil || nameNode.IsMissing() || paramsNode == nil || paramsNode.IsMissing() {
		ex.report(m.DiagParseError, "function without name or parameter list", strings.Join(modPath, "::"), ex.nodeSpan(node))
		return m.SourceItem{}, false
	}

	name := nameNode.Content(ex.src)
	path := appendPath(modPath, name)
	qualified := strings.Join(path, "::")

	attrs, ok := ex.attributes(attrNodes, qualified)
	if !ok {
		return m.SourceItem{}, false
	}

	params, err := parseParameters(paramsNode.Content(ex.src), int(paramsNode.StartByte()), ex.lines)
	if err != nil {
		ex.report(m.DiagParseError, err.Error(), qualified, ex.nodeSpan(paramsNode))
		return m.SourceItem{}, false
	}

	header := string(ex.src[node.StartByte():nameNode.StartByte()])

	return m.SourceItem{
		Kind:          m.ItemFunction,
		Name:          name,
		QualifiedPath: path,
		Attributes:    attrs,
		Params:        params,
		Async:         containsWord(header, "async"),
		Span:          ex.nodeSpan(node),
	}, true
}

func (ex *extraction) module(node *sitter.Node, attrNodes []*sitter.Node, modPath []string) (m.SourceItem, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil || nameNode.IsMissing() {
		ex.report(m.DiagParseError, "module without name", strings.Join(modPath, "::"), ex.nodeSpan(node))
		return m.SourceItem{}, false
	}

	name := nameNode.Content(ex.src)
	path := appendPath(modPath, name)

	attrs, ok := ex.attributes(attrNodes, strings.Join(path, "::"))
	if !ok {
		return m.SourceItem{}, false
	}

	return m.SourceItem{
		Kind:          m.ItemModule,
		Name:          name,
		QualifiedPath: path,
		Attributes:    attrs,
		Span:          ex.nodeSpan(node),
		Children:      ex.items(node.ChildByFieldName("body"), path),
	}, true
}

func (ex *extraction) attributes(nodes []*sitter.Node, item string) ([]m.AttributeRecord, bool) {
	records := make([]m.AttributeRecord, 0, len(nodes))

	for ordinal, node := range nodes {
		text := pkg.StripComments(node.Content(ex.src))

		record, err := parseAttribute(text, int(node.StartByte()), ex.lines)
		if err != nil {
			ex.report(m.DiagParseError, err.Error(), item, ex.nodeSpan(node))
			return nil, false
		}

		record.Ordinal = ordinal
		records = append(records, record)
	}

	return records, true
}

func (ex *extraction) report(kind m.DiagnosticKind, message, item string, span m.Span) {
	slog.Warn("syntax extraction problem", "unit", ex.unit, "line", span.StartLine, "kind", kind, "message", message)

	ex.diags = append(ex.diags, m.Diagnostic{
		Kind:    kind,
		Message: message,
		Unit:    ex.unit,
		Item:    item,
		Span:    span,
	})
}

func (ex *extraction) nodeSpan(node *sitter.Node) m.Span {
	return m.Span{
		StartByte: int(node.StartByte()),
		EndByte:   int(node.EndByte()),
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
}

func appendPath(modPath []string, name string) []string {
	path := make([]string, 0, len(modPath)+1)
	path = append(path, modPath...)

	return append(path, name)
}

func containsWord(text, word string) bool {
	for _, field := range strings.Fields(text) {
		if field == word {
			return true
		}
	}

	return false
}
