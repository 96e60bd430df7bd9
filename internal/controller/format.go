package controller

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"rsdisco.dev/pkg/rsdisco/internal/adapter"
	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// RenderInventory writes inventory to w in the given format.
func RenderInventory(w io.Writer, inventory m.Inventory, format Format) error {
	switch format {
	case FormatNames:
		return renderNames(w, inventory)
	case FormatTable:
		_, err := io.WriteString(w, renderTable(inventory))
		return err
	case FormatTree:
		_, err := io.WriteString(w, RenderTree(inventory))
		return err
	case FormatJSON, FormatYAML:
		data, err := adapter.EncodeInventory(string(format), inventory)
		if err != nil {
			return fmt.Errorf("encode inventory: %w", err)
		}

		_, err = w.Write(data)

		return err
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func renderNames(w io.Writer, inventory m.Inventory) error {
	for _, test := range inventory.Tests() {
		if _, err := fmt.Fprintln(w, test.ID); err != nil {
			return err
		}
	}

	return nil
}

func renderTable(inventory m.Inventory) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Test", "Mode", "Timeout", "Arguments"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	for _, test := range inventory.Tests() {
		table.Append([]string{test.ID, string(test.Sync), formatTimeout(test), FormatBindings(test.Bindings)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(inventory.Units)),
		"",
		"",
		fmt.Sprintf("%d tests", inventory.CountTests()),
	})

	table.Render()

	return tableBuffer.String()
}

func formatTimeout(test m.DiscoveredTest) string {
	if test.Timeout == nil {
		return "-"
	}

	return test.Timeout.String()
}

// FormatBindings renders bindings as `param=value` pairs.
func FormatBindings(bindings []m.Binding) string {
	parts := make([]string, 0, len(bindings))

	for _, b := range bindings {
		parts = append(parts, b.Param+"="+formatBinding(b))
	}

	return strings.Join(parts, ", ")
}

func formatBinding(b m.Binding) string {
	var text string

	switch {
	case b.Value != nil:
		text = b.Value.Raw
	case b.Fixture != nil:
		text = "fixture:" + b.Fixture.Name
		if b.Fixture.Async {
			text += "(async)"
		}
	}

	switch {
	case b.Awaited:
		text += ".await"
	case b.Deferred:
		text += " (deferred)"
	}

	return text
}

// RenderTree draws every unit as an indented tree.
func RenderTree(inventory m.Inventory) string {
	var b strings.Builder

	for _, unit := range inventory.Units {
		if unit.Tree == nil {
			continue
		}

		fmt.Fprintf(&b, "%s (%d)\n", unit.Unit, unit.Tree.CountTests())
		writeTreeChildren(&b, unit.Tree.Children, "")
	}

	return b.String()
}

func writeTreeChildren(b *strings.Builder, nodes []*m.TestNode, indent string) {
	for i, node := range nodes {
		branch, next := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, next = "└── ", "    "
		}

		fmt.Fprintf(b, "%s%s%s\n", indent, branch, treeLabel(node))
		writeTreeChildren(b, node.Children, indent+next)
	}
}

func treeLabel(node *m.TestNode) string {
	switch node.Kind {
	case m.NodeModule:
		return "mod " + node.Name
	case m.NodeFunction:
		return fmt.Sprintf("%s (%d)", node.Name, node.CountTests())
	case m.NodeTest:
		if node.Test == nil {
			return node.Name
		}

		label := node.Name
		if node.Test.Sync.IsAsync() {
			label += " [" + node.Test.Sync.Runtime() + "]"
		}

		if node.Test.Timeout != nil {
			label += " timeout=" + node.Test.Timeout.String()
		}

		return label
	}

	return node.Name
}
