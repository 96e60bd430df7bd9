package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// TUI implements UI using Bubble Tea for the interactive view mode. Every
// other mode prints like SimpleUI.
type TUI struct {
	*SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd)}
}

// DisplayInventory opens the tree browser in view mode.
func (t *TUI) DisplayInventory(ctx context.Context, inventory m.Inventory, format Format) error {
	if t.mode != ModeView {
		return t.SimpleUI.DisplayInventory(ctx, inventory, format)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	t.Close(ctx)

	program := tea.NewProgram(
		newInventoryModel(inventory),
		tea.WithOutput(t.cmd.OutOrStdout()),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tree browser: %w", err)
	}

	return nil
}

const (
	headerLines  = 2
	detailLines  = 7
	defaultWidth = 80
	defaultRows  = 20
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	moduleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	functionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	unitStyle     = lipgloss.NewStyle().Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	detailStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).PaddingLeft(1)
)

type treeRow struct {
	node  *m.TestNode
	depth int
}

// inventoryModel is the Bubble Tea model of the tree browser. Units,
// modules and functions fold; the panel below the tree describes the
// selected node.
type inventoryModel struct {
	roots     []*m.TestNode
	collapsed map[*m.TestNode]bool
	rows      []treeRow
	cursor    int
	total     int
	diags     int
	viewport  viewport.Model
	width     int
	quitting  bool
}

func newInventoryModel(inventory m.Inventory) inventoryModel {
	model := inventoryModel{
		collapsed: make(map[*m.TestNode]bool),
		total:     inventory.CountTests(),
		diags:     len(inventory.Diagnostics()),
		viewport:  viewport.New(defaultWidth, defaultRows),
		width:     defaultWidth,
	}

	for _, unit := range inventory.Units {
		if unit.Tree != nil {
			model.roots = append(model.roots, unit.Tree)
		}
	}

	model.refresh()

	return model
}

func (im inventoryModel) Init() tea.Cmd {
	return nil
}

func (im inventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		im.width = msg.Width
		im.viewport.Width = msg.Width

		im.viewport.Height = msg.Height - headerLines - detailLines
		if im.viewport.Height < 1 {
			im.viewport.Height = 1
		}

		im.refresh()

		return im, nil

	case tea.KeyMsg:
		return im.handleKeyPress(msg)
	}

	return im, nil
}

//nolint:cyclop // Key handling requires multiple cases for UI navigation
func (im inventoryModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		im.quitting = true
		return im, tea.Quit
	case "down", "j":
		im.cursor++
	case "up", "k":
		im.cursor--
	case "g", "home":
		im.cursor = 0
	case "G", "end":
		im.cursor = len(im.rows) - 1
	case "d", "pgdown":
		im.cursor += im.viewport.Height
	case "u", "pgup":
		im.cursor -= im.viewport.Height
	case "enter", " ", "right", "l", "left", "h":
		im.toggle(msg.String())
	}

	im.refresh()

	return im, nil
}

func (im *inventoryModel) toggle(key string) {
	if im.cursor < 0 || im.cursor >= len(im.rows) {
		return
	}

	node := im.rows[im.cursor].node
	if len(node.Children) == 0 {
		return
	}

	switch key {
	case "right", "l":
		delete(im.collapsed, node)
	case "left", "h":
		im.collapsed[node] = true
	default:
		im.collapsed[node] = !im.collapsed[node]
	}
}

// refresh rebuilds the visible rows, clamps the cursor and scrolls the
// viewport so the cursor stays on screen.
func (im *inventoryModel) refresh() {
	im.rows = im.rows[:0]
	for _, root := range im.roots {
		im.appendRows(root, 0)
	}

	if im.cursor >= len(im.rows) {
		im.cursor = len(im.rows) - 1
	}

	if im.cursor < 0 {
		im.cursor = 0
	}

	lines := make([]string, 0, len(im.rows))
	for i, row := range im.rows {
		lines = append(lines, im.renderRow(i, row))
	}

	im.viewport.SetContent(strings.Join(lines, "\n"))

	switch {
	case im.cursor < im.viewport.YOffset:
		im.viewport.SetYOffset(im.cursor)
	case im.cursor >= im.viewport.YOffset+im.viewport.Height:
		im.viewport.SetYOffset(im.cursor - im.viewport.Height + 1)
	}
}

func (im *inventoryModel) appendRows(node *m.TestNode, depth int) {
	im.rows = append(im.rows, treeRow{node: node, depth: depth})

	if im.collapsed[node] {
		return
	}

	for _, child := range node.Children {
		im.appendRows(child, depth+1)
	}
}

func (im inventoryModel) renderRow(i int, row treeRow) string {
	marker := "  "
	if len(row.node.Children) > 0 {
		marker = "▾ "
		if im.collapsed[row.node] {
			marker = "▸ "
		}
	}

	var label string

	switch row.node.Kind {
	case m.NodeUnit:
		label = unitStyle.Render(fmt.Sprintf("%s (%d)", row.node.Name, row.node.CountTests()))
	case m.NodeModule:
		label = moduleStyle.Render("mod " + row.node.Name)
	case m.NodeFunction:
		label = functionStyle.Render(fmt.Sprintf("%s (%d)", row.node.Name, row.node.CountTests()))
	default:
		label = treeLabel(row.node)
	}

	line := strings.Repeat("  ", row.depth) + marker + label
	if i == im.cursor {
		return cursorStyle.Render(line)
	}

	return line
}

func (im inventoryModel) View() string {
	if im.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("rsdisco - discovered tests"))
	b.WriteString(faintStyle.Render(fmt.Sprintf("  %d test(s), %d diagnostic(s)", im.total, im.diags)))
	b.WriteString("\n\n")

	if len(im.rows) == 0 {
		b.WriteString("  📭 No tests found\n")
		return b.String()
	}

	b.WriteString(im.viewport.View())
	b.WriteString("\n")
	b.WriteString(detailStyle.Width(im.width).Render(im.details()))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("↑/k ↓/j move | enter fold | g/G top/bottom | q quit"))

	return b.String()
}

// details describes the node under the cursor.
func (im inventoryModel) details() string {
	if im.cursor >= len(im.rows) {
		return ""
	}

	node := im.rows[im.cursor].node
	if node.Test == nil {
		return fmt.Sprintf("%s %s\nlines %d-%d | %d test(s)",
			node.Kind, strings.Join(node.Path, "::"), node.Span.StartLine, node.Span.EndLine, node.CountTests())
	}

	test := node.Test

	var b strings.Builder

	fmt.Fprintf(&b, "id:       %s\n", test.ID)
	fmt.Fprintf(&b, "mode:     %s\n", test.Sync)
	fmt.Fprintf(&b, "timeout:  %s\n", formatTimeout(*test))
	fmt.Fprintf(&b, "args:     %s\n", FormatBindings(test.Bindings))
	fmt.Fprintf(&b, "location: %s:%d", test.Unit, test.Span.StartLine)

	return b.String()
}
