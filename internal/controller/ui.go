// Package controller provides output adapters for displaying discovered test inventories.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeView
	ModeCompare
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithListMode sets the UI to print an inventory and exit.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithViewMode sets the UI to browse an inventory interactively.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// WithCompareMode sets the UI to print inventory differences.
func WithCompareMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCompare
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeList}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// Format is an inventory rendering.
type Format string

// Supported formats.
const (
	FormatNames Format = "names"
	FormatTable Format = "table"
	FormatTree  Format = "tree"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned for format names outside the supported set.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name from flags or config.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatTable, nil
	case FormatNames, FormatTable, FormatTree, FormatJSON, FormatYAML:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Comparison is the difference between two inventories.
type Comparison struct {
	From    string
	To      string
	Diff    string
	Added   []string
	Removed []string
}

// UI defines the interface for displaying discovery progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayDiscoveryStart(ctx context.Context, units int, parallel int, strategy string)
	DisplayUnitScanned(ctx context.Context, result m.ScanResult)
	DisplayInventory(ctx context.Context, inventory m.Inventory, format Format) error
	DisplayDiagnostics(ctx context.Context, diags []m.Diagnostic)
	DisplayComparison(ctx context.Context, comparison Comparison) error
}

// NewUI picks the interactive TUI on terminals and SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
