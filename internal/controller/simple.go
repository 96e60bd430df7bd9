package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// SimpleUI implements UI by printing to the command's output streams.
// Progress goes to stderr so stdout stays machine readable.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = newStartConfig(options).mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bar != nil {
		_ = s.bar.Finish()
		s.bar = nil
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayDiscoveryStart announces the scan and sets up the progress bar.
func (s *SimpleUI) DisplayDiscoveryStart(ctx context.Context, units int, parallel int, strategy string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.errorf("Scanning %d file(s) with %d worker(s) (%s strategy)\n", units, parallel, strategy)

	if units == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.bar = progressbar.NewOptions(units,
		progressbar.OptionSetDescription(color.CyanString("Discovering tests")),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(s.cmd.ErrOrStderr()),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprint(s.cmd.ErrOrStderr(), "\n")
		}),
	)
}

// DisplayUnitScanned advances the progress bar. Called from worker goroutines.
func (s *SimpleUI) DisplayUnitScanned(ctx context.Context, result m.ScanResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bar == nil {
		return
	}

	s.bar.Describe(color.CyanString("Discovering tests ") + string(result.Unit))
	_ = s.bar.Add(1)
}

// DisplayInventory prints the inventory in the requested format.
func (s *SimpleUI) DisplayInventory(ctx context.Context, inventory m.Inventory, format Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.Close(ctx)

	if s.mode == ModeView {
		format = FormatTree
	}

	return RenderInventory(s.cmd.OutOrStdout(), inventory, format)
}

// DisplayDiagnostics prints diagnostics to stderr, colored by kind.
func (s *SimpleUI) DisplayDiagnostics(ctx context.Context, diags []m.Diagnostic) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(diags) == 0 {
		return
	}

	s.errorf("\n%s\n", color.YellowString("%d diagnostic(s):", len(diags)))

	for _, diag := range diags {
		s.errorf("  %s\n", diagnosticColor(diag.Kind)(diag.String()))
	}
}

func diagnosticColor(kind m.DiagnosticKind) func(format string, a ...interface{}) string {
	switch kind {
	case m.DiagParseError, m.DiagReadError, m.DiagUnresolvedFixture:
		return color.RedString
	case m.DiagConflictingMarkers, m.DiagUnsupportedParameters:
		return color.YellowString
	}

	return color.CyanString
}

// DisplayComparison prints a unified diff and a summary line.
func (s *SimpleUI) DisplayComparison(ctx context.Context, comparison Comparison) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.Close(ctx)

	if comparison.Diff == "" {
		s.printf("%s\n", color.GreenString("✓ No differences between %s and %s", comparison.From, comparison.To))
		return nil
	}

	s.printf("%s", comparison.Diff)
	s.printf("\n%s %s\n",
		color.GreenString("+%d added", len(comparison.Added)),
		color.RedString("-%d removed", len(comparison.Removed)))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
