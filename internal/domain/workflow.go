package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"rsdisco.dev/pkg/rsdisco/internal/adapter"
	"rsdisco.dev/pkg/rsdisco/internal/controller"
	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// DiscoverArgs selects the units to scan and how to scan them.
type DiscoverArgs struct {
	Paths    []m.Path
	Exclude  []string
	Parallel int
	Strategy StrategyKind
}

// ListArgs contains the arguments for the list command.
type ListArgs struct {
	DiscoverArgs
	Format      controller.Format
	Export      m.Path
	Diagnostics bool
}

// ViewArgs contains the arguments for the view command.
type ViewArgs struct {
	DiscoverArgs
}

// CompareArgs contains the arguments for comparing two inventories. From
// and To are inventory files or paths to scan.
type CompareArgs struct {
	DiscoverArgs
	From string
	To   string
}

// Workflow drives discovery across many units and hands results to the UI.
type Workflow interface {
	Discover(ctx context.Context, args DiscoverArgs) (m.Inventory, error)
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
	Compare(ctx context.Context, args CompareArgs) error
}

// ScannerFactory builds the scanner used for one discovery run.
type ScannerFactory func(kind StrategyKind) Scanner

// NewScannerFactory returns a factory pairing the Rust extractor with the
// strategy of the requested kind.
func NewScannerFactory(rust adapter.RustFileAdapter, fs adapter.SourceFSAdapter) ScannerFactory {
	return func(kind StrategyKind) Scanner {
		return NewScanner(rust, NewStrategy(kind, fs))
	}
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.InventoryStore
	controller.UI
	newScanner ScannerFactory
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	store adapter.InventoryStore,
	ui controller.UI,
	newScanner ScannerFactory,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		InventoryStore:  store,
		UI:              ui,
		newScanner:      newScanner,
	}
}

// Discover scans every unit the paths resolve to on a bounded worker pool.
// On cancellation the units already scanned are returned with ctx.Err().
func (w *workflow) Discover(ctx context.Context, args DiscoverArgs) (m.Inventory, error) {
	inventory := m.Inventory{Version: adapter.InventoryVersion}

	units, err := w.Get(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return inventory, fmt.Errorf("get sources: %w", err)
	}

	kind := args.Strategy
	if kind == "" {
		kind = StrategySyntax
	}

	parallel := args.Parallel
	if parallel < 1 {
		parallel = 1
	}

	scanner := w.newScanner(kind)

	w.DisplayDiscoveryStart(ctx, len(units), parallel, string(kind))
	slog.Info("discovery started", "units", len(units), "parallel", parallel, "strategy", kind)

	var (
		resultsMu sync.Mutex
		results   = make([]m.ScanResult, 0, len(units))
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for _, unit := range units {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}

			result := w.scanUnit(scanner, unit)

			resultsMu.Lock()
			results = append(results, result)
			resultsMu.Unlock()

			w.DisplayUnitScanned(ctx, result)

			return nil
		})
	}

	// Per-unit failures are recorded as diagnostics; tasks never return errors.
	_ = group.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Unit < results[j].Unit
	})

	inventory.Units = results

	if err := ctx.Err(); err != nil {
		slog.Warn("discovery cancelled", "scanned", len(results), "units", len(units))
		return inventory, err
	}

	slog.Info("discovery finished", "units", len(results), "tests", inventory.CountTests(),
		"diagnostics", len(inventory.Diagnostics()))

	return inventory, nil
}

// scanUnit reads and scans one unit. A unit that cannot be read, or that the
// parser rejects outright, becomes a result carrying a single diagnostic so
// the remaining units are still scanned.
func (w *workflow) scanUnit(scanner Scanner, unit m.Path) m.ScanResult {
	content, err := w.ReadFile(unit)
	if err != nil {
		slog.Warn("unit could not be read", "unit", unit, "error", err)
		return failedUnit(unit, m.DiagReadError, fmt.Errorf("read %s: %w", unit, err))
	}

	result, err := scanner.Scan(m.SourceUnit{Path: unit, Content: content})
	if err != nil {
		slog.Warn("unit could not be parsed", "unit", unit, "error", err)
		return failedUnit(unit, m.DiagParseError, err)
	}

	return result
}

func failedUnit(unit m.Path, kind m.DiagnosticKind, err error) m.ScanResult {
	return m.ScanResult{
		Unit: unit,
		Diagnostics: []m.Diagnostic{{
			Kind:    kind,
			Message: err.Error(),
			Unit:    unit,
			Span:    m.Span{StartLine: 1, EndLine: 1},
		}},
	}
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	inventory, err := w.Discover(ctx, args.DiscoverArgs)
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}

	if args.Export != "" {
		if err := w.SaveInventory(args.Export, inventory); err != nil {
			return fmt.Errorf("export inventory: %w", err)
		}

		slog.Info("inventory exported", "path", args.Export)
	}

	if err := w.DisplayInventory(ctx, inventory, args.Format); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if args.Diagnostics {
		w.DisplayDiagnostics(ctx, inventory.Diagnostics())
	}

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	inventory, err := w.Discover(ctx, args.DiscoverArgs)
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}

	if err := w.DisplayInventory(ctx, inventory, controller.FormatTree); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

// ErrMissingComparand is returned when a side of a comparison is empty.
var ErrMissingComparand = errors.New("nothing to compare")

func (w *workflow) Compare(ctx context.Context, args CompareArgs) error {
	if args.From == "" || args.To == "" {
		return ErrMissingComparand
	}

	if err := w.Start(ctx, controller.WithCompareMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	from, err := w.inventoryOf(ctx, args.From, args.DiscoverArgs)
	if err != nil {
		return fmt.Errorf("load %s: %w", args.From, err)
	}

	to, err := w.inventoryOf(ctx, args.To, args.DiscoverArgs)
	if err != nil {
		return fmt.Errorf("load %s: %w", args.To, err)
	}

	comparison, err := CompareInventories(args.From, from, args.To, to)
	if err != nil {
		return err
	}

	return w.DisplayComparison(ctx, comparison)
}

// inventoryOf loads an exported inventory or scans the given path.
func (w *workflow) inventoryOf(ctx context.Context, source string, args DiscoverArgs) (m.Inventory, error) {
	if adapter.IsInventoryFile(m.Path(source)) {
		return w.LoadInventory(m.Path(source))
	}

	args.Paths = []m.Path{m.Path(source)}

	return w.Discover(ctx, args)
}

// CompareInventories diffs the per-test lines of two inventories. Tests are
// keyed by id, so moving a file shows up as removals and additions.
func CompareInventories(fromName string, from m.Inventory, toName string, to m.Inventory) (controller.Comparison, error) {
	fromLines, fromIDs := inventoryLines(from)
	toLines, toIDs := inventoryLines(to)

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        fromLines,
		B:        toLines,
		FromFile: fromName,
		ToFile:   toName,
		Context:  1,
	})
	if err != nil {
		return controller.Comparison{}, fmt.Errorf("diff inventories: %w", err)
	}

	return controller.Comparison{
		From:    fromName,
		To:      toName,
		Diff:    diff,
		Added:   missingFrom(toIDs, fromIDs),
		Removed: missingFrom(fromIDs, toIDs),
	}, nil
}

func inventoryLines(inventory m.Inventory) ([]string, map[string]struct{}) {
	tests := inventory.Tests()
	lines := make([]string, 0, len(tests))
	ids := make(map[string]struct{}, len(tests))

	for _, test := range tests {
		ids[test.ID] = struct{}{}
		lines = append(lines, describeTest(test)+"\n")
	}

	return lines, ids
}

func describeTest(test m.DiscoveredTest) string {
	var b strings.Builder

	b.WriteString(test.ID)
	b.WriteString(" [")
	b.WriteString(string(test.Sync))
	b.WriteString("]")

	if test.Timeout != nil {
		b.WriteString(" timeout=")
		b.WriteString(test.Timeout.String())
	}

	if len(test.Bindings) > 0 {
		b.WriteString(" (")
		b.WriteString(controller.FormatBindings(test.Bindings))
		b.WriteString(")")
	}

	return b.String()
}

// missingFrom returns the ids of a that b lacks, sorted.
func missingFrom(a, b map[string]struct{}) []string {
	var out []string

	for id := range a {
		if _, ok := b[id]; !ok {
			out = append(out, id)
		}
	}

	sort.Strings(out)

	return out
}
