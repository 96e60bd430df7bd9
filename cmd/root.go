// Package cmd provides the root command and CLI setup for rsdisco.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"rsdisco.dev/pkg/rsdisco/internal/adapter"
	"rsdisco.dev/pkg/rsdisco/internal/controller"
	"rsdisco.dev/pkg/rsdisco/internal/domain"
	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var rustAdapter adapter.RustFileAdapter
var inventoryStore adapter.InventoryStore
var workflow domain.Workflow
var ui controller.UI

// excludePatterns is a root-level flag that filters files for every command.
var excludePatterns []string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	rustAdapter = adapter.NewLocalRustFileAdapter()
	inventoryStore = adapter.NewInventoryStore(fsAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		inventoryStore,
		ui,
		domain.NewScannerFactory(rustAdapter, fsAdapter),
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan the src directory
  - ./src ./tests  scan the .rs files of multiple directories
  - src/lib.rs     scan a single file`

const rootLongDescription = `rsdisco statically discovers the tests of Rust crates: plain #[test]
functions, async runtime tests, rstest cases, value combinations and fixtures,
and test_case entries, without compiling anything.

` + pathPatternsHelp

const listLongDescription = `List every test instance found below the given paths (default: ./...).

` + pathPatternsHelp

const viewLongDescription = `Browse the discovered test tree interactively. Falls back to a plain tree
when stdout is not a terminal.

` + pathPatternsHelp

const compareLongDescription = `Compare two test inventories and print a unified diff. Each argument is
either an inventory exported with 'list --export' (.json, .yaml, .yml) or a
path pattern to scan.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rsdisco",
		Short: "Static test discovery for Rust sources",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringArrayVarP(&excludePatterns, excludeFlagName, "x", nil, "exclude files matching regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.IntP(parallelFlagName, "p", defaultParallel, "number of files scanned concurrently")
	bindFlagToConfig(flags.Lookup(parallelFlagName), parallelConfigKey)

	flags.String(strategyFlagName, defaultStrategy, "discovery strategy: syntax or extended (enables #[files])")
	bindFlagToConfig(flags.Lookup(strategyFlagName), strategyConfigKey)

	flags.String(logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	flags.BoolP(verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// An interrupt cancels the running discovery.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// discoverArgs collects the discovery settings shared by every command.
func discoverArgs(args []string) (domain.DiscoverArgs, error) {
	strategy, err := domain.ParseStrategyKind(viper.GetString(strategyConfigKey))
	if err != nil {
		return domain.DiscoverArgs{}, err
	}

	return domain.DiscoverArgs{
		Paths:    parsePaths(args),
		Exclude:  viper.GetStringSlice(excludeConfigKey),
		Parallel: viper.GetInt(parallelConfigKey),
		Strategy: strategy,
	}, nil
}
