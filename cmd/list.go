package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rsdisco.dev/pkg/rsdisco/internal/controller"
	"rsdisco.dev/pkg/rsdisco/internal/domain"
	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List discovered tests",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			discover, err := discoverArgs(args)
			if err != nil {
				return err
			}

			format, err := controller.ParseFormat(viper.GetString(formatConfigKey))
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{
				DiscoverArgs: discover,
				Format:       format,
				Export:       m.Path(viper.GetString(exportConfigKey)),
				Diagnostics:  viper.GetBool(diagnosticsConfigKey),
			})
		},
	}

	cmd.Flags().StringP(formatFlagName, "f", defaultFormat, "output format: names, table, tree, json or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), formatConfigKey)

	cmd.Flags().StringP(exportFlagName, "e", defaultExport, "also write the inventory to this .json or .yaml file")
	bindFlagToConfig(cmd.Flags().Lookup(exportFlagName), exportConfigKey)

	cmd.Flags().BoolP(diagnosticsFlagName, "d", defaultDiagnostics, "print scan diagnostics to stderr")
	bindFlagToConfig(cmd.Flags().Lookup(diagnosticsFlagName), diagnosticsConfigKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
