package cmd

import (
	"github.com/spf13/cobra"

	"rsdisco.dev/pkg/rsdisco/internal/domain"
)

// compareCmd represents the compare command.
var compareCmd = newCompareCmd()

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare OLD NEW",
		Short: "Diff two test inventories",
		Long:  compareLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			discover, err := discoverArgs(nil)
			if err != nil {
				return err
			}

			return workflow.Compare(cmd.Context(), domain.CompareArgs{
				DiscoverArgs: discover,
				From:         args[0],
				To:           args[1],
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
