package cmd

import (
	"github.com/spf13/cobra"

	"rsdisco.dev/pkg/rsdisco/internal/domain"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [paths...]",
		Short: "Browse discovered tests as a tree",
		Long:  viewLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			discover, err := discoverArgs(args)
			if err != nil {
				return err
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{DiscoverArgs: discover})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
