package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const forceFlagName = "force"

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default rsdisco.yaml",
		Long: `Write rsdisco.yaml with the current discovery, output and logging settings
into dir (default: the working directory). An existing file is kept unless
--force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := configFolderPath
			if len(args) == 1 {
				dir = args[0]
			}

			force, err := cmd.Flags().GetBool(forceFlagName)
			if err != nil {
				return err
			}

			return writeConfig(cmd.OutOrStdout(), filepath.Join(dir, configFileName), force)
		},
	}

	cmd.Flags().Bool(forceFlagName, false, "overwrite an existing config file")

	return cmd
}

func writeConfig(w io.Writer, target string, force bool) error {
	write := viper.SafeWriteConfigAs
	if force {
		write = viper.WriteConfigAs
	}

	if err := write(target); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	slog.Info("config written", "path", target, "force", force)

	_, err := fmt.Fprintf(w, "Wrote %s\n", target)

	return err
}

func init() {
	rootCmd.AddCommand(initCmd)
}
