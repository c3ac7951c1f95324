package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTuiCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tui <locators...>",
		Short:         "Force TUI mode for a list of locators",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Force TUI; if stdout is not a terminal, ui.Run will error appropriately.
			file, _ := cmd.Flags().GetString("file")
			if file != "" {
				return runBatchFile(cmd, v, file, runMode{ForceTUI: true})
			}
			if len(args) == 1 {
				return runSingle(cmd, v, args[0], runMode{ForceTUI: true})
			}
			return runBatch(cmd, v, "", args, runMode{ForceTUI: true})
		},
	}
	cmd.Flags().StringP("file", "f", "", "File with one URL or keyword per line")
	return cmd
}
