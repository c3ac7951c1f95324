package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newBatchCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file|->",
		Short: "Download every URL or keyword listed in a file, one per line",
		Long: `Reads one locator per line from a file, or from stdin when the argument
is "-". Blank lines are ignored. Items run one at a time; a failing item is
reported and the batch moves on to the next.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatchFile(cmd, v, args[0], runMode{})
		},
	}
}
