package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vidgrab/internal/config"
	"vidgrab/internal/dirs"
	"vidgrab/internal/util/deps"
)

func newDoctorCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose the search provider (yt-dlp/youtube-dl) and configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := config.Load(v)
			out := cmd.OutOrStdout()
			if cfg := v.ConfigFileUsed(); cfg != "" {
				fmt.Fprintf(out, "Config:     %s\n", cfg)
			} else if dir, err := dirs.ConfigDir(); err == nil {
				fmt.Fprintf(out, "Config:     none (looked in %s)\n", dir)
			}
			fmt.Fprintf(out, "Output dir: %s\n", opts.OutDir)
			dl, err := deps.FindDownloader(opts.DLBinary)
			if err != nil {
				return &ExitError{Code: ExitMissingDep, Err: err}
			}
			fmt.Fprintf(out, "Search:     %s (%s)\n", dl, opts.SearchPrefix)
			return nil
		},
	}
}
