package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vidgrab/internal/config"
	"vidgrab/internal/pipeline"
	"vidgrab/internal/progress"
	"vidgrab/internal/util/format"
	"vidgrab/internal/util/media"
)

func newInfoCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:           "info <url|keyword>...",
		Short:         "Resolve locators and show what would be downloaded",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.Load(v)
			a, err := buildDeps(cmd, opts, args)
			if err != nil {
				return err
			}
			svc := a.service(progress.Discard{})
			out := cmd.OutOrStdout()
			var firstErr error
			for _, loc := range args {
				pl, err := svc.Plan(cmd.Context(), loc)
				if err != nil {
					fmt.Fprintf(out, "%s: %v\n\n", loc, err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				printPlan(out, pl)
			}
			if firstErr != nil {
				return &ExitError{Code: exitCode(firstErr)}
			}
			return nil
		},
	}
}

type sizedStream interface {
	Size() int64
	Quality() string
}

// printPlan outputs what a download of pl would do without executing it.
func printPlan(w io.Writer, pl pipeline.Plan) {
	md := pl.Item.Metadata
	fmt.Fprintf(w, "- Locator:        %s (%s)\n", pl.Locator, pl.Kind)
	fmt.Fprintf(w, "- URL:            %s\n", md.URL)
	fmt.Fprintf(w, "- Title:          %s\n", md.Title)
	if md.Author != "" {
		fmt.Fprintf(w, "- Author:         %s\n", md.Author)
	}
	if md.Duration > 0 {
		fmt.Fprintf(w, "- Duration:       %s\n", md.Duration)
	}
	if s, ok := md.Stream.(sizedStream); ok {
		size := "unknown"
		if n := s.Size(); n > 0 {
			size = format.HumanizeBytes(uint64(n))
		}
		fmt.Fprintf(w, "- Format:         %s, %s\n", s.Quality(), size)
	}
	name := media.FileName(pl.Item)
	if pl.Item.TranslationFailed {
		name += " (translation failed, original title kept)"
	}
	fmt.Fprintf(w, "- File name:      %s\n", name)
	fmt.Fprintf(w, "- Output path:    %s\n\n", pl.OutputPath)
}
