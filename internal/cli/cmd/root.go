package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vidgrab/internal/config"
	"vidgrab/internal/resolver"
)

const (
	ExitOK            = 0
	ExitCLIError      = 1
	ExitMissingDep    = 2
	ExitDownloadError = 3
	ExitResolveError  = 4
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "vidgrab [locators...]",
		Short: "Download videos by URL or search keyword",
		Long: `vidgrab downloads videos from direct URLs or by searching a keyword and
taking the first hit. Titles are sanitized into file names and can be
translated with --lang. One locator runs in single mode; several locators,
--file or the batch command run them one after another, logging failures
and moving on.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Init(v, cmd.Root().PersistentFlags()); err != nil {
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("config: %w", err)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			url, _ := cmd.Flags().GetString("url")
			file, _ := cmd.Flags().GetString("file")
			switch {
			case file != "":
				return runBatchFile(cmd, v, file, runMode{})
			case url != "":
				return runSingle(cmd, v, url, runMode{})
			case len(args) == 1:
				return runSingle(cmd, v, args[0], runMode{})
			case len(args) > 1:
				return runBatch(cmd, v, "", args, runMode{})
			default:
				return cmd.Help()
			}
		},
	}

	// Persistent flags available to all subcommands
	pf := root.PersistentFlags()
	pf.StringP("out-dir", "o", ".", "Output directory")
	pf.StringP("lang", "l", "", "Translate titles into this language code (e.g. en, es)")
	pf.BoolP("verbose", "v", false, "Show raw errors and debug diagnostics")
	pf.String("dl-binary", "", "Path to yt-dlp or youtube-dl (keyword search)")
	pf.Bool("no-ui", false, "Disable TUI; use plain textual output")
	pf.String("search-prefix", resolver.DefaultSearchPrefix, "Search directive passed to the search provider")
	pf.Duration("timeout", 30*time.Second, "Wait at most this long for HTTP response headers (0 disables)")
	pf.Bool("overwrite", false, "Overwrite existing files instead of picking a free name")

	// Compatibility flags for the classic -u/-f invocation.
	root.Flags().StringP("url", "u", "", "Video URL or search keyword")
	root.Flags().StringP("file", "f", "", "File with one URL or keyword per line")
	root.MarkFlagsMutuallyExclusive("url", "file")

	root.AddCommand(newGetCmd(v))
	root.AddCommand(newBatchCmd(v))
	root.AddCommand(newInfoCmd(v))
	root.AddCommand(newTuiCmd(v))
	root.AddCommand(newDoctorCmd(v))
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd(viper.New())
	err := root.ExecuteContext(ctx)
	var ee *ExitError
	if err != nil && !errors.As(err, &ee) {
		// Flag and argument errors from cobra itself.
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	return err
}
