package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"vidgrab/internal/config"
	"vidgrab/internal/locator"
	"vidgrab/internal/model"
	"vidgrab/internal/progress"
	"vidgrab/internal/ui"
	"vidgrab/internal/util"
)

// friendlyError replaces the raw cause when --verbose is off.
const friendlyError = "Oh no, something went wrong. Use -v to view the error and try again."

type runMode struct {
	ForceTUI bool
}

func newGetCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:           "get <url|keyword>",
		Short:         "Download a single video",
		Example:       "  vidgrab get https://www.youtube.com/watch?v=dQw4w9WgXcQ\n  vidgrab get \"funny cats\" --lang es",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(cmd, v, args[0], runMode{})
		},
	}
}

func runSingle(cmd *cobra.Command, v *viper.Viper, loc string, mode runMode) error {
	opts := config.Load(v)
	if locator.Classify(loc) == model.LocatorInvalid {
		return &ExitError{Code: ExitCLIError, Err: &model.InvalidLocatorError{Locator: loc}}
	}
	if err := util.EnsureDir(opts.OutDir); err != nil {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("failed to create output dir: %v", err)}
	}

	a, err := buildDeps(cmd, opts, []string{loc})
	if err != nil {
		return err
	}

	var runErr error
	if useTUI(mode, opts) {
		_, uiErr := ui.Run(cmd.Context(), func(ctx context.Context, rep progress.Reporter) progress.Summary {
			_, runErr = a.service(rep).RunOne(ctx, loc)
			if runErr != nil {
				return progress.Summary{Total: 1, Failed: 1}
			}
			return progress.Summary{Total: 1, Succeeded: 1}
		})
		if uiErr != nil && runErr == nil {
			return &ExitError{Code: ExitCLIError, Err: uiErr}
		}
	} else {
		_, runErr = a.service(plainReporter(cmd.OutOrStdout())).RunOne(cmd.Context(), loc)
	}
	if runErr == nil {
		return nil
	}
	if !opts.Verbose {
		return &ExitError{Code: exitCode(runErr), Err: errors.New(friendlyError)}
	}
	return &ExitError{Code: exitCode(runErr), Err: runErr}
}

func runBatch(cmd *cobra.Command, v *viper.Viper, source string, locators []string, mode runMode) error {
	opts := config.Load(v)
	if err := util.EnsureDir(opts.OutDir); err != nil {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("failed to create output dir: %v", err)}
	}

	a, err := buildDeps(cmd, opts, locators)
	if err != nil {
		return err
	}

	if useTUI(mode, opts) {
		_, uiErr := ui.Run(cmd.Context(), func(ctx context.Context, rep progress.Reporter) progress.Summary {
			return a.service(rep).RunBatch(ctx, source, locators)
		})
		if uiErr != nil {
			// Item failures were already shown; the batch itself succeeded.
			fmt.Fprintln(cmd.ErrOrStderr(), uiErr)
		}
		return nil
	}

	a.service(plainReporter(cmd.OutOrStdout())).RunBatch(cmd.Context(), source, locators)
	return nil
}

func runBatchFile(cmd *cobra.Command, v *viper.Viper, path string, mode runMode) error {
	var r io.Reader
	source := path
	if path == "-" {
		r = cmd.InOrStdin()
		source = "stdin"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("read batch file: %w", err)}
		}
		defer f.Close()
		r = f
	}
	lines, err := locator.ReadLines(r)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("read batch file: %w", err)}
	}
	return runBatch(cmd, v, source, lines, mode)
}

// exitCode maps pipeline errors to process exit codes.
func exitCode(err error) int {
	var (
		invalid *model.InvalidLocatorError
		search  *model.SearchError
		meta    *model.MetadataFetchError
		stream  *model.StreamError
	)
	switch {
	case errors.As(err, &invalid):
		return ExitCLIError
	case errors.As(err, &search), errors.As(err, &meta):
		return ExitResolveError
	case errors.As(err, &stream):
		return ExitDownloadError
	default:
		return ExitCLIError
	}
}

func useTUI(mode runMode, opts model.Options) bool {
	return mode.ForceTUI || (!opts.NoUI && isTerminal())
}

func plainReporter(w io.Writer) progress.Reporter {
	return progress.NewPlain(w, isTerminal())
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
