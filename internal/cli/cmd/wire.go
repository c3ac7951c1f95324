package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"vidgrab/internal/downloader"
	"vidgrab/internal/fetcher"
	"vidgrab/internal/locator"
	"vidgrab/internal/model"
	"vidgrab/internal/pipeline"
	"vidgrab/internal/progress"
	"vidgrab/internal/resolver"
	"vidgrab/internal/title"
	"vidgrab/internal/translate"
	"vidgrab/internal/util"
	"vidgrab/internal/util/deps"
)

// app holds the long-lived collaborators of one invocation.
type app struct {
	opts      model.Options
	logger    *slog.Logger
	resolver  *resolver.Service
	formatter *title.Formatter
	fetcher   *fetcher.Fetcher
}

// buildDeps locates the search provider and wires the resolver, formatter
// and fetcher. The provider doubles as the fallback metadata backend. A
// missing provider is fatal only when a lone search locator or an explicit
// --dl-binary needs it.
func buildDeps(cmd *cobra.Command, opts model.Options, locators []string) (*app, error) {
	logger := newLogger(opts.Verbose, cmd.ErrOrStderr())

	dlPath, derr := deps.FindDownloader(opts.DLBinary)
	if derr != nil {
		switch {
		case opts.DLBinary != "":
			return nil, &ExitError{Code: ExitMissingDep, Err: derr}
		case needsSearch(locators) && len(locators) == 1:
			return nil, &ExitError{Code: ExitMissingDep, Err: derr}
		case needsSearch(locators):
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", derr)
		}
	}
	logger.Debug("search provider", "path", dlPath)

	hc := newHTTPClient(opts.HTTPTimeout)
	runner := util.NewDefaultRunner(logger)
	ropts := []resolver.Option{
		resolver.WithVideoService(resolver.NewYouTube(hc)),
		resolver.WithRunner(runner),
		resolver.WithDownloaderPath(dlPath),
		resolver.WithSearchPrefix(opts.SearchPrefix),
	}
	if dlPath != "" {
		ropts = append(ropts, resolver.WithFallback(downloader.New(dlPath, downloader.WithRunner(runner))))
	}
	res := resolver.New(ropts...)

	var tr title.Translator
	if opts.Lang != "" {
		tr = translate.New(
			translate.WithEndpoint(opts.TranslateEndpoint),
			translate.WithRate(opts.TranslateRPS),
			translate.WithHTTPClient(hc),
		)
	}

	return &app{
		opts:      opts,
		logger:    logger,
		resolver:  res,
		formatter: title.NewFormatter(tr),
		fetcher:   fetcher.New(),
	}, nil
}

func (a *app) service(rep progress.Reporter) *pipeline.Service {
	return pipeline.NewService(
		pipeline.WithResolver(a.resolver),
		pipeline.WithFormatter(a.formatter),
		pipeline.WithFetcher(a.fetcher),
		pipeline.WithOptions(a.opts),
		pipeline.WithReporter(rep),
		pipeline.WithLogger(a.logger),
	)
}

func needsSearch(locators []string) bool {
	for _, l := range locators {
		if locator.Classify(l) == model.LocatorSearch {
			return true
		}
	}
	return false
}

// newHTTPClient bounds the wait for response headers only; bodies are
// long-running media streams.
func newHTTPClient(headerTimeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.ResponseHeaderTimeout = headerTimeout
	return &http.Client{Transport: tr}
}

func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
