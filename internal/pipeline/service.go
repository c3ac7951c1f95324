// Package pipeline orchestrates the classify → resolve → format → fetch workflow.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"vidgrab/internal/fetcher"
	"vidgrab/internal/locator"
	"vidgrab/internal/model"
	"vidgrab/internal/progress"
	"vidgrab/internal/title"
	"vidgrab/internal/util"
	"vidgrab/internal/util/media"
)

// Resolver turns locators into metadata.
type Resolver interface {
	ResolveDirect(ctx context.Context, url string) (model.VideoMetadata, error)
	ResolveSearch(ctx context.Context, keyword string) (model.SearchResult, error)
}

// Formatter produces display titles. It must not fail.
type Formatter interface {
	Format(ctx context.Context, md model.VideoMetadata, lang string) model.ResolvedItem
}

// Fetcher streams a resolved item to dest.
type Fetcher interface {
	Fetch(ctx context.Context, item model.ResolvedItem, dest string, onProgress fetcher.ProgressFunc) error
}

// Service runs items one at a time.
type Service struct {
	resolver  Resolver
	formatter Formatter
	fetcher   Fetcher
	opts      model.Options
	reporter  progress.Reporter
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithResolver sets the metadata resolver.
func WithResolver(r Resolver) Option {
	return func(s *Service) {
		s.resolver = r
	}
}

// WithFormatter sets the title formatter.
func WithFormatter(f Formatter) Option {
	return func(s *Service) {
		s.formatter = f
	}
}

// WithFetcher sets the stream fetcher.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		s.fetcher = f
	}
}

// WithOptions sets the run options (output dir, language, ...).
func WithOptions(o model.Options) Option {
	return func(s *Service) {
		s.opts = o
	}
}

// WithReporter attaches a progress reporter.
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = rp
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService constructs a Service, filling in no-op reporter, untranslated
// formatter, file fetcher and a discarding logger when not provided.
func NewService(opts ...Option) *Service {
	s := &Service{}
	for _, o := range opts {
		o(s)
	}
	if s.reporter == nil {
		s.reporter = progress.Discard{}
	}
	if s.formatter == nil {
		s.formatter = title.NewFormatter(nil)
	}
	if s.fetcher == nil {
		s.fetcher = fetcher.New()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

var errNoResolver = errors.New("resolver is required")

// RunBatch processes every non-blank locator in order. A failing item is
// logged once and never stops the batch; Done is always reported.
// source names the input for the report ("" when locators came from arguments).
func (s *Service) RunBatch(ctx context.Context, source string, locators []string) progress.Summary {
	b := newBatch(locators)
	sum := progress.Summary{Total: b.total}
	s.reporter.Batch(progress.BatchStart{Source: source, Total: b.total})
	s.logger.Debug("batch loaded", "source", source, "total", b.total)

	for {
		idx, loc, ok := b.next()
		if !ok {
			break
		}
		if ctx.Err() != nil {
			sum.Canceled = true
			sum.Skipped = b.total - idx + 1
			break
		}

		s.reporter.Item(progress.ItemStart{Index: idx, Total: b.total, Locator: loc})
		res, err := s.process(ctx, idx, loc)
		if err != nil {
			sum.Failed++
			s.reporter.Log(progress.Log{Index: idx, Level: progress.LevelError, Line: err.Error()})
			s.logger.Debug("item failed", "index", idx, "locator", loc, "err", err)
		} else {
			sum.Succeeded++
		}
		s.reporter.Result(res)
	}
	sum.Canceled = sum.Canceled || ctx.Err() != nil

	s.reporter.Done(sum)
	return sum
}

// RunOne processes a single locator and returns its error to the caller,
// which decides how much of it to show.
func (s *Service) RunOne(ctx context.Context, loc string) (progress.Result, error) {
	res, err := s.process(ctx, 1, loc)
	s.reporter.Result(res)
	sum := progress.Summary{Total: 1, Succeeded: 1}
	if err != nil {
		sum.Succeeded, sum.Failed = 0, 1
		sum.Canceled = errors.Is(err, context.Canceled)
	}
	s.reporter.Done(sum)
	return res, err
}

// process runs the full chain for one item. The returned Result always
// carries Index and Locator; Err mirrors the returned error.
func (s *Service) process(ctx context.Context, idx int, loc string) (res progress.Result, err error) {
	res = progress.Result{Index: idx, Locator: loc}
	defer func() { res.Err = err }()

	item, err := s.resolve(ctx, idx, loc)
	if err != nil {
		return res, err
	}

	dest, err := s.destination(item)
	if err != nil {
		return res, &model.StreamError{Path: dest, Err: err}
	}
	s.update(idx, progress.StageDownloading, filepath.Base(dest))

	var last model.ProgressEvent
	err = s.fetcher.Fetch(ctx, item, dest, func(ev model.ProgressEvent) {
		last = ev
		s.reporter.Update(progress.Update{Index: idx, Stage: progress.StageDownloading, Progress: ev})
	})
	if err != nil {
		return res, err
	}

	res.OutputPath = dest
	res.Bytes = last.Downloaded
	s.logger.Debug("item saved", "index", idx, "path", dest, "bytes", last.Downloaded)
	return res, nil
}

// resolve classifies loc, resolves it and formats the title.
func (s *Service) resolve(ctx context.Context, idx int, loc string) (model.ResolvedItem, error) {
	if s.resolver == nil {
		return model.ResolvedItem{}, errNoResolver
	}

	url := loc
	switch locator.Classify(loc) {
	case model.LocatorInvalid:
		return model.ResolvedItem{}, &model.InvalidLocatorError{Locator: loc}
	case model.LocatorSearch:
		s.update(idx, progress.StageSearching, loc)
		sr, err := s.resolver.ResolveSearch(ctx, loc)
		if err != nil {
			return model.ResolvedItem{}, err
		}
		s.logger.Debug("search hit", "keyword", loc, "url", sr.URL, "title", sr.Title, "title_source", sr.TitleSource.String())
		url = sr.URL
	}

	s.update(idx, progress.StageMetadata, locator.NormalizeURL(url))
	md, err := s.resolver.ResolveDirect(ctx, url)
	if err != nil {
		return model.ResolvedItem{}, err
	}

	if s.opts.Lang != "" {
		s.update(idx, progress.StageTranslating, fmt.Sprintf("%s → %s", md.Title, s.opts.Lang))
	}
	item := s.formatter.Format(ctx, md, s.opts.Lang)
	if item.TranslationFailed {
		s.reporter.Log(progress.Log{Index: idx, Level: progress.LevelWarn, Line: "Error translating video title, using original title"})
	}
	return item, nil
}

func (s *Service) destination(item model.ResolvedItem) (string, error) {
	p := media.OutputPath(s.opts.OutDir, item)
	if s.opts.Overwrite {
		return p, nil
	}
	return util.AvailablePath(p)
}

func (s *Service) update(idx int, st progress.Stage, msg string) {
	s.reporter.Update(progress.Update{Index: idx, Stage: st, Message: msg})
}
