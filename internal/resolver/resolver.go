// Package resolver turns locators into video metadata.
package resolver

import (
	"context"
	"errors"
	"strings"

	"vidgrab/internal/locator"
	"vidgrab/internal/model"
	"vidgrab/internal/util"
)

// DefaultSearchPrefix asks the provider for the first result only.
const DefaultSearchPrefix = "ytsearch1"

// VideoService fetches metadata for a normalized URL.
type VideoService interface {
	Video(ctx context.Context, url string) (model.VideoMetadata, error)
}

// Service resolves direct URLs through a VideoService and keywords through
// the yt-dlp search provider.
type Service struct {
	videos   VideoService
	fallback VideoService
	runner util.CmdRunner
	dlPath string
	prefix string
}

// Option configures a Service.
type Option func(*Service)

// WithVideoService sets the metadata backend.
func WithVideoService(v VideoService) Option {
	return func(s *Service) {
		s.videos = v
	}
}

// WithFallback sets a second backend tried when the primary one fails.
func WithFallback(v VideoService) Option {
	return func(s *Service) {
		s.fallback = v
	}
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// WithDownloaderPath sets the yt-dlp/youtube-dl binary used for search.
func WithDownloaderPath(p string) Option {
	return func(s *Service) {
		s.dlPath = p
	}
}

// WithSearchPrefix overrides the first-result directive (e.g. "ytsearch1").
func WithSearchPrefix(p string) Option {
	return func(s *Service) {
		if p = strings.TrimSuffix(strings.TrimSpace(p), ":"); p != "" {
			s.prefix = p
		}
	}
}

// New constructs a Service, defaulting to the kkdai/youtube backend.
func New(opts ...Option) *Service {
	s := &Service{prefix: DefaultSearchPrefix}
	for _, o := range opts {
		o(s)
	}
	if s.videos == nil {
		s.videos = NewYouTube(nil)
	}
	if s.runner == nil {
		s.runner = util.NewDefaultRunner(nil)
	}
	return s
}

// ResolveDirect truncates url at the first '&' and fetches its metadata,
// trying the fallback backend when the primary one fails.
func (s *Service) ResolveDirect(ctx context.Context, url string) (model.VideoMetadata, error) {
	u := locator.NormalizeURL(url)
	md, err := s.videos.Video(ctx, u)
	if err != nil && s.fallback != nil && ctx.Err() == nil {
		var ferr error
		if md, ferr = s.fallback.Video(ctx, u); ferr != nil {
			err = errors.Join(err, ferr)
		} else {
			err = nil
		}
	}
	if err != nil {
		return model.VideoMetadata{}, &model.MetadataFetchError{URL: u, Err: err}
	}
	if md.URL == "" {
		md.URL = u
	}
	return md, nil
}

// ResolveSearch returns the first search hit for keyword.
func (s *Service) ResolveSearch(ctx context.Context, keyword string) (model.SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if s.dlPath == "" {
		return model.SearchResult{}, &model.SearchError{Keyword: keyword, Err: errors.New("search provider path is required")}
	}
	res, runErr := s.runner.Run(ctx, util.CmdSpec{
		Path: s.dlPath,
		Args: []string{
			"--dump-json",
			"--skip-download",
			"--no-playlist",
			"--no-warnings",
			s.prefix + ":" + keyword,
		},
	})
	if runErr != nil && len(res.Stdout) == 0 {
		return model.SearchResult{}, &model.SearchError{Keyword: keyword, Err: runErr}
	}
	info, err := parseSearchOutput(res.Stdout)
	if err != nil {
		return model.SearchResult{}, &model.SearchError{Keyword: keyword, Err: err}
	}
	out, err := toSearchResult(info)
	if err != nil {
		return model.SearchResult{}, &model.SearchError{Keyword: keyword, Err: err}
	}
	return out, nil
}
