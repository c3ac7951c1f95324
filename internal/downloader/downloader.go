// Package downloader reads video metadata and streams through a yt-dlp
// compatible binary. It backs up the native YouTube client and covers the
// hosts that client cannot read.
package downloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"vidgrab/internal/model"
	"vidgrab/internal/util"
)

// formatSelector asks for a single progressive file, mp4 first.
const formatSelector = "best[ext=mp4][acodec!=none][vcodec!=none]/best[acodec!=none][vcodec!=none]/best"

// StreamFunc starts a command and returns its stdout.
type StreamFunc func(ctx context.Context, spec util.CmdSpec) (io.ReadCloser, error)

// YtDlp implements resolver.VideoService on top of the yt-dlp CLI.
type YtDlp struct {
	path   string
	runner util.CmdRunner
	stream StreamFunc
}

// Option configures a YtDlp.
type Option func(*YtDlp)

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(y *YtDlp) {
		y.runner = r
	}
}

// WithStreamFunc replaces process spawning for media streams.
func WithStreamFunc(fn StreamFunc) Option {
	return func(y *YtDlp) {
		y.stream = fn
	}
}

// New returns a YtDlp using the binary at path.
func New(path string, opts ...Option) *YtDlp {
	y := &YtDlp{path: path}
	for _, o := range opts {
		o(y)
	}
	if y.runner == nil {
		y.runner = util.NewDefaultRunner(nil)
	}
	if y.stream == nil {
		y.stream = util.Stream
	}
	return y
}

// Video fetches metadata for url and binds a stream of the selected format.
func (y *YtDlp) Video(ctx context.Context, url string) (model.VideoMetadata, error) {
	if y.path == "" {
		return model.VideoMetadata{}, errors.New("downloader path is required")
	}
	info, err := y.fetchMetadata(ctx, url)
	if err != nil {
		return model.VideoMetadata{}, err
	}

	author := info.Uploader
	if author == "" {
		author = info.Channel
	}
	return model.VideoMetadata{
		ID:       info.ID,
		Title:    info.Title,
		Author:   author,
		URL:      url,
		Duration: time.Duration(info.Duration * float64(time.Second)),
		Stream:   &ytdlpStream{y: y, url: url, info: info},
	}, nil
}

func (y *YtDlp) fetchMetadata(ctx context.Context, url string) (YTDLPInfo, error) {
	args := []string{
		"--dump-json",
		"-f", formatSelector,
		"--no-playlist",
		"--no-warnings",
		url,
	}
	res, runErr := y.runner.Run(ctx, util.CmdSpec{Path: y.path, Args: args})
	if runErr != nil && len(res.Stdout) == 0 {
		return YTDLPInfo{}, fmt.Errorf("metadata fetch failed: %w", runErr)
	}
	return parseInfo(res.Stdout)
}

// parseInfo decodes yt-dlp stdout, recovering the last JSON object when
// other output is interleaved.
func parseInfo(stdout []byte) (YTDLPInfo, error) {
	data := strings.TrimSpace(string(stdout))
	var info YTDLPInfo
	err := json.Unmarshal([]byte(data), &info)
	if err == nil && info.ID != "" {
		return info, nil
	}
	if err == nil {
		err = errors.New("no video id in output")
	}
	lines := strings.Split(data, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var tmp YTDLPInfo
		if json.Unmarshal([]byte(line), &tmp) == nil && tmp.ID != "" {
			return tmp, nil
		}
	}
	return YTDLPInfo{}, fmt.Errorf("parse metadata JSON: %w", err)
}

type ytdlpStream struct {
	y    *YtDlp
	url  string
	info YTDLPInfo
}

// Open pipes the selected format to stdout. The size is only reported when
// yt-dlp knows it exactly.
func (s *ytdlpStream) Open(ctx context.Context) (io.ReadCloser, int64, error) {
	rc, err := s.y.stream(ctx, util.CmdSpec{Path: s.y.path, Args: s.args()})
	if err != nil {
		return nil, 0, err
	}
	return rc, s.info.Filesize, nil
}

func (s *ytdlpStream) args() []string {
	format := formatSelector
	if s.info.FormatID != "" {
		format = s.info.FormatID
	}
	return []string{
		"-f", format,
		"--no-playlist",
		"--no-part",
		"--quiet",
		"--no-warnings",
		"-o", "-",
		s.url,
	}
}

// Size reports the exact file size, 0 when unknown.
func (s *ytdlpStream) Size() int64 {
	return s.info.Filesize
}

// Quality reports the selected format's label, e.g. "720p".
func (s *ytdlpStream) Quality() string {
	switch {
	case s.info.FormatNote != "":
		return s.info.FormatNote
	case s.info.Height > 0:
		return fmt.Sprintf("%dp", s.info.Height)
	default:
		return s.info.Ext
	}
}
