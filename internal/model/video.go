package model

import (
	"context"
	"io"
	"time"
)

// LocatorKind classifies a raw input line.
type LocatorKind int

const (
	LocatorInvalid LocatorKind = iota
	LocatorDirect
	LocatorSearch
)

func (k LocatorKind) String() string {
	switch k {
	case LocatorDirect:
		return "direct"
	case LocatorSearch:
		return "search"
	default:
		return "invalid"
	}
}

// StreamDescriptor opens the media stream of a resolved video.
// size is the expected content length, or 0 when unknown.
type StreamDescriptor interface {
	Open(ctx context.Context) (rc io.ReadCloser, size int64, err error)
}

// VideoMetadata is what the resolver knows about a video. Immutable once created.
type VideoMetadata struct {
	ID       string
	Title    string
	Author   string
	URL      string
	Duration time.Duration
	Stream   StreamDescriptor
}

// TitleSource records where a search result title came from.
type TitleSource int

const (
	TitleExplicitField TitleSource = iota
	TitleEmbeddedField
	TitlePlaceholder
)

func (s TitleSource) String() string {
	switch s {
	case TitleExplicitField:
		return "explicit"
	case TitleEmbeddedField:
		return "embedded"
	default:
		return "placeholder"
	}
}

// SearchResult is the best match returned by the search provider.
type SearchResult struct {
	Title       string
	URL         string
	TitleSource TitleSource
}

// ResolvedItem is metadata with its final, filesystem-safe display title.
type ResolvedItem struct {
	Metadata          VideoMetadata
	DisplayTitle      string
	TranslationFailed bool
}

// ProgressEvent is a byte-count snapshot during a transfer.
// Total is 0 while the size is unknown.
type ProgressEvent struct {
	Downloaded uint64
	Total      uint64
}

// Complete reports whether the event marks the end of a known-size transfer.
func (e ProgressEvent) Complete() bool {
	return e.Total > 0 && e.Downloaded == e.Total
}

// Options holds user-configurable runtime options, injected once per run.
type Options struct {
	OutDir   string
	Lang     string // ISO language code; empty disables translation
	Verbose  bool
	NoUI     bool
	DLBinary string // Optional explicit path to yt-dlp/youtube-dl

	SearchPrefix      string // e.g. "ytsearch1"
	HTTPTimeout       time.Duration
	TranslateEndpoint string
	TranslateRPS      float64
	Overwrite         bool
}
