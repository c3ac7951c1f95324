package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kkdai/youtube/v2"

	"vidgrab/internal/model"
)

// hostClient is the subset of *youtube.Client used here.
type hostClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

// YouTube fetches metadata and streams from the video host.
type YouTube struct {
	client hostClient
}

// NewYouTube returns a metadata service backed by kkdai/youtube.
func NewYouTube(hc *http.Client) *YouTube {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &YouTube{client: &youtube.Client{HTTPClient: hc}}
}

// Video implements VideoService.
func (y *YouTube) Video(ctx context.Context, url string) (model.VideoMetadata, error) {
	v, err := y.client.GetVideoContext(ctx, url)
	if err != nil {
		return model.VideoMetadata{}, err
	}
	f, err := pickFormat(v.Formats)
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("video %s: %w", v.ID, err)
	}
	return model.VideoMetadata{
		ID:       v.ID,
		Title:    v.Title,
		Author:   v.Author,
		URL:      url,
		Duration: v.Duration,
		Stream:   &youtubeStream{client: y.client, video: v, format: f},
	}, nil
}

var errNoProgressive = errors.New("no downloadable format with audio and video")

// pickFormat prefers the tallest progressive mp4, then any progressive video format.
func pickFormat(formats youtube.FormatList) (*youtube.Format, error) {
	var best *youtube.Format
	bestMP4 := false
	for i := range formats {
		f := &formats[i]
		if f.AudioChannels <= 0 || !strings.HasPrefix(f.MimeType, "video/") {
			continue
		}
		isMP4 := strings.HasPrefix(f.MimeType, "video/mp4")
		switch {
		case best == nil:
		case isMP4 && !bestMP4:
		case isMP4 == bestMP4 && (f.Height > best.Height || (f.Height == best.Height && f.Bitrate > best.Bitrate)):
		default:
			continue
		}
		best, bestMP4 = f, isMP4
	}
	if best == nil {
		return nil, errNoProgressive
	}
	return best, nil
}

type youtubeStream struct {
	client hostClient
	video  *youtube.Video
	format *youtube.Format
}

func (s *youtubeStream) Open(ctx context.Context) (io.ReadCloser, int64, error) {
	return s.client.GetStreamContext(ctx, s.video, s.format)
}

// Size reports the advertised content length, 0 when unknown.
func (s *youtubeStream) Size() int64 {
	return s.format.ContentLength
}

// Quality reports the selected format's label, e.g. "720p".
func (s *youtubeStream) Quality() string {
	if s.format.QualityLabel != "" {
		return s.format.QualityLabel
	}
	return s.format.Quality
}
