// Package fetcher copies a resolved media stream to local storage.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	"vidgrab/internal/model"
)

// ProgressFunc receives byte-level progress. It is called from the copying goroutine.
type ProgressFunc func(model.ProgressEvent)

// Fetcher streams media into sinks.
type Fetcher struct {
	newSink SinkFactory
	bufSize int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithSinkFactory replaces the filesystem sink (useful for testing).
func WithSinkFactory(fn SinkFactory) Option {
	return func(f *Fetcher) {
		f.newSink = fn
	}
}

// WithBufferSize sets the copy buffer size in bytes.
func WithBufferSize(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.bufSize = n
		}
	}
}

// New returns a Fetcher writing to files by default.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{newSink: NewFileSink, bufSize: 32 * 1024}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch copies the item's stream to dest. It returns once the transfer is
// complete; every failure, including cancellation, is a *model.StreamError
// and leaves no partial file behind.
func (f *Fetcher) Fetch(ctx context.Context, item model.ResolvedItem, dest string, onProgress ProgressFunc) error {
	if item.Metadata.Stream == nil {
		return &model.StreamError{Path: dest, Err: errors.New("no stream descriptor")}
	}
	if onProgress == nil {
		onProgress = func(model.ProgressEvent) {}
	}

	rc, size, err := item.Metadata.Stream.Open(ctx)
	if err != nil {
		return &model.StreamError{Path: dest, Err: fmt.Errorf("open stream: %w", err)}
	}
	defer rc.Close()

	sink, err := f.newSink(dest)
	if err != nil {
		return &model.StreamError{Path: dest, Err: fmt.Errorf("open sink: %w", err)}
	}

	tr := newTransfer(size, onProgress)
	if err := copyWithContext(ctx, io.MultiWriter(sink, tr), rc, f.bufSize); err != nil {
		_ = sink.Abort()
		return &model.StreamError{Path: dest, Err: err}
	}
	// Subprocess streams report a failed exit only on Close.
	if err := rc.Close(); err != nil {
		_ = sink.Abort()
		return &model.StreamError{Path: dest, Err: fmt.Errorf("close stream: %w", err)}
	}
	if err := tr.finish(); err != nil {
		_ = sink.Abort()
		return &model.StreamError{Path: dest, Err: err}
	}
	if err := sink.Commit(); err != nil {
		return &model.StreamError{Path: dest, Err: fmt.Errorf("finalize: %w", err)}
	}
	return nil
}

func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader, bufSize int) error {
	buf := make([]byte, bufSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}
