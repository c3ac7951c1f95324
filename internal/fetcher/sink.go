package fetcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"vidgrab/internal/util"
)

// PartSuffix marks in-progress downloads.
const PartSuffix = ".part"

// Sink receives media bytes. Commit publishes the file; Abort discards it.
type Sink interface {
	io.Writer
	Commit() error
	Abort() error
}

// SinkFactory opens a sink for the destination path.
type SinkFactory func(path string) (Sink, error)

type fileSink struct {
	f    *os.File
	path string
	part string
	done bool
}

// NewFileSink writes to path+".part" and renames it to path on Commit.
func NewFileSink(path string) (Sink, error) {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("ensure output dir: %w", err)
	}
	part := path + PartSuffix
	f, err := os.OpenFile(part, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &fileSink{f: f, path: path, part: part}, nil
}

func (s *fileSink) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

func (s *fileSink) Commit() error {
	if s.done {
		return errors.New("sink already closed")
	}
	s.done = true
	if err := s.f.Close(); err != nil {
		_ = os.Remove(s.part)
		return err
	}
	return os.Rename(s.part, s.path)
}

func (s *fileSink) Abort() error {
	if s.done {
		return nil
	}
	s.done = true
	_ = s.f.Close()
	return util.RemoveIfExists(s.part)
}
