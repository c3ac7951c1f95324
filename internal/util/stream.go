package util

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// Stream starts the command and returns its stdout for incremental reading.
// Close waits for the process; a non-zero exit is reported by Close along
// with the last stderr line.
func Stream(ctx context.Context, spec CmdSpec) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	if spec.Env != nil {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	p := &procReader{ReadCloser: stdout, cmd: cmd}
	cmd.Stderr = &p.stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return p, nil
}

type procReader struct {
	io.ReadCloser
	cmd    *exec.Cmd
	stderr bytes.Buffer

	once sync.Once
	err  error
}

func (p *procReader) Close() error {
	p.once.Do(func() {
		_ = p.ReadCloser.Close()
		if err := p.cmd.Wait(); err != nil {
			if last := lastLine(p.stderr.String()); last != "" {
				p.err = fmt.Errorf("command failed: %w: %s", err, last)
			} else {
				p.err = fmt.Errorf("command failed: %w", err)
			}
		}
	})
	return p.err
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
