package util

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// CmdSpec describes a subprocess to run.
type CmdSpec struct {
	Path string   // Binary path
	Args []string // Arguments
	Env  []string // Optional environment variables (KEY=VALUE). If nil, inherit.
	Dir  string   // Working directory; empty = inherit.

	StdoutLine func(string) // Called for each stdout line (if non-nil)
	StderrLine func(string) // Called for each stderr line (if non-nil)
}

// CmdResult contains captured output and exit status.
type CmdResult struct {
	Stdout []byte
	Stderr []byte
	Code   int
	Err    error
}

// CmdRunner runs subprocesses. Tests substitute a fake.
type CmdRunner interface {
	Run(ctx context.Context, spec CmdSpec) (CmdResult, error)
}

// DefaultRunner executes real processes and logs command lines at debug level.
type DefaultRunner struct {
	Logger *slog.Logger
}

// NewDefaultRunner returns a runner that logs through logger (nil discards).
func NewDefaultRunner(logger *slog.Logger) *DefaultRunner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DefaultRunner{Logger: logger}
}

// Run implements CmdRunner.
func (r *DefaultRunner) Run(ctx context.Context, spec CmdSpec) (CmdResult, error) {
	r.Logger.Debug("exec", "cmd", shellQuote(spec.Path, spec.Args))
	res, err := Run(ctx, spec)
	if err != nil {
		r.Logger.Debug("exec failed", "code", res.Code, "stderr", strings.TrimSpace(string(res.Stderr)))
	}
	return res, err
}

// Run executes the command, capturing stdout and stderr.
// On non-zero exit, returns an error describing the exit code, while also
// populating CmdResult.Code and captured buffers.
func Run(ctx context.Context, spec CmdSpec) (CmdResult, error) {
	var stdoutBuf, stderrBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	if spec.Env != nil {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}

	if err := cmd.Start(); err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		scanLines(stdoutPipe, spec.StdoutLine, &stdoutBuf)
	}()
	go func() {
		defer wg.Done()
		scanLines(stderrPipe, spec.StderrLine, &stderrBuf)
	}()

	// Readers must drain before Wait closes the pipes.
	wg.Wait()
	waitErr := cmd.Wait()

	code := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}

	res := CmdResult{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.Bytes(),
		Code:   code,
		Err:    waitErr,
	}
	if waitErr != nil {
		return res, fmt.Errorf("command failed (exit %d): %w", code, waitErr)
	}
	return res, nil
}

func scanLines(r io.Reader, cb func(string), buf *bytes.Buffer) {
	sc := bufio.NewScanner(r)
	// yt-dlp --dump-json lines can exceed the 64KB default.
	const maxCapacity = 4 * 1024 * 1024
	sc.Buffer(make([]byte, 0, 64*1024), maxCapacity)
	for sc.Scan() {
		line := sc.Text()
		if cb != nil {
			cb(line)
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

// shellQuote returns a printable shell-like command string for logging.
func shellQuote(path string, args []string) string {
	b := &strings.Builder{}
	b.WriteString(quote(path))
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(quote(a))
	}
	return b.String()
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\n\"'\\$`(){}[]*&;|<>?!") {
		return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
	}
	return s
}
