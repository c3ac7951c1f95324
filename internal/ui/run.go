package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"vidgrab/internal/progress"
)

// RunFunc drives a batch against the given reporter and returns its summary.
type RunFunc func(ctx context.Context, rep progress.Reporter) progress.Summary

// Run launches the TUI and executes run in the background, feeding its
// events into the view. Quitting the TUI cancels the batch. The returned
// error counts failed items, or reports a terminal failure.
func Run(ctx context.Context, run RunFunc) (progress.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(ctx, cancel)
	prog := tea.NewProgram(m, tea.WithContext(ctx))

	sumCh := make(chan progress.Summary, 1)
	go func() {
		sumCh <- run(ctx, m.Reporter())
	}()

	final, err := prog.Run()
	cancel()
	sum := <-sumCh
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return sum, err
	}

	if fm, ok := final.(Model); ok {
		if msg := failureReport(fm.jobs); msg != "" {
			return sum, errors.New(msg)
		}
	}
	return sum, nil
}

// failureReport only counts failures; each one is already on the final frame.
func failureReport(jobs []*jobState) string {
	failed := 0
	for _, js := range jobs {
		if js != nil && js.err != nil {
			failed++
		}
	}
	if failed == 0 {
		return ""
	}
	return fmt.Sprintf("%d item(s) failed", failed)
}
