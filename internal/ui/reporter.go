package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"vidgrab/internal/progress"
)

// teaReporter forwards orchestrator events to the bubbletea loop. Structural
// events block until delivered or ctx ends; byte progress is dropped when
// the channel is full.
type teaReporter struct {
	ctx context.Context
	ch  chan tea.Msg
}

func (r teaReporter) Batch(b progress.BatchStart) { r.send(batchStartMsg{B: b}) }
func (r teaReporter) Item(i progress.ItemStart)   { r.send(itemStartMsg{I: i}) }
func (r teaReporter) Result(res progress.Result)  { r.send(jobResultMsg{R: res}) }
func (r teaReporter) Done(s progress.Summary)     { r.send(allDoneMsg{S: s}) }

func (r teaReporter) Update(u progress.Update) {
	if u.Stage != progress.StageDownloading || u.Progress.Complete() {
		r.send(jobUpdateMsg{U: u})
		return
	}
	select {
	case r.ch <- jobUpdateMsg{U: u}:
	default:
	}
}

func (r teaReporter) Log(l progress.Log) {
	if l.Level == progress.LevelError || l.Level == progress.LevelWarn {
		r.send(jobLogMsg{L: l})
		return
	}
	select {
	case r.ch <- jobLogMsg{L: l}:
	default:
	}
}

func (r teaReporter) send(msg tea.Msg) {
	select {
	case r.ch <- msg:
	case <-r.ctx.Done():
	}
}
