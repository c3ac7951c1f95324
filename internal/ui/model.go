package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"vidgrab/internal/progress"
	"vidgrab/internal/util/format"
)

// maxVisible bounds how many items the job list renders.
const maxVisible = 8

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	source  string
	total   int
	jobs    []*jobState
	summary *progress.Summary

	spinner spinner.Model
	bar     bubblesprogress.Model

	width, height int
	styles        progress.Styles

	// Internal event channel used by the reporter to feed tea messages
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, cancel context.CancelFunc) Model {
	sty := progress.DefaultStyles()
	sp := spinner.New()
	sp.Style = sty.Spinner
	return Model{
		ctx:     ctx,
		cancel:  cancel,
		spinner: sp,
		bar: bubblesprogress.New(
			bubblesprogress.WithDefaultGradient(),
			bubblesprogress.WithWidth(40),
		),
		styles:  sty,
		eventCh: make(chan tea.Msg, 256),
	}
}

// Reporter returns the progress.Reporter that feeds this model.
func (m Model) Reporter() progress.Reporter {
	return teaReporter{ctx: m.ctx, ch: m.eventCh}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenEventsCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if w := msg.Width - 20; w > 10 && w < 60 {
			m.bar.Width = w
		}
		return m, nil

	case spinner.TickMsg:
		var c tea.Cmd
		m.spinner, c = m.spinner.Update(msg)
		return m, c

	case batchStartMsg:
		m.source = msg.B.Source
		m.total = msg.B.Total
	case itemStartMsg:
		m.jobs = append(m.jobs, newJobState(msg.I.Index, msg.I.Locator))
		if msg.I.Total > m.total {
			m.total = msg.I.Total
		}
	case jobUpdateMsg:
		js := m.job(msg.U.Index)
		if js == nil {
			// Single-item runs report no ItemStart.
			js = newJobState(msg.U.Index, msg.U.Message)
			m.jobs = append(m.jobs, js)
			if m.total == 0 {
				m.total = 1
			}
		}
		applyUpdate(js, msg.U)
	case jobLogMsg:
		if js := m.job(msg.L.Index); js != nil && msg.L.Level == progress.LevelWarn {
			js.warnings = append(js.warnings, strings.TrimRight(msg.L.Line, "\r\n"))
		}
	case jobResultMsg:
		if js := m.job(msg.R.Index); js != nil {
			applyResult(js, msg.R)
		}
	case allDoneMsg:
		s := msg.S
		m.summary = &s
		return m, tea.Quit
	}

	return m, m.listenEventsCmd()
}

func (m Model) View() string {
	out := m.viewHeader() + "\n\n" + m.viewJobs()
	if s := m.viewSummary(); s != "" {
		out += "\n" + s
	}
	return out
}

func (m Model) job(index int) *jobState {
	for i := len(m.jobs) - 1; i >= 0; i-- {
		if m.jobs[i].index == index {
			return m.jobs[i]
		}
	}
	return nil
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return allDoneMsg{S: progress.Summary{Canceled: true}}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

func applyUpdate(js *jobState, u progress.Update) {
	js.stage = u.Stage
	if u.Stage != progress.StageDownloading {
		js.status = u.Message
		return
	}
	if u.Message != "" {
		js.status = u.Message
	}
	js.downloaded = u.Progress.Downloaded
	js.total = u.Progress.Total
	js.percent = format.Percent(u.Progress.Downloaded, u.Progress.Total)
}

func applyResult(js *jobState, r progress.Result) {
	js.done = true
	js.err = r.Err
	if r.Err != nil {
		js.stage = progress.StageError
		js.status = r.Err.Error()
		js.percent = -1
		return
	}
	js.stage = progress.StageCompleted
	js.percent = 100
	js.outputPath = r.OutputPath
	js.downloaded = r.Bytes
	js.status = fmt.Sprintf("Saved: %s (%s)", filepath.Base(r.OutputPath), format.HumanizeBytes(r.Bytes))
}
