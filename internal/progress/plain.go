package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"vidgrab/internal/util/format"
)

// Plain writes one styled line per message, redrawing byte progress in place
// when out is a terminal.
type Plain struct {
	mu         sync.Mutex
	out        io.Writer
	styles     Styles
	inPlace    bool
	midLine    bool
	lastBucket int
}

// NewPlain returns a line-oriented Reporter. inPlace enables carriage-return
// redraws for byte progress; otherwise progress is printed every 10%.
func NewPlain(out io.Writer, inPlace bool) *Plain {
	return &Plain{out: out, styles: DefaultStyles(), inPlace: inPlace, lastBucket: -1}
}

func (p *Plain) Batch(b BatchStart) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if b.Source != "" {
		p.line(p.info("Reading file:", b.Source))
	}
	p.line(fmt.Sprintf("%s %s %s", p.styles.Info.Render(" +"), p.styles.Label.Render("ITEMS:"), p.styles.Count.Render(fmt.Sprint(b.Total))))
}

func (p *Plain) Item(i ItemStart) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastBucket = -1
	p.line(fmt.Sprintf("%s %s %s", p.styles.Info.Render(" +"), p.styles.Label.Render("ITEM:"),
		p.styles.Count.Render(fmt.Sprintf("[ %d / %d ]", i.Index, i.Total))))
}

func (p *Plain) Update(u Update) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u.Stage != StageDownloading || u.Progress.Downloaded == 0 {
		if u.Message != "" {
			p.line(p.info(stageLabel(u.Stage), u.Message))
		}
		return
	}
	text := fmt.Sprintf("%s %s %s", p.styles.Info.Render(" +"), p.styles.Label.Render("Progress:"),
		p.styles.Count.Render("[ "+format.Transfer(u.Progress.Downloaded, u.Progress.Total)+" ]"))
	if p.inPlace {
		fmt.Fprintf(p.out, "\r\x1b[2K%s", text)
		p.midLine = true
		if u.Progress.Complete() {
			p.endLine()
		}
		return
	}
	pct := int(format.Percent(u.Progress.Downloaded, u.Progress.Total))
	if pct < 0 {
		return
	}
	if bucket := pct / 10; bucket > p.lastBucket {
		p.lastBucket = bucket
		p.line(text)
	}
}

func (p *Plain) Log(l Log) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.line(p.render(l.Level, l.Line))
}

func (p *Plain) Result(r Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r.Err == nil && r.OutputPath != "" {
		p.line(fmt.Sprintf(" %s %s %s", p.styles.Success.Render("✔"), p.styles.Label.Render("Saved:"), p.styles.Detail.Render(r.OutputPath)))
	}
}

func (p *Plain) Done(s Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s.Canceled {
		p.line(p.render(LevelWarn, fmt.Sprintf("Canceled: %d item(s) skipped", s.Skipped)))
	}
	if s.Total > 1 {
		p.line(p.styles.Faint.Render(fmt.Sprintf("   %d saved, %d failed", s.Succeeded, s.Failed)))
	}
	p.line(fmt.Sprintf(" %s %s", p.styles.Success.Render("✔"), p.styles.Label.Render("Done")))
}

func (p *Plain) info(label, detail string) string {
	return fmt.Sprintf("%s %s %s", p.styles.Info.Render(" +"), p.styles.Label.Render(label), p.styles.Detail.Render(detail))
}

func (p *Plain) render(level Level, line string) string {
	switch level {
	case LevelWarn:
		return fmt.Sprintf(" %s %s", p.styles.Warning.Render("⚠"), p.styles.Warning.Render(line))
	case LevelError:
		return fmt.Sprintf(" %s %s", p.styles.Error.Render("✖"), p.styles.Warning.Render(line))
	case LevelSuccess:
		return fmt.Sprintf(" %s %s", p.styles.Success.Render("✔"), p.styles.Label.Render(line))
	default:
		return fmt.Sprintf("%s %s", p.styles.Info.Render(" +"), p.styles.Label.Render(line))
	}
}

func (p *Plain) line(s string) {
	p.endLine()
	fmt.Fprintln(p.out, strings.TrimRight(s, "\n"))
}

func (p *Plain) endLine() {
	if p.midLine {
		fmt.Fprintln(p.out)
		p.midLine = false
	}
}

func stageLabel(s Stage) string {
	switch s {
	case StageSearching:
		return "Searching video info:"
	case StageMetadata:
		return "Getting info:"
	case StageTranslating:
		return "Translating:"
	case StageDownloading:
		return "Downloading:"
	default:
		return string(s) + ":"
	}
}
