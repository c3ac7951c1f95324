package ui

import (
	"fmt"
	"strings"

	"vidgrab/internal/progress"
	"vidgrab/internal/util/format"
)

func (m Model) viewHeader() string {
	done := 0
	for _, js := range m.jobs {
		if js.done {
			done++
		}
	}
	title := m.styles.Title.Render("vidgrab")
	if m.source != "" {
		title += " " + m.styles.Faint.Render(m.source)
	}
	sub := m.styles.Faint.Render(fmt.Sprintf("Items: %d/%d done • q: quit", done, m.total))
	return title + "\n" + sub
}

func (m Model) viewJobs() string {
	jobs := m.jobs
	var b strings.Builder
	if hidden := len(jobs) - maxVisible; hidden > 0 {
		b.WriteString(m.styles.Faint.Render(fmt.Sprintf("  … %d earlier item(s)", hidden)))
		b.WriteString("\n")
		jobs = jobs[hidden:]
	}
	for _, js := range jobs {
		b.WriteString(m.viewJob(js))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewJob(js *jobState) string {
	stageStyle := m.styles.Info
	switch js.stage {
	case progress.StageDownloading:
		stageStyle = m.styles.Spinner
	case progress.StageTranslating:
		stageStyle = m.styles.Count
	case progress.StageCompleted:
		stageStyle = m.styles.Success
	case progress.StageError:
		stageStyle = m.styles.Error
	}

	counter := m.styles.Count.Render(fmt.Sprintf("[ %d / %d ]", js.index, m.total))
	line1 := fmt.Sprintf("%s %s  %s", counter, m.styles.Label.Render(truncate(js.locator, 48)), stageStyle.Render(string(js.stage)))

	var right string
	switch {
	case js.done && js.err == nil:
		right = m.styles.Success.Render("✓ " + js.status)
	case js.err != nil:
		right = m.styles.Error.Render("✗ " + js.status)
	case js.stage == progress.StageDownloading && js.percent >= 0:
		right = fmt.Sprintf("%s %5.1f%%  %s", m.bar.ViewAs(js.percent/100.0), js.percent,
			m.styles.Detail.Render(format.Transfer(js.downloaded, js.total)))
	case js.stage == progress.StageDownloading:
		right = m.spinner.View() + " " + m.styles.Detail.Render(format.Transfer(js.downloaded, 0))
	default:
		right = m.spinner.View() + " " + m.styles.Detail.Render(js.status)
	}

	lines := []string{line1, "  " + right}
	for _, w := range js.warnings {
		lines = append(lines, "  "+m.styles.Warning.Render("⚠ "+w))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewSummary() string {
	if m.summary == nil {
		return ""
	}
	s := *m.summary
	var b strings.Builder
	if s.Canceled {
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("⚠ Canceled: %d item(s) skipped", s.Skipped)))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Success.Render("✔ Done"))
	b.WriteString(m.styles.Faint.Render(fmt.Sprintf("  %d saved, %d failed", s.Succeeded, s.Failed)))
	b.WriteString("\n")
	return b.String()
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
