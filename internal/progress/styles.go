package progress

import "github.com/charmbracelet/lipgloss"

// Styles holds the palette shared by the plain reporter and the TUI.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Detail  lipgloss.Style
	Count   lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Faint   lipgloss.Style
	Spinner lipgloss.Style
}

// DefaultStyles mirrors the blue/white/gray/yellow scheme of the CLI messages.
func DefaultStyles() Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Title:   base.Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Label:   base.Foreground(lipgloss.Color("#F9FAFB")),
		Detail:  base.Foreground(lipgloss.Color("#9CA3AF")),
		Count:   base.Foreground(lipgloss.Color("#F59E0B")),
		Info:    base.Foreground(lipgloss.Color("#60A5FA")),
		Success: base.Foreground(lipgloss.Color("#22C55E")),
		Warning: base.Foreground(lipgloss.Color("#F59E0B")),
		Error:   base.Foreground(lipgloss.Color("#EF4444")),
		Faint:   base.Faint(true),
		Spinner: base.Foreground(lipgloss.Color("#22D3EE")),
	}
}
