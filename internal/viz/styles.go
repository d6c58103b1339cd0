package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/spirograph/internal/theme"
)

type styles struct {
	canvas  lipgloss.Style
	playing lipgloss.Style
	paused  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	notice  lipgloss.Style
	help    lipgloss.Style
	helpBox lipgloss.Style
}

func newStyles(th theme.Theme) styles {
	return styles{
		canvas:  lipgloss.NewStyle().Foreground(th.Trace).Background(th.Background),
		playing: lipgloss.NewStyle().Bold(true).Foreground(th.Trace),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(th.Accent),
		label:   lipgloss.NewStyle().Foreground(th.Muted),
		value:   lipgloss.NewStyle().Foreground(th.Text),
		notice:  lipgloss.NewStyle().Foreground(th.Accent).Italic(true),
		help:    lipgloss.NewStyle().Foreground(th.Muted),
		helpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Muted).
			Foreground(th.Text).
			Padding(0, 2),
	}
}
