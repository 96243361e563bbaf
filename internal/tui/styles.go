package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#1976D2")
	colorMuted  = lipgloss.Color("#888888")
	colorError  = lipgloss.Color("#E57373")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorAccent).
			Padding(0, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(colorAccent)

	cardTitleStyle = lipgloss.NewStyle().Bold(true)
	snippetStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorError).
			Padding(0, 1)

	noticeStyle  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	metaStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	helpStyle    = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
	spinnerStyle = lipgloss.NewStyle().Foreground(colorAccent)
)
