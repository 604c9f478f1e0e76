package tui

import "github.com/charmbracelet/lipgloss"

// Accents reuse tracker.Palette entries.
var (
	colorPrimary = lipgloss.Color("#007BFA")
	colorSection = lipgloss.Color("#8D72E6")
	colorDone    = lipgloss.Color("#33CF69")
	colorPinned  = lipgloss.Color("#FF881E")
	colorError   = lipgloss.Color("#FD4C49")
	colorFg      = lipgloss.Color("#E6E6F0")
	colorMuted   = lipgloss.Color("#7A7A8C")
	colorSubtle  = lipgloss.Color("#35347C")
	colorInfo    = lipgloss.Color("#34A7FE")
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorInfo)
	successStyle   = lipgloss.NewStyle().Foreground(colorDone)
	warningStyle   = lipgloss.NewStyle().Foreground(colorPinned)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)

	// Tracker list
	sectionStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorSection).MarginLeft(1)
	completedStyle    = lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true)
	pinnedDateStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPinned)
	selectedItemStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	normalItemStyle   = lipgloss.NewStyle().Foreground(colorFg)
)
