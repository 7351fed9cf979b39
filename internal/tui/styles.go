package tui

import "github.com/charmbracelet/lipgloss"

// Palette matches the web dashboard
var (
	colorAccent  = lipgloss.Color("#6366f1")
	colorTeal    = lipgloss.Color("#14b8a6")
	colorError   = lipgloss.Color("#ef4444")
	colorText    = lipgloss.Color("#e2e8f0")
	colorMuted   = lipgloss.Color("#94a3b8")
	colorBorder  = lipgloss.Color("#334155")
	colorLoading = lipgloss.Color("#a5b4fc")
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	loadingStyle = lipgloss.NewStyle().Foreground(colorLoading)

	statValueStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorAccent).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)

	barStyle = lipgloss.NewStyle().Foreground(colorTeal)

	keyStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)
