package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary = lipgloss.Color("#4A90E2") // Campus blue
	colorDanger  = lipgloss.Color("#FF6B6B") // High severity / errors
	colorWarning = lipgloss.Color("#FFD93D") // Medium severity
	colorSuccess = lipgloss.Color("#6BCF7F") // Resolved / low severity
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#3C6E9F")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Tab bar
	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1)

	// Panes
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			MarginRight(1)

	focusedRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary)

	// Content
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Severity / status accents
	severityHighStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)

	severityMediumStyle = lipgloss.NewStyle().
				Foreground(colorWarning).
				Bold(true)

	severityLowStyle = lipgloss.NewStyle().
				Foreground(colorSuccess)

	// Banner styles
	bannerErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorDanger).
				Bold(true).
				Padding(0, 1)

	bannerInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorBorder).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	staleStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Italic(true)
)

// severityStyle picks the accent for a zone severity
func severityStyle(s string) lipgloss.Style {
	switch s {
	case "high":
		return severityHighStyle
	case "medium":
		return severityMediumStyle
	case "low":
		return severityLowStyle
	}
	return valueStyle
}
