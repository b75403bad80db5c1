package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/umitdogu/proxysql-monitor/internal/engine"
)

// Color constants — ProxySQL Monitor palette.
var (
	colorGreen  = lipgloss.Color("#10b981")
	colorYellow = lipgloss.Color("#f59e0b")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorCyan   = lipgloss.Color("#06b6d4")
	colorWhite  = lipgloss.Color("#f8fafc")
	colorDark   = lipgloss.Color("#1e293b")
)

// StyleHeader — full-width dark header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// Tab bar styles for the page selector.
var (
	StyleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan).
			Underline(true)

	StyleTabInactive = lipgloss.NewStyle().
				Foreground(colorGray)
)

// Table styles.
var (
	StyleTableHeader = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(colorGray)

	StyleTableRow = lipgloss.NewStyle().
			Foreground(colorWhite)
)

// Utility styles.
var (
	StyleError  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	StyleDim    = lipgloss.NewStyle().Foreground(colorGray)
	StyleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(colorRed)
	StyleCyan   = lipgloss.NewStyle().Foreground(colorCyan)
)

// severityStyle maps a classification severity to its display style.
func severityStyle(s engine.Severity) lipgloss.Style {
	switch s {
	case engine.SeverityDim:
		return StyleDim
	case engine.SeverityGood:
		return StyleGreen
	case engine.SeverityWarn:
		return StyleYellow
	case engine.SeverityCrit:
		return StyleRed
	default:
		return lipgloss.NewStyle()
	}
}

// renderTier renders a classification label in its severity color.
func renderTier(t engine.Tier) string {
	return severityStyle(t.Severity).Render("[" + t.Label + "]")
}

// logLevelStyle colors a parsed log level.
func logLevelStyle(level string) lipgloss.Style {
	switch level {
	case "ERROR":
		return StyleRed
	case "WARN":
		return StyleYellow
	case "DEBUG":
		return StyleDim
	default:
		return StyleGreen
	}
}
