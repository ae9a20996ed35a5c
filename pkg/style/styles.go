// Package style renders anistep's terminal output: the run header,
// per-step status lines and the closing summary.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// TitleStyle renders the run header
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	// HeaderStyle boxes the run banner
	HeaderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 2)

	// SuccessStyle marks a run that completed
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	// ErrorStyle marks a run that failed
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// WarningStyle marks skipped work
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// MutedStyle renders secondary detail like ids and durations
	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)
