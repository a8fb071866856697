// Package tui implements the interactive skip selection view.
package tui

import "github.com/charmbracelet/lipgloss"

// Shared style palette for the selection view.
//
//nolint:gochecknoglobals // Lipgloss styles are immutable values shared across renders
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	CriticalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("205")).
				Padding(0, 1)

	SelectedBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("42"))
)
