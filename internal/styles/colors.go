package styles

import "github.com/charmbracelet/lipgloss"

// Zinc palette, matching the editor's dark chrome
const (
	Background = "#18181B"
	Surface    = "#27272A"
	Foreground = "#F4F4F5"

	Red    = "#F87171" // Errors
	Orange = "#EA580C" // HTML raw source
	Yellow = "#FACC15" // Highlights
	Green  = "#4ADE80" // Success
	Blue   = "#2563EB" // Markdown raw source, active tab
	Muted  = "#71717A" // Dim text, help
	Border = "#3F3F46" // Borders, separators
)

// Common styles
var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Muted))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Foreground))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	SpinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Blue))
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Muted))

	// Tabs
	TabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color(Muted))

	ActiveTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color(Foreground)).
			Background(lipgloss.Color(Blue))

	// Raw source language badges
	MarkdownBadge = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color(Foreground)).
			Background(lipgloss.Color(Blue))

	HTMLBadge = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color(Foreground)).
			Background(lipgloss.Color(Orange))

	// Panes
	PaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border))

	PaneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Muted))
)
