package cmd

import "charm.land/lipgloss/v2"

// Color palette for command output. Grove prints lines, not screens, so
// the palette stays small.
var (
	colorLabel  = lipgloss.Color("#7C3AED") // Purple
	colorMuted  = lipgloss.Color("#6B7280") // Gray
	colorActive = lipgloss.Color("#10B981") // Green
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorLabel)
	pathStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	liveMarker = lipgloss.NewStyle().Foreground(colorActive).Render("●")
	idleMarker = lipgloss.NewStyle().Foreground(colorMuted).Render("○")
)
