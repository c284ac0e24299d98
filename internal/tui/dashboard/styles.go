// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     dashboard
// Description: Styles for the dashboard TUI
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/logmaster/dashboard/internal/projector"
)

// Color palette, shared with the projector's status colors
var (
	ColorPrimary = lipgloss.Color(projector.ColorIndigo)
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorDimmed  = lipgloss.Color("#374151") // Dark Gray

	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

// Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	ClockStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)

	TabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

	ActiveTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorPrimary).
			Bold(true).
			Underline(true)
)

// Content styles
var (
	SectionStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true).
			MarginTop(1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1).
			Width(22)

	CardLabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	CardValueStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Width(24)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim).
				Italic(true)

	BodyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)
)

// Feedback styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StaleStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	FilterBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	FilterActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	FilterInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)
)

// Help styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Logo
const Logo = "LogMaster"

// barCells is the width of a full bar
const barCells = 30

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}

// Colored renders s in a projector hex color
func Colored(hex, s string) string {
	if hex == "" {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(s)
}

// RenderBadge renders an icon and label in the badge color
func RenderBadge(b projector.Badge) string {
	return Colored(b.Color, strings.TrimSpace(b.Icon+" "+b.Label))
}

// RenderBar renders a horizontal bar scaled to width percent
func RenderBar(width float64, color string) string {
	if width < 0 {
		width = 0
	}
	if width > 100 {
		width = 100
	}
	filled := int(width/100*barCells + 0.5)
	return Colored(color, strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(ColorDimmed).Render(strings.Repeat("░", barCells-filled))
}

// RenderFilterStatus renders a filter value, dimmed when unset
func RenderFilterStatus(name, value string) string {
	if value == "" {
		return FilterInactiveStyle.Render(name + ":all")
	}
	return FilterActiveStyle.Render(name + ":" + value)
}
