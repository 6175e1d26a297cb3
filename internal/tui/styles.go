package tui

import (
	"govscheme/internal/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	navy     = lipgloss.Color("#101F38")
	muted    = lipgloss.Color("#64748B")
	border   = lipgloss.Color("#CBD5E1")
	emerald  = lipgloss.Color("#047857")
	emerBg   = lipgloss.Color("#ECFDF5")
	blue     = lipgloss.Color("#1D4ED8")
	blueBg   = lipgloss.Color("#EFF6FF")
	red      = lipgloss.Color("#B91C1C")
	focusRed = lipgloss.Color("#E53935")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(navy).Padding(0, 2)

	labelStyle        = lipgloss.NewStyle().Width(20).Foreground(muted)
	focusedLabelStyle = labelStyle.Foreground(navy).Bold(true)

	buttonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(navy).Padding(0, 2)
	busyButtonStyle = lipgloss.NewStyle().Foreground(muted).Padding(0, 2)

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(navy).MarginTop(1)
	helpStyle    = lipgloss.NewStyle().Foreground(muted)
	statusStyle  = lipgloss.NewStyle().Foreground(emerald)
	copiedStyle  = lipgloss.NewStyle().Bold(true).Foreground(emerald)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(navy)
	descStyle   = lipgloss.NewStyle().Foreground(muted)
	reasonStyle = lipgloss.NewStyle().Foreground(emerald)
	linkStyle   = lipgloss.NewStyle().Underline(true).Foreground(blue)

	centralBadge = lipgloss.NewStyle().Foreground(emerald).Background(emerBg).Padding(0, 1)
	stateBadge   = lipgloss.NewStyle().Foreground(blue).Background(blueBg).Padding(0, 1)
	mutedBadge   = lipgloss.NewStyle().Foreground(muted)

	rowStyle         = lipgloss.NewStyle().PaddingLeft(1)
	selectedRowStyle = rowStyle.Foreground(focusRed).Bold(true)
	gapStyle         = lipgloss.NewStyle().Foreground(red).PaddingLeft(4)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(red).
			Padding(1, 3).
			Width(60)
)

// badgeStyle keeps State and Central visually distinct.
func badgeStyle(schemeType string) lipgloss.Style {
	if schemeType == models.TypeState {
		return stateBadge
	}
	return centralBadge
}
