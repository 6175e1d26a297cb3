package tui

import (
	"fmt"
	"strings"

	"govscheme/internal/controller"
	"govscheme/internal/models"
	"govscheme/internal/render"

	"github.com/charmbracelet/lipgloss"
)

func renderCard(s models.Scheme, width int) string {
	var b strings.Builder
	b.WriteString(nameStyle.Render(s.Name))
	b.WriteString(" ")
	b.WriteString(badgeStyle(s.Type).Render(s.Type))
	b.WriteString("\n")
	if s.Description != "" {
		b.WriteString(descStyle.Render(s.Description))
		b.WriteString("\n")
	}
	for _, r := range s.WhyEligible {
		b.WriteString(reasonStyle.Render("✓ " + r))
		b.WriteString("\n")
	}
	b.WriteString("Apply now: ")
	b.WriteString(linkStyle.Render(s.ApplyLink))

	style := cardStyle
	if width > 4 {
		style = style.Width(width - 4)
	}
	return style.Render(b.String())
}

func renderRow(s models.Scheme, open, selected bool) string {
	marker := "▸"
	if open {
		marker = "▾"
	}
	style := rowStyle
	if selected {
		style = selectedRowStyle
	}
	head := style.Render(fmt.Sprintf("%s %s", marker, s.Name)) + " " + mutedBadge.Render(s.Type)
	if !open {
		return head
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteString("\n")
	if s.Description != "" {
		b.WriteString(descStyle.PaddingLeft(4).Render(s.Description))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Bold(true).Render("Requirement Gaps"))
	for _, r := range s.WhyNot {
		b.WriteString("\n")
		b.WriteString(gapStyle.Render("• " + r))
	}
	return b.String()
}

// renderResults draws both panels for v. cursor < 0 hides the row marker.
func renderResults(v controller.View, cursor, width int) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Eligible (%d)", len(v.Eligible))))
	b.WriteString("\n")
	if len(v.Eligible) == 0 {
		b.WriteString(helpStyle.Render(render.NoResultsText))
		b.WriteString("\n")
	}
	for _, s := range v.Eligible {
		b.WriteString(renderCard(s, width))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Not eligible (%d)", len(v.NotEligible))))
	for i, s := range v.NotEligible {
		open := i < len(v.Expanded) && v.Expanded[i]
		b.WriteString("\n")
		b.WriteString(renderRow(s, open, i == cursor))
	}
	return b.String()
}

func renderAlert(text string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(red).Render("Notice"),
		"",
		text,
		"",
		helpStyle.Render("Press enter to dismiss"),
	)
	return alertStyle.Render(body)
}
