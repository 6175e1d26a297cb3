// Package render turns schemes into detached HTML node trees. Nothing here
// touches a live page; callers attach or serialize the nodes themselves.
package render

import (
	"fmt"
	"strings"

	"govscheme/internal/controller"
	"govscheme/internal/models"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NoResultsText is shown in place of eligible cards when none match.
const NoResultsText = "No matching schemes found for this filter/search."

// IdleText fills the results region before the first successful check.
const IdleText = "Submit your profile to see matching schemes."

const (
	staggerStep      = 100 // ms between consecutive cards
	notEligibleShift = 3   // rows start after the first few cards
)

func el(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute { return html.Attribute{Key: key, Val: val} }

func class(names ...string) html.Attribute { return attr("class", strings.Join(names, " ")) }

func text(s string) *html.Node { return &html.Node{Type: html.TextNode, Data: s} }

func appendAll(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

func delay(ms int) html.Attribute {
	return attr("style", fmt.Sprintf("animation-delay: %dms", ms))
}

// BadgeClass returns the type badge styling. State schemes are blue, every
// other type is emerald.
func BadgeClass(schemeType string) string {
	if schemeType == models.TypeState {
		return "badge-type bg-blue-50 text-blue-700"
	}
	return "badge-type bg-emerald-50 text-emerald-700"
}

// RenderCard builds the eligible card for s at position index.
func RenderCard(s models.Scheme, index int) *html.Node {
	card := el(atom.Article, class("scheme-card", "animate-fade-in"), delay(index*staggerStep))

	head := el(atom.Div, class("card-head"))
	appendAll(head,
		appendAll(el(atom.H3, class("scheme-name")), text(s.Name)),
		appendAll(el(atom.Span, class(BadgeClass(s.Type))), text(s.Type)),
	)

	reasons := el(atom.Div, class("reasons-container"))
	for _, r := range s.WhyEligible {
		reasons.AppendChild(appendAll(el(atom.Span, class("match-badge")), text("✓ "+r)))
	}

	link := appendAll(el(atom.A,
		class("apply-link"),
		attr("href", s.ApplyLink),
		attr("target", "_blank"),
		attr("rel", "noopener noreferrer"),
	), text("Apply now"))

	return appendAll(card,
		head,
		appendAll(el(atom.P, class("scheme-desc")), text(s.Description)),
		reasons,
		link,
	)
}

// Placeholder is the single element shown when the eligible list is empty.
func Placeholder() *html.Node {
	return appendAll(el(atom.Div, class("no-results")),
		appendAll(el(atom.P), text(NoResultsText)))
}

// RenderEligible returns one card per scheme, or exactly one placeholder.
func RenderEligible(schemes []models.Scheme) []*html.Node {
	if len(schemes) == 0 {
		return []*html.Node{Placeholder()}
	}
	nodes := make([]*html.Node, 0, len(schemes))
	for i, s := range schemes {
		nodes = append(nodes, RenderCard(s, i))
	}
	return nodes
}

// RenderNotEligibleRow builds a collapsible row. Rows are <details> elements
// so each one opens and closes on its own.
func RenderNotEligibleRow(s models.Scheme, index int, open bool) *html.Node {
	row := el(atom.Details, class("rejection-row", "animate-fade-in"), delay((index+notEligibleShift)*staggerStep))
	if open {
		row.Attr = append(row.Attr, attr("open", ""))
	}

	summary := appendAll(el(atom.Summary, class("collapse-btn"), attr("data-id", fmt.Sprint(index))),
		appendAll(el(atom.Span, class("scheme-name")), text(s.Name)),
		appendAll(el(atom.Span, class("badge-type-muted")), text(s.Type)),
	)

	gaps := el(atom.Ul, class("gap-list"))
	for _, r := range s.WhyNot {
		gaps.AppendChild(appendAll(el(atom.Li), text(r)))
	}

	body := appendAll(el(atom.Div, class("rejection-accordion")),
		appendAll(el(atom.P, class("scheme-desc")), text(s.Description)),
		appendAll(el(atom.Div, class("requirement-gaps")),
			appendAll(el(atom.P, class("gaps-title")), text("Requirement Gaps")),
			gaps,
		),
	)

	return appendAll(row, summary, body)
}

// RenderNotEligible renders every row; expanded[i] opens row i.
func RenderNotEligible(schemes []models.Scheme, expanded []bool) []*html.Node {
	nodes := make([]*html.Node, 0, len(schemes))
	for i, s := range schemes {
		open := i < len(expanded) && expanded[i]
		nodes = append(nodes, RenderNotEligibleRow(s, i, open))
	}
	return nodes
}

// Panels wraps both lists in their named containers.
func Panels(v controller.View) []*html.Node {
	eligible := appendAll(el(atom.Div, attr("id", "eligibleCards"), class("cards-grid")), RenderEligible(v.Eligible)...)
	notEligible := appendAll(el(atom.Div, attr("id", "notEligibleContainer"), class("rows")), RenderNotEligible(v.NotEligible, v.Expanded)...)
	return []*html.Node{eligible, notEligible}
}

// HTML serializes nodes in order.
func HTML(nodes ...*html.Node) (string, error) {
	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}
