// Package tui is the terminal surface: a profile form, a busy spinner while
// the check runs, and both result panels with search, type filter and share.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"govscheme/internal/checkclient"
	"govscheme/internal/controller"
	"govscheme/internal/models"
	"govscheme/internal/render"
	"govscheme/internal/report"
	"govscheme/internal/share"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

type clipboardFunc func(string) error

func (f clipboardFunc) WriteAll(text string) error { return f(text) }

const (
	copiedFor  = 2 * time.Second
	formHeight = 14

	clipboardNotice = "Could not access the clipboard."
	noReportNotice  = "Run a scan first to export a report."
)

var fieldLabels = map[string]string{
	"age":        "Age",
	"income":     "Annual income (Rs.)",
	"state":      "State",
	"occupation": "Occupation",
	"gender":     "Gender",
	"education":  "Education",
}

var fieldPlaceholders = map[string]string{
	"age":        "30",
	"income":     "250000",
	"state":      "Kerala",
	"occupation": "Farmer",
	"gender":     "Female",
	"education":  strings.Join(models.EducationLevels, " / "),
}

// focus positions after the form inputs
var (
	focusSearch  = len(models.ProfileFields)
	focusResults = len(models.ProfileFields) + 1
)

type checkDoneMsg struct{ err error }

type copiedResetMsg struct{}

type reportDoneMsg struct {
	path string
	err  error
}

// Model is the bubbletea model for the whole screen.
type Model struct {
	ctrl      *controller.Controller
	reportDir string

	inputs  []textinput.Model
	search  textinput.Model
	spinner spinner.Model
	results viewport.Model

	focus   int
	cursor  int
	pending bool
	alert   string
	status  string
	copied  bool
	width   int
}

func New(ctrl *controller.Controller, reportDir string) Model {
	inputs := make([]textinput.Model, len(models.ProfileFields))
	for i, f := range models.ProfileFields {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[f]
		ti.CharLimit = 40
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[0].Focus()

	search := textinput.New()
	search.Placeholder = "Search schemes"
	search.Prompt = "/ "
	search.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctrl:      ctrl,
		reportDir: reportDir,
		inputs:    inputs,
		search:    search,
		spinner:   sp,
		results:   viewport.New(80, 20),
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.results.Width = msg.Width
		m.results.Height = max(msg.Height-formHeight, 5)
		m.syncResults()
		return m, nil

	case checkDoneMsg:
		m.pending = false
		if msg.err != nil {
			if !errors.Is(msg.err, controller.ErrBusy) {
				m.alert = checkclient.UserMessage(msg.err)
			}
			return m, nil
		}
		m.cursor = 0
		m.status = ""
		m.syncResults()
		return m, nil

	case copiedResetMsg:
		m.copied = false
		return m, nil

	case reportDoneMsg:
		if msg.err != nil {
			m.alert = "Could not save the report: " + msg.err.Error()
		} else {
			m.status = "Saved report to " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// the alert blocks everything until dismissed
	if m.alert != "" {
		if key == "enter" || key == "esc" {
			m.alert = ""
		}
		return m, nil
	}

	switch key {
	case "tab":
		return m.setFocus(m.nextFocus(1))
	case "shift+tab":
		return m.setFocus(m.nextFocus(-1))
	case "ctrl+s":
		return m.share()
	case "ctrl+t":
		return m.cycleFilter(), nil
	case "ctrl+e":
		return m.exportReport()
	}

	switch {
	case m.focus < focusSearch:
		switch key {
		case "enter":
			return m.submit()
		case "up":
			if m.focus > 0 {
				return m.setFocus(m.focus - 1)
			}
			return m, nil
		case "down":
			if m.focus < len(m.inputs)-1 {
				return m.setFocus(m.focus + 1)
			}
			return m, nil
		}

	case m.focus == focusSearch:
		if key == "enter" || key == "down" {
			return m.setFocus(focusResults)
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.ctrl.SetSearch(m.search.Value())
			m.clampCursor()
			m.syncResults()
		}
		return m, cmd

	case m.focus == focusResults:
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.syncResults()
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.ctrl.View().NotEligible)-1 {
				m.cursor++
				m.syncResults()
			}
			return m, nil
		case "enter", " ":
			m.ctrl.Toggle(m.cursor)
			m.syncResults()
			return m, nil
		case "s":
			return m.share()
		case "t":
			return m.cycleFilter(), nil
		case "e":
			return m.exportReport()
		case "/":
			return m.setFocus(focusSearch)
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focus < focusSearch:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	case m.focus == focusSearch:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

// nextFocus walks the focus ring. Search and results join the ring only once
// results are on screen.
func (m Model) nextFocus(step int) int {
	n := len(m.inputs)
	if m.ctrl.HasResults() {
		n = focusResults + 1
	}
	return ((m.focus+step)%n + n) % n
}

func (m Model) setFocus(i int) (Model, tea.Cmd) {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.search.Blur()
	m.focus = i

	var cmd tea.Cmd
	switch {
	case i < focusSearch:
		cmd = m.inputs[i].Focus()
	case i == focusSearch:
		cmd = m.search.Focus()
	}
	m.syncResults()
	return m, cmd
}

func (m Model) fieldValue(name string) string {
	for i, f := range models.ProfileFields {
		if f == name {
			return m.inputs[i].Value()
		}
	}
	return ""
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.pending || m.ctrl.Busy() {
		return m, nil
	}
	p, problem, ok := models.ParseProfile(m.fieldValue)
	if !ok {
		m.alert = problem
		return m, nil
	}

	m.pending = true
	m.status = ""
	ctrl := m.ctrl
	check := func() tea.Msg {
		return checkDoneMsg{err: ctrl.Submit(context.Background(), p)}
	}
	return m, tea.Batch(m.spinner.Tick, check)
}

func (m Model) share() (tea.Model, tea.Cmd) {
	_, err := m.ctrl.Share(clipboardFunc(clipboardWriteAll))
	switch {
	case errors.Is(err, share.ErrEmptyShare):
		m.alert = share.EmptyNotice
		return m, nil
	case err != nil:
		m.alert = clipboardNotice
		return m, nil
	}
	m.copied = true
	return m, tea.Tick(copiedFor, func(time.Time) tea.Msg { return copiedResetMsg{} })
}

func (m Model) cycleFilter() Model {
	m.ctrl.SetFilter(nextFilter(m.ctrl.View().Filter))
	m.clampCursor()
	m.syncResults()
	return m
}

func nextFilter(current string) string {
	for i, f := range models.FilterTypes {
		if f == current {
			return models.FilterTypes[(i+1)%len(models.FilterTypes)]
		}
	}
	return models.FilterAll
}

func (m Model) exportReport() (tea.Model, tea.Cmd) {
	if !m.ctrl.HasResults() {
		m.alert = noReportNotice
		return m, nil
	}
	set, dir := m.ctrl.Results(), m.reportDir
	return m, func() tea.Msg {
		path, err := report.WriteFile(dir, set, time.Now())
		return reportDoneMsg{path: path, err: err}
	}
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.View().NotEligible)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) syncResults() {
	cursor := -1
	if m.focus == focusResults {
		cursor = m.cursor
	}
	m.results.SetContent(renderResults(m.ctrl.View(), cursor, m.width))
}

func (m Model) View() string {
	if m.alert != "" {
		return renderAlert(m.alert)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("GovScheme India"))
	b.WriteString("\n\n")

	for i, f := range models.ProfileFields {
		label := labelStyle
		if i == m.focus {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(fieldLabels[f]))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.pending {
		b.WriteString(busyButtonStyle.Render(m.spinner.View() + " Checking eligibility..."))
	} else {
		b.WriteString(buttonStyle.Render("Check eligibility"))
	}
	b.WriteString("\n")

	v := m.ctrl.View()
	if v.ResultsVisible {
		shareLabel := "share (ctrl+s)"
		if m.copied {
			shareLabel = copiedStyle.Render("Copied!")
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s   type: %s (ctrl+t)   %s   export (ctrl+e)\n",
			m.search.View(), v.Filter, shareLabel))
		b.WriteString(m.results.View())
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(render.IdleText))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab: next  enter: submit/toggle  ctrl+c: quit"))
	return b.String()
}

// Run starts the program on the alternate screen.
func Run(ctrl *controller.Controller, reportDir string) error {
	_, err := tea.NewProgram(New(ctrl, reportDir), tea.WithAltScreen()).Run()
	return err
}
