package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"govscheme/internal/checkclient"
	"govscheme/internal/controller"
	"govscheme/internal/models"
	"govscheme/internal/render"
	"govscheme/internal/share"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	set   models.SchemeResultSet
	err   error
	calls int
	last  models.UserProfile
}

func (s *stubChecker) Check(_ context.Context, p models.UserProfile) (models.SchemeResultSet, error) {
	s.calls++
	s.last = p
	return s.set, s.err
}

func results() models.SchemeResultSet {
	return models.SchemeResultSet{
		Eligible: []models.Scheme{
			{Name: "PM Kisan", Type: "Central", Description: "Farmer income support", ApplyLink: "https://pmkisan.gov.in", WhyEligible: []string{"Occupation matches"}},
			{Name: "Kerala Student Grant", Type: "State", ApplyLink: "https://kerala.gov.in", WhyEligible: []string{"State matches"}},
		},
		NotEligible: []models.Scheme{
			{Name: "Ladli Behna", Type: "State", WhyNot: []string{"Gender 'Male' is not eligible. Required: Female."}},
			{Name: "Atal Pension Yojana", Type: "Central", WhyNot: []string{"Age 65 is not within the required range (18-40)."}},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+e":
		return tea.KeyMsg{Type: tea.KeyCtrlE}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// drain runs cmd and any batched children, returning the produced messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func fill(m Model, values ...string) Model {
	for i, v := range values {
		m.inputs[i].SetValue(v)
	}
	return m
}

// submitted fills the form, submits and delivers the check result.
func submitted(t *testing.T, sc *stubChecker) Model {
	t.Helper()
	m := fill(New(controller.New(sc, "http://localhost:8000"), t.TempDir()),
		"65", "100000", "Kerala", "Retired", "Male", "Graduate")
	m, cmd := send(t, m, key("enter"))
	require.True(t, m.pending)
	for _, msg := range drain(cmd) {
		if done, ok := msg.(checkDoneMsg); ok {
			m, _ = send(t, m, done)
		}
	}
	return m
}

func TestSubmit_InvalidProfileShowsAlert(t *testing.T) {
	sc := &stubChecker{}
	m := fill(New(controller.New(sc, ""), ""), "abc", "1", "Kerala", "Farmer", "Male", "Graduate")

	m, cmd := send(t, m, key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Age must be a whole number", m.alert)
	assert.Zero(t, sc.calls, "invalid input never reaches the backend")
	assert.Contains(t, m.View(), "Press enter to dismiss")

	m, _ = send(t, m, key("x"))
	assert.NotEmpty(t, m.alert, "other keys do not dismiss the alert")
	m, _ = send(t, m, key("enter"))
	assert.Empty(t, m.alert)
}

func TestSubmit_SuccessShowsResults(t *testing.T) {
	sc := &stubChecker{set: results()}
	m := submitted(t, sc)

	assert.False(t, m.pending)
	assert.Equal(t, 1, sc.calls)
	assert.Equal(t, models.UserProfile{Age: 65, Income: 100000, State: "Kerala", Occupation: "Retired", Gender: "Male", Education: "Graduate"}, sc.last)

	view := m.View()
	assert.Contains(t, view, "PM Kisan")
	assert.Contains(t, view, "Eligible (2)")
	assert.Contains(t, view, "Not eligible (2)")
	assert.NotContains(t, view, "Requirement Gaps", "rows start collapsed")
}

func TestSubmit_DisabledWhilePending(t *testing.T) {
	sc := &stubChecker{set: results()}
	m := fill(New(controller.New(sc, ""), ""), "30", "1", "Kerala", "Farmer", "Male", "Graduate")

	m, first := send(t, m, key("enter"))
	require.NotNil(t, first)
	assert.Contains(t, m.View(), "Checking eligibility")

	_, second := send(t, m, key("enter"))
	assert.Nil(t, second, "submit is disabled while a check is pending")
}

func TestSubmit_FailureAlertsAndKeepsResults(t *testing.T) {
	sc := &stubChecker{set: results()}
	m := submitted(t, sc)

	sc.err = &checkclient.RequestFailure{Kind: checkclient.KindStatus, Status: 502}
	m, cmd := send(t, m, key("enter"))
	for _, msg := range drain(cmd) {
		if done, ok := msg.(checkDoneMsg); ok {
			m, _ = send(t, m, done)
		}
	}

	assert.False(t, m.pending)
	assert.Equal(t, checkclient.UserMessage(sc.err), m.alert)
	m, _ = send(t, m, key("esc"))
	assert.Contains(t, m.View(), "PM Kisan", "previous results stay on screen")
}

func TestBusyResultIsSilent(t *testing.T) {
	m := New(controller.New(&stubChecker{}, ""), "")
	m.pending = true
	m, _ = send(t, m, checkDoneMsg{err: controller.ErrBusy})
	assert.Empty(t, m.alert)
	assert.False(t, m.pending)
}

func TestSearchFiltersResults(t *testing.T) {
	m := submitted(t, &stubChecker{set: results()})

	m, _ = m.setFocus(focusSearch)
	for _, r := range "kisan" {
		m, _ = send(t, m, key(string(r)))
	}
	view := m.View()
	assert.Contains(t, view, "PM Kisan")
	assert.NotContains(t, view, "Kerala Student Grant")
	assert.Equal(t, "kisan", m.ctrl.View().Search)
}

func TestFilterCycles(t *testing.T) {
	m := submitted(t, &stubChecker{set: results()})

	m, _ = send(t, m, key("ctrl+t"))
	assert.Equal(t, "Central", m.ctrl.View().Filter)
	m, _ = send(t, m, key("ctrl+t"))
	assert.Equal(t, "State", m.ctrl.View().Filter)
	assert.NotContains(t, m.results.View(), "PM Kisan")
	m, _ = send(t, m, key("ctrl+t"))
	assert.Equal(t, models.FilterAll, m.ctrl.View().Filter)
}

func TestNextFilter(t *testing.T) {
	assert.Equal(t, "Central", nextFilter(models.FilterAll))
	assert.Equal(t, models.FilterAll, nextFilter("State"))
	assert.Equal(t, models.FilterAll, nextFilter("unknown"))
}

func TestResultsToggleIndependently(t *testing.T) {
	m := submitted(t, &stubChecker{set: results()})
	m, _ = m.setFocus(focusResults)

	m, _ = send(t, m, key("enter"))
	m, _ = send(t, m, key("down"))
	m, _ = send(t, m, key(" "))

	assert.Equal(t, []bool{true, true}, m.ctrl.View().Expanded)
	assert.Equal(t, 2, strings.Count(renderResults(m.ctrl.View(), -1, 0), "Requirement Gaps"))
}

func TestIdlePlaceholderUntilFirstCheck(t *testing.T) {
	m := New(controller.New(&stubChecker{}, ""), "")
	assert.Contains(t, m.View(), render.IdleText)

	m = submitted(t, &stubChecker{set: results()})
	assert.NotContains(t, m.View(), render.IdleText)
}

func TestEmptyEligibleShowsPlaceholder(t *testing.T) {
	set := results()
	set.Eligible = nil
	m := submitted(t, &stubChecker{set: set})
	assert.Contains(t, m.View(), render.NoResultsText)
}

func TestShare_CopiesAndReverts(t *testing.T) {
	var copied []string
	old := clipboardWriteAll
	clipboardWriteAll = func(s string) error { copied = append(copied, s); return nil }
	defer func() { clipboardWriteAll = old }()

	m := submitted(t, &stubChecker{set: results()})
	m, cmd := send(t, m, key("ctrl+s"))
	require.NotNil(t, cmd, "a timer reverts the copied label")
	require.Len(t, copied, 1)
	assert.Contains(t, copied[0], "eligible for 2 schemes including PM Kisan, Kerala Student Grant")
	assert.Contains(t, m.View(), "Copied!")

	m, _ = send(t, m, copiedResetMsg{})
	assert.NotContains(t, m.View(), "Copied!")
}

func TestShare_EmptyAlerts(t *testing.T) {
	called := false
	old := clipboardWriteAll
	clipboardWriteAll = func(string) error { called = true; return nil }
	defer func() { clipboardWriteAll = old }()

	m := New(controller.New(&stubChecker{}, ""), "")
	m, _ = send(t, m, key("ctrl+s"))
	assert.Equal(t, share.EmptyNotice, m.alert)
	assert.False(t, called)
}

func TestShare_ClipboardFailure(t *testing.T) {
	old := clipboardWriteAll
	clipboardWriteAll = func(string) error { return errors.New("no display") }
	defer func() { clipboardWriteAll = old }()

	m := submitted(t, &stubChecker{set: results()})
	m, _ = send(t, m, key("ctrl+s"))
	assert.Equal(t, clipboardNotice, m.alert)
	assert.False(t, m.copied)
}

func TestExportReport(t *testing.T) {
	m := submitted(t, &stubChecker{set: results()})
	m, cmd := send(t, m, key("ctrl+e"))
	require.NotNil(t, cmd)

	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	done, ok := msgs[0].(reportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	_, err := os.Stat(done.path)
	require.NoError(t, err)

	m, _ = send(t, m, done)
	assert.Contains(t, m.View(), "Saved report to")
}

func TestExportReport_NoResults(t *testing.T) {
	m := New(controller.New(&stubChecker{}, ""), "")
	m, cmd := send(t, m, key("ctrl+e"))
	assert.Nil(t, cmd)
	assert.Equal(t, noReportNotice, m.alert)
}

func TestFocusRing(t *testing.T) {
	m := New(controller.New(&stubChecker{}, ""), "")
	for i := 0; i < len(models.ProfileFields); i++ {
		m, _ = send(t, m, key("tab"))
	}
	assert.Equal(t, 0, m.focus, "search and results are skipped before the first result")

	m = submitted(t, &stubChecker{set: results()})
	for i := 0; i < len(models.ProfileFields); i++ {
		m, _ = send(t, m, key("tab"))
	}
	assert.Equal(t, focusSearch, m.focus)
}

func TestRenderCard_DistinctBadges(t *testing.T) {
	central := renderCard(results().Eligible[0], 60)
	state := renderCard(results().Eligible[1], 60)
	assert.Contains(t, central, "Central")
	assert.Contains(t, state, "State")
	assert.Contains(t, central, "✓ Occupation matches")
	assert.Contains(t, central, "https://pmkisan.gov.in")
	assert.NotEqual(t, badgeStyle("State").GetBackground(), badgeStyle("Central").GetBackground())
}
