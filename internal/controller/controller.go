// Package controller holds the presentation state shared by the terminal and
// web surfaces: the last fetched result set, the search text, the active type
// filter and per-row expansion of the not-eligible list.
package controller

import (
	"context"
	"errors"
	"slices"
	"sync"

	"govscheme/internal/logger"
	"govscheme/internal/metrics"
	"govscheme/internal/models"
	"govscheme/internal/share"
)

// Phase is the state of the submit control.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseIdleWithResults
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	case PhaseIdleWithResults:
		return "idle-with-results"
	}
	return "idle"
}

// ErrBusy is returned by Submit while another check is in flight.
var ErrBusy = errors.New("controller: a check is already in progress")

// Checker exchanges a profile for a result set.
type Checker interface {
	Check(ctx context.Context, profile models.UserProfile) (models.SchemeResultSet, error)
}

// View is one computed snapshot of both panels.
type View struct {
	Eligible    []models.Scheme
	NotEligible []models.Scheme
	// Expanded[i] reports whether NotEligible[i] is open.
	Expanded []bool

	Search string
	Filter string

	// ResultsVisible is false until the first successful check; the
	// placeholder is shown instead.
	ResultsVisible bool
}

// Controller owns the last result set and the view derived from it. It is
// safe for concurrent use; only one check runs at a time.
type Controller struct {
	checker  Checker
	shareURL string

	mu         sync.RWMutex
	phase      Phase
	results    models.SchemeResultSet
	hasResults bool
	search     string
	filter     string
	view       View
}

// New returns an idle controller with no results, filtered to All.
func New(checker Checker, shareURL string) *Controller {
	c := &Controller{
		checker:  checker,
		shareURL: shareURL,
		filter:   models.FilterAll,
		results:  models.SchemeResultSet{Eligible: []models.Scheme{}, NotEligible: []models.Scheme{}},
	}
	c.recompute()
	return c
}

// Submit runs one check. The controller is busy for the whole round trip and
// is released on every path. On failure the stored results are left exactly
// as they were.
func (c *Controller) Submit(ctx context.Context, profile models.UserProfile) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer func() {
		c.mu.Lock()
		if c.phase == PhaseSubmitting {
			c.phase = PhaseIdle
		}
		c.mu.Unlock()
	}()

	set, err := c.checker.Check(ctx, profile)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.phase = PhaseIdle
		return err
	}

	c.results = set
	c.hasResults = true
	c.phase = PhaseIdleWithResults
	c.recompute()
	logger.Debug("controller: results stored", map[string]interface{}{
		"eligible": len(set.Eligible), "not_eligible": len(set.NotEligible),
	})
	return nil
}

func (c *Controller) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseSubmitting {
		return ErrBusy
	}
	c.phase = PhaseSubmitting
	return nil
}

func (c *Controller) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// Busy reports whether the submit control is disabled.
func (c *Controller) Busy() bool { return c.Phase() == PhaseSubmitting }

func (c *Controller) HasResults() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hasResults
}

// Results returns the unfiltered result set of the last successful check.
func (c *Controller) Results() models.SchemeResultSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.results
}

// View returns the current snapshot. The returned slices must not be modified.
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot()
}

func (c *Controller) SetSearch(text string) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = text
	c.recompute()
	return c.snapshot()
}

// SetFilter selects a scheme type; "" is treated as the All sentinel.
func (c *Controller) SetFilter(schemeType string) View {
	if schemeType == "" {
		schemeType = models.FilterAll
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = schemeType
	c.recompute()
	return c.snapshot()
}

// Toggle flips the expansion of not-eligible row i without touching any other
// row. Out-of-range indices are ignored.
func (c *Controller) Toggle(i int) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i >= 0 && i < len(c.view.Expanded) {
		c.view.Expanded[i] = !c.view.Expanded[i]
	}
	return c.snapshot()
}

// Share copies the summary of the unfiltered eligible set to cb. With no
// eligible schemes it returns share.ErrEmptyShare and cb is not called.
func (c *Controller) Share(cb share.Clipboard) (string, error) {
	c.mu.RLock()
	eligible := c.results.Eligible
	c.mu.RUnlock()

	text, err := share.Summary(eligible, c.shareURL)
	if err != nil {
		metrics.ShareActions.WithLabelValues("empty").Inc()
		return "", err
	}
	if err := cb.WriteAll(text); err != nil {
		metrics.ShareActions.WithLabelValues("clipboard_error").Inc()
		logger.Warn("share: clipboard write failed", map[string]interface{}{"error": err})
		return text, err
	}
	metrics.ShareActions.WithLabelValues("copied").Inc()
	return text, nil
}

// recompute rebuilds both panels from scratch. Expansion state is reset.
// Callers hold c.mu for writing.
func (c *Controller) recompute() {
	ne := FilterSchemes(c.results.NotEligible, c.search, c.filter)
	c.view = View{
		Eligible:       FilterSchemes(c.results.Eligible, c.search, c.filter),
		NotEligible:    ne,
		Expanded:       make([]bool, len(ne)),
		Search:         c.search,
		Filter:         c.filter,
		ResultsVisible: c.hasResults,
	}
	metrics.FilterRecomputes.Inc()
}

func (c *Controller) snapshot() View {
	v := c.view
	v.Eligible = slices.Clip(v.Eligible)
	v.NotEligible = slices.Clip(v.NotEligible)
	v.Expanded = slices.Clone(c.view.Expanded)
	return v
}
