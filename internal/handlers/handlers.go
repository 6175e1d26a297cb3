package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"govscheme/internal/checkclient"
	"govscheme/internal/controller"
	"govscheme/internal/logger"
	"govscheme/internal/models"
	"govscheme/internal/render"
	"govscheme/internal/report"
	sentryutil "govscheme/internal/sentry"
	"govscheme/internal/share"
)

const (
	busyNotice     = "A check is already in progress. Please wait for it to finish."
	noReportNotice = "Run a scan first to export a report."
)

// Server serves the web surface on top of one shared controller.
type Server struct {
	ctrl *controller.Controller
	now  func() time.Time
}

func NewServer(ctrl *controller.Controller) *Server {
	return &Server{ctrl: ctrl, now: time.Now}
}

// Routes registers every page and API endpoint on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.IndexHandler)
	mux.HandleFunc("/scan", s.ScanHandler)
	mux.HandleFunc("/results", s.ResultsHandler)
	mux.HandleFunc("/share", s.ShareHandler)
	mux.HandleFunc("/report.pdf", s.ReportHandler)
	mux.HandleFunc("/api/health", s.HealthHandler)
}

type filterLink struct {
	Label  string
	Href   string
	Active bool
}

type pageData struct {
	CSS              template.CSS
	IdleText         string
	Notice           string
	Busy             bool
	Form             map[string]string
	Genders          []string
	Education        []string
	HasResults       bool
	Search           string
	Filter           string
	Filters          []filterLink
	EligibleCount    int
	NotEligibleCount int
	Eligible         template.HTML
	NotEligible      template.HTML
}

// viewFor filters the stored results by the q and type parameters of r.
// The shared controller's own search and filter are left untouched, so each
// tab keeps its own view.
func (s *Server) viewFor(r *http.Request) controller.View {
	q := r.URL.Query()
	search, filter := q.Get("q"), q.Get("type")
	if filter == "" {
		filter = models.FilterAll
	}
	set := s.ctrl.Results()
	ne := controller.FilterSchemes(set.NotEligible, search, filter)
	return controller.View{
		Eligible:       controller.FilterSchemes(set.Eligible, search, filter),
		NotEligible:    ne,
		Expanded:       make([]bool, len(ne)),
		Search:         search,
		Filter:         filter,
		ResultsVisible: s.ctrl.HasResults(),
	}
}

func panelsHTML(v controller.View) (template.HTML, template.HTML, error) {
	panels := render.Panels(v)
	eligible, err := render.HTML(panels[0])
	if err != nil {
		return "", "", err
	}
	notEligible, err := render.HTML(panels[1])
	if err != nil {
		return "", "", err
	}
	// nodes are built from text nodes only, so the serialized markup is escaped
	return template.HTML(eligible), template.HTML(notEligible), nil
}

func filterLinks(v controller.View) []filterLink {
	links := make([]filterLink, 0, len(models.FilterTypes))
	for _, f := range models.FilterTypes {
		q := url.Values{"q": {v.Search}, "type": {f}}
		links = append(links, filterLink{Label: f, Href: "/?" + q.Encode(), Active: v.Filter == f})
	}
	return links
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, notice string, form map[string]string) {
	v := s.viewFor(r)
	if form == nil {
		form = map[string]string{}
	}
	data := pageData{
		CSS:              template.CSS(sharedCSS),
		IdleText:         render.IdleText,
		Notice:           notice,
		Busy:             s.ctrl.Busy(),
		Form:             form,
		Genders:          genders,
		Education:        models.EducationLevels,
		HasResults:       v.ResultsVisible,
		Search:           v.Search,
		Filter:           v.Filter,
		Filters:          filterLinks(v),
		EligibleCount:    len(v.Eligible),
		NotEligibleCount: len(v.NotEligible),
	}
	if v.ResultsVisible {
		var err error
		data.Eligible, data.NotEligible, err = panelsHTML(v)
		if err != nil {
			sentryutil.CaptureError(err, map[string]string{"handler": "index", "phase": "render"})
			InternalErrorHandler(w, r)
			return
		}
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		logger.Error("page render failed", map[string]interface{}{"error": err})
		InternalErrorHandler(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundHandler(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderPage(w, r, http.StatusOK, "", nil)
}

func (s *Server) ScanHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := make(map[string]string, len(models.ProfileFields))
	for _, f := range models.ProfileFields {
		form[f] = r.PostForm.Get(f)
	}

	profile, problem, ok := models.ParseProfile(r.PostForm.Get)
	if !ok {
		s.renderPage(w, r, http.StatusBadRequest, problem, form)
		return
	}

	// a started check outlives the browser connection
	err := s.ctrl.Submit(context.WithoutCancel(r.Context()), profile)
	switch {
	case errors.Is(err, controller.ErrBusy):
		sentryutil.CaptureMessage("scan rejected while a check is in flight", sentryutil.LevelWarning(),
			map[string]string{"handler": "scan"})
		s.renderPage(w, r, http.StatusConflict, busyNotice, form)
		return
	case err != nil:
		s.renderPage(w, r, http.StatusBadGateway, checkclient.UserMessage(err), form)
		return
	}
	http.Redirect(w, r, "/#results", http.StatusSeeOther)
}

// ResultsHandler returns both panels as an HTML fragment.
func (s *Server) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	eligible, notEligible, err := panelsHTML(s.viewFor(r))
	if err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "results", "phase": "render"})
		InternalErrorHandler(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(eligible))
	w.Write([]byte(notEligible))
}

// bufferClipboard captures share text so the browser can copy it.
type bufferClipboard struct{ text string }

func (b *bufferClipboard) WriteAll(text string) error {
	b.text = text
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) ShareHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	cb := &bufferClipboard{}
	text, err := s.ctrl.Share(cb)
	if errors.Is(err, share.ErrEmptyShare) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": share.EmptyNotice})
		return
	}
	if err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "share"})
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (s *Server) ReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.ctrl.HasResults() {
		http.Error(w, noReportNotice, http.StatusConflict)
		return
	}

	now := s.now()
	var buf bytes.Buffer
	if err := report.Write(&buf, s.ctrl.Results(), now); err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "report", "phase": "pdf"})
		InternalErrorHandler(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName(now)+`"`)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"phase":       s.ctrl.Phase().String(),
		"has_results": s.ctrl.HasResults(),
	})
}
