package handlers

import (
	"html/template"
	"net/http"
	"strings"
)

// NotFoundHandler serves a styled 404 page or JSON error for API routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "endpoint not found"})
		return
	}
	writeErrorPage(w, http.StatusNotFound, "Page not found", "The page you are looking for does not exist.")
}

// InternalErrorHandler serves a styled 500 page or JSON error for API routes.
func InternalErrorHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeErrorPage(w, http.StatusInternalServerError, "Server error", "Something went wrong. Please try again in a moment.")
}

var errorTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} · GovScheme India</title>
<meta name="robots" content="noindex">
<style>{{.CSS}}
.error-wrap{text-align:center;padding:80px 24px}
.error-code{font-size:6rem;color:var(--red);line-height:1}
.error-wrap p{color:var(--ink-50);margin:12px 0 24px}
</style>
</head>
<body>
<div class="topbar">GovScheme India</div>
<main class="error-wrap">
<div class="error-code">{{.Code}}</div>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
<a href="/" class="btn">Back to home</a>
</main>
</body>
</html>`))

func writeErrorPage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	errorTmpl.Execute(w, map[string]interface{}{
		"CSS":     template.CSS(sharedCSS),
		"Code":    status,
		"Title":   title,
		"Message": message,
	})
}
