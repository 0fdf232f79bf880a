package server

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/speet-admin/internal/pagination"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"

	partialsTemplate = "partials.html"
	layoutTemplate   = "admin_layout.html"
)

// Standalone pages and admin content templates. Each is parsed with the shared partials.
var templateNames = []string{
	"login.html",
	"forgot_password.html",
	"verify_otp.html",
	"reset_password.html",
	layoutTemplate,
	"admin_dashboard_content.html",
	"admin_users_content.html",
	"admin_user_content.html",
	"admin_badges_content.html",
	"admin_categories_content.html",
	"admin_interests_content.html",
	"admin_reports_content.html",
	"admin_report_content.html",
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"pageURL": pageURL,
	"date":    formatDate,
	"join":    strings.Join,
	"add":     func(a, b int) int { return a + b },
	"pager":   pager,
}

// ParseTemplate parses a template and the shared partials from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(name).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), name, partialsTemplate)
}

func loadTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(templateNames))
	for _, name := range templateNames {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, err
		}
		templates[name] = tmpl
	}
	return templates, nil
}

// renderPage executes a template into a buffer first so a failing template never sends
// half a page
func (s *Server) renderPage(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := s.templates[name]
	if !ok {
		logError("GET", name, "unknown template")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func pageURL(self string, page int) string {
	u, err := url.Parse(self)
	if err != nil {
		return self
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// pager bundles what the pagination partial needs
func pager(self string, info pagination.Info) map[string]any {
	return map[string]any{"Self": self, "Info": info}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}
