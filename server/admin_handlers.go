package server

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/jrsteele09/speet-admin/badges"
	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/internal/inflight"
	"github.com/jrsteele09/speet-admin/internal/pagination"
	"github.com/jrsteele09/speet-admin/interests"
	"github.com/jrsteele09/speet-admin/reports"
	"github.com/jrsteele09/speet-admin/users"
	"github.com/rs/zerolog/log"
)

// AdminPageData is the model of the admin layout
type AdminPageData struct {
	AppName    string
	PageTitle  string
	ActivePage string
	UserEmail  string
	Role       string
	CSRFToken  string
	Error      string
	Success    string
	Content    template.HTML
}

// ContentData is handed to every admin content template
type ContentData struct {
	CSRFToken string
	Self      string // current page, without notifications
	Data      any
}

// renderAdminPage renders a content template inside the admin layout. A loadErr is shown as
// an error notice; an Unauthorized one sends the browser to the login page.
func (s *Server) renderAdminPage(w http.ResponseWriter, r *http.Request, a adminRequest, activePage, pageTitle, contentTemplate string, data any, loadErr error) {
	if loadErr != nil && apperrors.Is(loadErr, apperrors.ErrUnauthorized) {
		redirectWithError(w, r, RouteAuthLogin, apperrors.UserMessage(loadErr))
		return
	}

	token := s.csrfToken(a.session)
	contentTmpl, ok := s.templates[contentTemplate]
	if !ok {
		http.Error(w, "Failed to load content template", http.StatusInternalServerError)
		return
	}
	var contentBuf bytes.Buffer
	if err := contentTmpl.Execute(&contentBuf, ContentData{CSRFToken: token, Self: selfURL(r), Data: data}); err != nil {
		log.Err(err).Str("template", contentTemplate).Msg("Failed to render content")
		http.Error(w, "Failed to render content", http.StatusInternalServerError)
		return
	}

	errorMsg, successMsg := notices(r)
	status := http.StatusOK
	if loadErr != nil {
		log.Info().Err(loadErr).Str("path", r.URL.Path).Msg("failed to load page data")
		errorMsg = apperrors.UserMessage(loadErr)
		status = http.StatusBadGateway
	}

	s.renderPage(w, status, layoutTemplate, AdminPageData{
		AppName:    s.config.GetAppName(),
		PageTitle:  pageTitle,
		ActivePage: activePage,
		UserEmail:  a.session.Email,
		Role:       a.session.Role,
		CSRFToken:  token,
		Error:      errorMsg,
		Success:    successMsg,
		Content:    template.HTML(contentBuf.String()),
	})
}

// adminPage wraps a GET handler that needs the signed-in context
func (s *Server) adminPage(page func(w http.ResponseWriter, r *http.Request, a adminRequest)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := s.admin(r)
		if !ok {
			redirectWithError(w, r, RouteAuthLogin, "Please log in to continue")
			return
		}
		page(w, r, a)
	}
}

// adminAction runs a form submission under the submission guard, then goes back to the
// page it came from with a notice. fn returns the success message.
func (s *Server) adminAction(fallback string, fn func(ctx context.Context, r *http.Request, a adminRequest) (string, error)) http.HandlerFunc {
	return s.adminPage(func(w http.ResponseWriter, r *http.Request, a adminRequest) {
		back := returnPath(r, fallback)
		var msg string
		err := s.guard.Run(inflight.Key(a.session.ID, r.Method+" "+r.URL.Path), func() error {
			var err error
			msg, err = fn(r.Context(), r, a)
			return err
		})
		if err != nil {
			redirectFailure(w, r, back, err)
			return
		}
		redirectWithSuccess(w, r, back, msg)
	})
}

func (s *Server) pageParams(r *http.Request) pagination.Params {
	return pagination.FromQuery(r.URL.Query(), s.config.GetPageSize())
}

// IndexHandler sends the browser to the dashboard
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, RouteAdminDashboard, http.StatusSeeOther)
	}
}

// HealthzHandler reports liveness
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// DashboardStats are the totals on the dashboard, read from each list's pagination
type DashboardStats struct {
	TotalUsers      int
	TotalBadges     int
	TotalCategories int
	TotalReports    int
}

// AdminDashboardHandler renders the admin dashboard
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	return s.adminPage(func(w http.ResponseWriter, r *http.Request, a adminRequest) {
		ctx := r.Context()
		p := pagination.NewParams(1, s.config.GetPageSize())
		var stats DashboardStats
		totals := []struct {
			into *int
			load func() (pagination.Info, error)
		}{
			{&stats.TotalUsers, func() (pagination.Info, error) {
				page, err := users.NewService(a.api, a.cache).List(ctx, p)
				return page.Pagination, err
			}},
			{&stats.TotalBadges, func() (pagination.Info, error) {
				page, err := badges.NewService(a.api, a.cache).List(ctx, p)
				return page.Pagination, err
			}},
			{&stats.TotalCategories, func() (pagination.Info, error) {
				page, err := interests.NewService(a.api, a.cache).ListCategories(ctx, p)
				return page.Pagination, err
			}},
			{&stats.TotalReports, func() (pagination.Info, error) {
				page, err := reports.NewService(a.api, a.cache).List(ctx, p)
				return page.Pagination, err
			}},
		}

		var loadErr error
		for _, t := range totals {
			info, err := t.load()
			if err != nil {
				loadErr = err
				break
			}
			*t.into = info.Total
		}
		s.renderAdminPage(w, r, a, "dashboard", "Dashboard", "admin_dashboard_content.html", stats, loadErr)
	})
}

func selfURL(r *http.Request) string {
	q := r.URL.Query()
	q.Del(paramError)
	q.Del(paramSuccess)
	return withQuery(r.URL.Path, q)
}
