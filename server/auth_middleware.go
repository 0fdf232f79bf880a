package server

import (
	"net/http"

	"github.com/jrsteele09/speet-admin/gateway"
	"github.com/jrsteele09/speet-admin/internal/csrf"
	"github.com/jrsteele09/speet-admin/internal/listcache"
	"github.com/jrsteele09/speet-admin/sessions"
	"github.com/rs/zerolog/log"
)

// RequireSession is middleware for the admin pages. Anonymous browsers are sent to the
// login page; otherwise the request's session handle is put in the context.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := s.sessions.Handle(w, r)
		if _, ok := handle.Current(r.Context()); !ok {
			redirectWithError(w, r, RouteAuthLogin, "Please log in to continue")
			return
		}
		next(w, r.WithContext(sessions.NewContext(r.Context(), handle)))
	}
}

// RequireCSRF rejects unsafe requests whose token does not belong to the current session.
// It must run after RequireSession.
func (s *Server) RequireCSRF(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next(w, r)
			return
		}
		session, ok := s.currentSession(r)
		if !ok {
			redirectWithError(w, r, RouteAuthLogin, "Please log in to continue")
			return
		}
		token := r.Header.Get(csrf.HeaderName)
		if token == "" {
			token = r.FormValue(csrf.FieldName)
		}
		if !csrf.Validate(token, session.ID, s.keys.CSRF) {
			log.Warn().Str("path", r.URL.Path).Msg("rejected request with a bad CSRF token")
			http.Error(w, "403 - Forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// adminRequest is everything an admin handler needs for one request.
type adminRequest struct {
	handle  *sessions.Handle
	session sessions.Session
	api     *gateway.Gateway
	cache   *listcache.Scoped // list pages cached for this admin only
}

// admin returns the signed-in context placed by RequireSession.
func (s *Server) admin(r *http.Request) (adminRequest, bool) {
	handle, ok := sessions.FromContext(r.Context())
	if !ok {
		return adminRequest{}, false
	}
	session, ok := handle.Current(r.Context())
	if !ok {
		return adminRequest{}, false
	}
	return adminRequest{
		handle:  handle,
		session: session,
		api:     s.api.For(handle),
		cache:   s.cache.Scoped(session.UserID),
	}, true
}

func (s *Server) currentSession(r *http.Request) (sessions.Session, bool) {
	handle, ok := sessions.FromContext(r.Context())
	if !ok {
		return sessions.Session{}, false
	}
	return handle.Current(r.Context())
}

func (s *Server) csrfToken(session sessions.Session) string {
	return csrf.NewToken(session.ID, s.keys.CSRF)
}
