package server

import (
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/rs/zerolog/log"
)

// Notification query parameters
const (
	paramError   = "error"
	paramSuccess = "success"
)

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	redirectSuccess(w, r, withParam(path, paramError, errorMsg))
}

// redirectWithSuccess carries a success notification to the next page
func redirectWithSuccess(w http.ResponseWriter, r *http.Request, path, msg string) {
	redirectSuccess(w, r, withParam(path, paramSuccess, msg))
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func withParam(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + key + "=" + url.QueryEscape(value)
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// redirectFailure reports err on the page at back. An Unauthorized error means the
// session is already gone, so the browser goes to the login page instead.
func redirectFailure(w http.ResponseWriter, r *http.Request, back string, err error) {
	if apperrors.Is(err, apperrors.ErrUnauthorized) {
		redirectWithError(w, r, RouteAuthLogin, apperrors.UserMessage(err))
		return
	}
	if !apperrors.Is(err, apperrors.ErrValidation) {
		log.Info().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	redirectWithError(w, r, back, apperrors.UserMessage(err))
}

// returnPath picks the page to go back to after a form post. Only admin pages are allowed.
func returnPath(r *http.Request, fallback string) string {
	p := r.FormValue("return_to")
	if !strings.HasPrefix(p, adminPrefix) || strings.Contains(p, "//") || strings.Contains(p, "\\") {
		return fallback
	}
	return p
}

// notices reads the notification parameters of the current page
func notices(r *http.Request) (errorMsg, successMsg string) {
	q := r.URL.Query()
	return q.Get(paramError), q.Get(paramSuccess)
}
