package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/speet-admin/internal/inflight"
	"github.com/rs/zerolog/log"
)

const invalidLoginMessage = "Invalid email or password"

// AuthPageData contains data for rendering the login and recovery pages
type AuthPageData struct {
	AppName string
	Error   string
	Success string
	Email   string // Preserve email on error
	OTP     string
	Digits  []string // One entry per code position
	Routes  map[string]string
}

func (s *Server) authPageData(r *http.Request) AuthPageData {
	errorMsg, successMsg := notices(r)
	return AuthPageData{
		AppName: s.config.GetAppName(),
		Error:   errorMsg,
		Success: successMsg,
		Email:   strings.TrimSpace(r.URL.Query().Get("email")),
		Routes: map[string]string{
			"Login":          RouteAuthLogin,
			"ForgotPassword": RouteForgotPassword,
			"VerifyOTP":      RouteVerifyOTP,
			"ResendOTP":      RouteResendOTP,
			"ResetPassword":  RouteResetPassword,
		},
	}
}

// LoginPageUIHandler displays the login page (GET /auth/login)
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.sessions.Handle(w, r).Current(r.Context()); ok {
			redirectSuccess(w, r, RouteAdminDashboard)
			return
		}
		s.renderPage(w, http.StatusOK, "login.html", s.authPageData(r))
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		back := withParam(RouteAuthLogin, "email", email)

		if err := s.auth.Validator().ValidateUserCredentials(email, password); err != nil {
			redirectFailure(w, r, back, err)
			return
		}

		handle := s.sessions.Handle(w, r)
		denied := false
		err := s.guard.Run(inflight.Key(strings.ToLower(email), "login"), func() error {
			identity := s.auth.Authenticate(r.Context(), email, password)
			if identity == nil {
				denied = true
				return nil
			}
			_, err := handle.Establish(r.Context(), *identity)
			return err
		})
		switch {
		case err != nil:
			redirectFailure(w, r, back, err)
		case denied:
			redirectWithError(w, r, back, invalidLoginMessage)
		default:
			redirectSuccess(w, r, RouteAdminDashboard)
		}
	}
}

// LogoutHandler ends the session and returns to the login page
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.sessions.Handle(w, r).Clear(r.Context()); err != nil {
			log.Err(err).Msg("Logout: failed to delete session")
		}
		redirectWithSuccess(w, r, RouteAuthLogin, "You have been signed out")
	}
}
