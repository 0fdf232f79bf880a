package server

import (
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/internal/inflight"
	"github.com/jrsteele09/speet-admin/recovery"
)

const digitField = "digit"

// ForgotPasswordGetHandler renders recovery stage 1
func (s *Server) ForgotPasswordGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, http.StatusOK, "forgot_password.html", s.authPageData(r))
	}
}

// ForgotPasswordPostHandler asks the backend to email a code and moves to stage 2
func (s *Server) ForgotPasswordPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.FormValue("email"))
		back := withQuery(RouteForgotPassword, recovery.Context{Email: email}.Query())

		var next string
		err := s.guard.Run(inflight.Key(strings.ToLower(email), "forgot-password"), func() error {
			var err error
			next, err = s.recovery.RequestCode(r.Context(), email)
			return err
		})
		if err != nil {
			redirectFailure(w, r, back, err)
			return
		}
		redirectWithSuccess(w, r, next, "A verification code has been sent to your email")
	}
}

// VerifyOTPGetHandler renders recovery stage 2
func (s *Server) VerifyOTPGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := recovery.FromQuery(r.URL.Query())
		if rc.Email == "" {
			redirectWithError(w, r, RouteForgotPassword, "Enter your email to receive a code")
			return
		}
		data := s.authPageData(r)
		data.Digits = make([]string, recovery.CodeLength)
		s.renderPage(w, http.StatusOK, "verify_otp.html", data)
	}
}

// VerifyOTPPostHandler checks the six digits and forwards email and code to stage 3
func (s *Server) VerifyOTPPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.FormValue("email"))
		back := withQuery(RouteVerifyOTP, recovery.Context{Email: email}.Query())

		code, err := readCode(r)
		if err == nil {
			var next string
			next, err = s.recovery.VerifyCode(r.Context(), email, code)
			if err == nil {
				redirectSuccess(w, r, next)
				return
			}
		}
		redirectFailure(w, r, back, err)
	}
}

// ResendOTPHandler requests a fresh code and re-renders stage 2 with the digits kept
func (s *Server) ResendOTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.FormValue("email"))
		if email == "" {
			redirectWithError(w, r, RouteForgotPassword, "Enter your email to receive a code")
			return
		}

		data := s.authPageData(r)
		data.Email = email
		data.Digits = enteredDigits(r)

		err := s.guard.Run(inflight.Key(strings.ToLower(email), "resend-otp"), func() error {
			return s.recovery.Resend(r.Context(), email)
		})
		status := http.StatusOK
		if err != nil {
			data.Error = apperrors.UserMessage(err)
			status = http.StatusUnprocessableEntity
		} else {
			data.Success = "A new code has been sent to your email"
		}
		s.renderPage(w, status, "verify_otp.html", data)
	}
}

// ResetPasswordGetHandler renders recovery stage 3
func (s *Server) ResetPasswordGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := recovery.FromQuery(r.URL.Query())
		if rc.Email == "" {
			redirectWithError(w, r, RouteForgotPassword, "Enter your email to receive a code")
			return
		}
		data := s.authPageData(r)
		data.OTP = rc.OTP
		s.renderPage(w, http.StatusOK, "reset_password.html", data)
	}
}

// ResetPasswordPostHandler submits the new password together with the carried code
func (s *Server) ResetPasswordPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := recovery.Context{
			Email: strings.TrimSpace(r.FormValue(recovery.ParamEmail)),
			OTP:   strings.TrimSpace(r.FormValue(recovery.ParamOTP)),
		}
		back := withQuery(RouteResetPassword, rc.Query())

		var next string
		err := s.guard.Run(inflight.Key(strings.ToLower(rc.Email), "reset-password"), func() error {
			var err error
			next, err = s.recovery.SetPassword(r.Context(), rc, r.FormValue("password"), r.FormValue("confirmPassword"))
			return err
		})
		if err != nil {
			redirectFailure(w, r, back, err)
			return
		}
		redirectWithSuccess(w, r, next, "Your password has been reset. Please log in.")
	}
}

// readCode takes either the six digit fields or a pasted otp value
func readCode(r *http.Request) (recovery.Code, error) {
	if digits := r.Form[digitField]; len(digits) > 0 {
		return recovery.ParseCode(digits)
	}
	return recovery.ParseCodeString(r.FormValue(recovery.ParamOTP))
}

func enteredDigits(r *http.Request) []string {
	var code recovery.Code
	for i, d := range r.Form[digitField] {
		code.Input(i, strings.TrimSpace(d))
	}
	return code[:]
}
