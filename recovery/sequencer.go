// Package recovery sequences the three password-recovery stages. State moves
// between stages only in URL query parameters; nothing is stored server-side.
package recovery

import (
	"context"
	"net/url"
	"strings"

	"github.com/jrsteele09/speet-admin/auth"
	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/rs/zerolog/log"
)

// Query parameters carrying the recovery context
const (
	ParamEmail = "email"
	ParamOTP   = "otp"
)

// Context is the recovery state carried from page to page.
type Context struct {
	Email string
	OTP   string
}

// FromQuery reads a Context from a request's query string.
func FromQuery(q url.Values) Context {
	return Context{
		Email: strings.TrimSpace(q.Get(ParamEmail)),
		OTP:   strings.TrimSpace(q.Get(ParamOTP)),
	}
}

func (c Context) Query() url.Values {
	q := url.Values{}
	if c.Email != "" {
		q.Set(ParamEmail, c.Email)
	}
	if c.OTP != "" {
		q.Set(ParamOTP, c.OTP)
	}
	return q
}

// Routes are the pages the sequencer navigates between.
type Routes struct {
	RequestCode string
	VerifyCode  string
	SetPassword string
	Login       string
}

func DefaultRoutes() Routes {
	return Routes{
		RequestCode: "/auth/forgot-password",
		VerifyCode:  "/auth/verify-otp",
		SetPassword: "/auth/reset-password",
		Login:       "/auth/login",
	}
}

// API is the part of the auth service the sequencer calls.
type API interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error
}

// Sequencer defers code verification to the final stage: the code is only
// checked by the backend together with the new password.
type Sequencer struct {
	api       API
	routes    Routes
	validator *auth.Validator
}

func NewSequencer(api API, routes Routes) *Sequencer {
	return &Sequencer{api: api, routes: routes, validator: auth.NewValidator()}
}

func (s *Sequencer) Routes() Routes {
	return s.routes
}

// RequestCode asks the backend to email a code and returns the verify page URL.
func (s *Sequencer) RequestCode(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := s.api.ForgotPassword(ctx, email); err != nil {
		if !apperrors.Is(err, apperrors.ErrValidation) {
			log.Info().Err(err).Msg("recovery code request failed")
		}
		return "", err
	}
	return s.url(s.routes.VerifyCode, Context{Email: email}), nil
}

// Resend repeats the code request. It does not touch digits already entered.
func (s *Sequencer) Resend(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.NewValidationError("email", "missing email")
	}
	return s.api.ForgotPassword(ctx, email)
}

// VerifyCode checks the code is complete and returns the set-password page URL.
func (s *Sequencer) VerifyCode(_ context.Context, email string, code Code) (string, error) {
	if !code.Complete() {
		return "", apperrors.NewValidationError("otp", "incomplete code")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "", apperrors.NewValidationError("email", "missing email")
	}
	return s.url(s.routes.SetPassword, Context{Email: email, OTP: code.String()}), nil
}

// SetPassword submits the new password with the carried code and returns the login URL.
func (s *Sequencer) SetPassword(ctx context.Context, rc Context, password, confirm string) (string, error) {
	if password != confirm {
		return "", apperrors.NewValidationError("confirmPassword", "passwords do not match")
	}
	if rc.OTP == "" {
		return "", apperrors.NewValidationError("otp", "missing verification code")
	}
	if strings.TrimSpace(rc.Email) == "" {
		return "", apperrors.NewValidationError("email", "missing email")
	}
	if err := s.validator.ValidateNewPassword(password, confirm); err != nil {
		return "", err
	}

	err := s.api.ResetPassword(ctx, auth.ResetPasswordRequest{
		Email:    strings.TrimSpace(rc.Email),
		Password: password,
		OTP:      rc.OTP,
	})
	if err != nil {
		log.Info().Err(err).Msg("password reset failed")
		return "", err
	}
	return s.routes.Login, nil
}

func (s *Sequencer) url(path string, rc Context) string {
	if q := rc.Query(); len(q) > 0 {
		return path + "?" + q.Encode()
	}
	return path
}
