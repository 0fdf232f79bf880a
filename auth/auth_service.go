// Package auth talks to the SPEET authentication endpoints and turns a
// successful login into a session identity.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/speet-admin/gateway"
	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/sessions"
	"github.com/rs/zerolog/log"
)

// Authenticator turns an email/password pair into an identity, or nil.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) *sessions.Identity
}

// Service wraps the public /auth endpoints.
type Service struct {
	api       gateway.Requester
	validator *Validator
}

var _ Authenticator = (*Service)(nil)

// NewService takes a public gateway. None of its requests need a session.
func NewService(api gateway.Requester) *Service {
	return &Service{api: api, validator: NewValidator()}
}

func (s *Service) Validator() *Validator {
	return s.validator
}

// Login calls POST /auth/login and checks the returned payload.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	email = strings.TrimSpace(email)
	if err := s.validator.ValidateUserCredentials(email, password); err != nil {
		return LoginResponse{}, err
	}

	var resp LoginResponse
	err := s.api.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   LoginRequest{Email: email, Password: password},
		Public: true,
	}, &resp)
	if err != nil {
		return LoginResponse{}, err
	}
	if resp.UserID == "" || resp.AccessToken == "" {
		return LoginResponse{}, ErrMalformedLogin
	}
	if resp.Email == "" {
		resp.Email = email
	}
	return resp, nil
}

// Authenticate never fails loudly: every failure is reported as a nil identity.
func (s *Service) Authenticate(ctx context.Context, email, password string) *sessions.Identity {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("authenticate panicked")
		}
	}()

	resp, err := s.Login(ctx, email, password)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrValidation) {
			log.Info().Err(err).Msg("login denied")
		}
		return nil
	}
	return &sessions.Identity{
		ID:           resp.UserID,
		Email:        resp.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Role:         resp.Role,
	}
}

// ForgotPassword asks the backend to email a one-time code.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := s.validator.ValidateEmail(email); err != nil {
		return err
	}
	return s.api.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/forgot-password",
		Body:   ForgotPasswordRequest{Email: email},
		Public: true,
	}, nil)
}

// ResetPassword submits the code and new password in one call.
func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if req.OTP == "" {
		return apperrors.NewValidationError("otp", "missing verification code")
	}
	if err := s.validator.ValidateEmail(req.Email); err != nil {
		return err
	}
	if req.Password == "" {
		return apperrors.NewValidationError("password", "password is required")
	}
	return s.api.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/reset-password",
		Body:   req,
		Public: true,
	}, nil)
}
