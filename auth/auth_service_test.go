package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/speet-admin/auth"
	"github.com/jrsteele09/speet-admin/gateway"
	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/internal/speetfake"
	"github.com/stretchr/testify/require"
)

const (
	testUserID    = "user-1"
	testUserEmail = "admin@speet.app"
	testPassword  = "Secret1!"
)

func newService(t *testing.T) (*auth.Service, *speetfake.Backend) {
	t.Helper()
	backend := speetfake.Start(t)
	backend.AddAccount(testUserID, testUserEmail, testPassword, "admin")
	return auth.NewService(gateway.New(backend.URL(), backend.Client()).Public()), backend
}

func TestAuthenticate_Success(t *testing.T) {
	service, backend := newService(t)

	identity := service.Authenticate(context.Background(), testUserEmail, testPassword)
	require.NotNil(t, identity)
	require.Equal(t, testUserID, identity.ID)
	require.Equal(t, testUserEmail, identity.Email)
	require.Equal(t, "admin", identity.Role)
	require.NotEmpty(t, identity.AccessToken)
	require.Equal(t, "refresh-user-1", identity.RefreshToken)
	require.Equal(t, 1, backend.Count(http.MethodPost, "/auth/login"))
}

func TestAuthenticate_Denied(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		network  bool
	}{
		{name: "wrong password", email: testUserEmail, password: "nope", network: true},
		{name: "unknown user", email: "who@speet.app", password: testPassword, network: true},
		{name: "empty email", email: "", password: testPassword},
		{name: "invalid email", email: "not-an-email", password: testPassword},
		{name: "display name form", email: "Admin <admin@speet.app>", password: testPassword},
		{name: "empty password", email: testUserEmail, password: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, backend := newService(t)
			require.Nil(t, service.Authenticate(context.Background(), tt.email, tt.password))

			calls := backend.Count(http.MethodPost, "/auth/login")
			if tt.network {
				require.Equal(t, 1, calls)
			} else {
				require.Zero(t, calls, "invalid input never reaches the network")
			}
		})
	}
}

func TestAuthenticate_BackendFailures(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		service, backend := newService(t)
		backend.FailNext(http.MethodPost, "/auth/login", http.StatusInternalServerError, "boom")
		require.Nil(t, service.Authenticate(context.Background(), testUserEmail, testPassword))
	})

	t.Run("network error", func(t *testing.T) {
		service := auth.NewService(gateway.New("http://127.0.0.1:1", nil).Public())
		require.Nil(t, service.Authenticate(context.Background(), testUserEmail, testPassword))
	})

	t.Run("malformed payload", func(t *testing.T) {
		service := auth.NewService(requesterFunc(func(ctx context.Context, req gateway.Request, out any) error {
			out.(*auth.LoginResponse).Email = testUserEmail
			return nil
		}))
		require.Nil(t, service.Authenticate(context.Background(), testUserEmail, testPassword))

		_, err := service.Login(context.Background(), testUserEmail, testPassword)
		require.ErrorIs(t, err, auth.ErrMalformedLogin)
	})

	t.Run("panicking transport", func(t *testing.T) {
		service := auth.NewService(requesterFunc(func(context.Context, gateway.Request, any) error {
			panic("transport exploded")
		}))
		require.NotPanics(t, func() {
			require.Nil(t, service.Authenticate(context.Background(), testUserEmail, testPassword))
		})
	})
}

func TestForgotPassword(t *testing.T) {
	service, backend := newService(t)

	require.NoError(t, service.ForgotPassword(context.Background(), testUserEmail))
	require.Equal(t, 1, backend.Count(http.MethodPost, "/auth/forgot-password"))

	err := service.ForgotPassword(context.Background(), "nobody@speet.app")
	require.ErrorIs(t, err, apperrors.ErrRequestFailed)
	require.Equal(t, "User not found", apperrors.UserMessage(err))

	err = service.ForgotPassword(context.Background(), "bad")
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Equal(t, 2, backend.Count(http.MethodPost, "/auth/forgot-password"))
}

func TestResetPassword(t *testing.T) {
	service, backend := newService(t)
	ctx := context.Background()
	require.NoError(t, service.ForgotPassword(ctx, testUserEmail))

	err := service.ResetPassword(ctx, auth.ResetPasswordRequest{Email: testUserEmail, Password: "New1!", OTP: "000000"})
	require.ErrorIs(t, err, apperrors.ErrRequestFailed)
	require.Equal(t, "Invalid or expired OTP", apperrors.UserMessage(err))

	err = service.ResetPassword(ctx, auth.ResetPasswordRequest{Email: testUserEmail, Password: "New1!"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Equal(t, "missing verification code", apperrors.UserMessage(err))

	require.NoError(t, service.ResetPassword(ctx, auth.ResetPasswordRequest{Email: testUserEmail, Password: "New1!", OTP: speetfake.DefaultOTP}))
	require.Equal(t, "New1!", backend.Password(testUserEmail))
	require.NotNil(t, service.Authenticate(ctx, testUserEmail, "New1!"))
}

type requesterFunc func(ctx context.Context, req gateway.Request, out any) error

func (f requesterFunc) Do(ctx context.Context, req gateway.Request, out any) error {
	return f(ctx, req, out)
}
