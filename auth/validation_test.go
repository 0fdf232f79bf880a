package auth_test

import (
	"testing"

	"github.com/jrsteele09/speet-admin/auth"
	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateUserCredentials(t *testing.T) {
	v := auth.NewValidator()

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, v.ValidateUserCredentials("a@b.com", "x"))
	})

	t.Run("missing email", func(t *testing.T) {
		err := v.ValidateUserCredentials("  ", "x")
		require.ErrorIs(t, err, apperrors.ErrValidation)
		require.Contains(t, err.Error(), "email is required")
	})

	t.Run("malformed email", func(t *testing.T) {
		for _, email := range []string{"a", "a@", "@b.com", "a b@c.com", "A <a@b.com>"} {
			err := v.ValidateUserCredentials(email, "x")
			require.ErrorIs(t, err, apperrors.ErrValidation, email)
		}
	})

	t.Run("missing password", func(t *testing.T) {
		err := auth.ValidateCredentials("a@b.com", "")
		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "password", verr.Field)
	})
}

func TestValidator_ValidateNewPassword(t *testing.T) {
	v := auth.NewValidator()

	require.NoError(t, v.ValidateNewPassword("Secret1!", "Secret1!"))

	err := v.ValidateNewPassword("Secret1!", "Other1!")
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Equal(t, "passwords do not match", err.Error())

	require.ErrorIs(t, v.ValidateNewPassword("", ""), apperrors.ErrValidation)
}
