package errors_test

import (
	"fmt"
	"io"
	"testing"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := apperrors.NewValidationError("otp", "incomplete code")

	require.True(t, apperrors.Is(err, apperrors.ErrValidation))
	require.False(t, apperrors.Is(err, apperrors.ErrRequestFailed))
	require.Equal(t, "incomplete code", err.Error())

	wrapped := apperrors.Wrapf(err, "verify step")
	require.True(t, apperrors.Is(wrapped, apperrors.ErrValidation))
	require.Equal(t, "incomplete code", apperrors.UserMessage(wrapped))
}

func TestRequestError(t *testing.T) {
	t.Run("backend message kept", func(t *testing.T) {
		err := apperrors.NewRequestError(400, "Invalid OTP", nil)
		require.True(t, apperrors.Is(err, apperrors.ErrRequestFailed))
		require.Equal(t, "Invalid OTP", apperrors.UserMessage(err))
		require.Contains(t, err.Error(), "400")
	})

	t.Run("generic fallback", func(t *testing.T) {
		err := apperrors.NewRequestError(500, "", nil)
		require.Equal(t, apperrors.GenericFailureMessage, err.Message)
	})

	t.Run("transport cause unwraps", func(t *testing.T) {
		err := apperrors.NewRequestError(0, "", io.ErrUnexpectedEOF)
		require.True(t, apperrors.Is(err, io.ErrUnexpectedEOF))
		require.True(t, apperrors.Is(err, apperrors.ErrRequestFailed))
	})
}

func TestUserMessage(t *testing.T) {
	require.Equal(t, "", apperrors.UserMessage(nil))
	require.Equal(t, "Session expired. Please log in again.", apperrors.UserMessage(fmt.Errorf("x: %w", apperrors.ErrUnauthorized)))
	require.Equal(t, "Request already in progress", apperrors.UserMessage(apperrors.ErrInProgress))
	require.Equal(t, apperrors.GenericFailureMessage, apperrors.UserMessage(io.EOF))
}

func TestWrapfNil(t *testing.T) {
	require.NoError(t, apperrors.Wrapf(nil, "nothing"))
}
