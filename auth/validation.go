package auth

import (
	"net/mail"
	"strings"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
)

// Validator holds the local input checks run before anything is sent to the API.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateEmail checks that email is present and is a bare address.
func (v *Validator) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.NewValidationError("email", "email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return apperrors.NewValidationError("email", "invalid email format")
	}
	return nil
}

// ValidateUserCredentials validates login credentials
func (v *Validator) ValidateUserCredentials(email, password string) error {
	if err := v.ValidateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return apperrors.NewValidationError("password", "password is required")
	}
	return nil
}

// ValidateNewPassword checks a new password against its confirmation.
func (v *Validator) ValidateNewPassword(password, confirm string) error {
	if password != confirm {
		return apperrors.NewValidationError("confirmPassword", "passwords do not match")
	}
	if password == "" {
		return apperrors.NewValidationError("password", "password is required")
	}
	return nil
}

// ValidateCredentials runs the login form checks.
func ValidateCredentials(email, password string) error {
	return NewValidator().ValidateUserCredentials(email, password)
}
