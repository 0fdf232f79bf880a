package errors

import (
	"errors"
	"fmt"
)

// Error classes surfaced to dashboard screens
var (
	// ErrValidation marks client-side input checks. It never reaches the network.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized marks a missing session or a 401 from the SPEET API.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRequestFailed marks any other non-success backend response or transport fault.
	ErrRequestFailed = errors.New("request failed")

	// ErrInProgress is returned when the same action is already being submitted.
	ErrInProgress = errors.New("request already in progress")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidCookie   = errors.New("invalid session cookie")

	// General errors
	ErrNotFound = errors.New("not found")
)

// GenericFailureMessage is shown when the backend gives no message of its own.
const GenericFailureMessage = "Something went wrong. Please try again."

// ValidationError is a failed local input check.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RequestError is a failed call to the SPEET API.
type RequestError struct {
	StatusCode int    // 0 for transport failures
	Message    string // backend message, or GenericFailureMessage
	Err        error  // underlying cause, if any
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError builds a RequestError, falling back to the generic message.
func NewRequestError(statusCode int, message string, cause error) *RequestError {
	if message == "" {
		message = GenericFailureMessage
	}
	return &RequestError{StatusCode: statusCode, Message: message, Err: cause}
}

// UserMessage returns the text to show in a notification for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr.Message
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "Session expired. Please log in again."
	case errors.Is(err, ErrInProgress):
		return "Request already in progress"
	}
	return GenericFailureMessage
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
