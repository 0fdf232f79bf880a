package auth

import "errors"

// ErrMalformedLogin means the login response lacked a user ID or access token
var ErrMalformedLogin = errors.New("malformed login response")
