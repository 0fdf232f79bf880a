// Package keys derives purpose-specific keys from the single SESSION_SECRET.
package keys

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keySize = 32

var salt = []byte("speet-admin")

// Purposes
const (
	SessionCookie = "session-cookie"
	CSRF          = "csrf"
)

type Set struct {
	SessionCookie []byte
	CSRF          []byte
}

// Derive expands secret into one key per purpose with HKDF-SHA256.
func Derive(secret string) (Set, error) {
	if secret == "" {
		return Set{}, errors.New("secret is required")
	}
	cookieKey, err := expand(secret, SessionCookie)
	if err != nil {
		return Set{}, err
	}
	csrfKey, err := expand(secret, CSRF)
	if err != nil {
		return Set{}, err
	}
	return Set{SessionCookie: cookieKey, CSRF: csrfKey}, nil
}

func expand(secret, purpose string) ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), salt, []byte(purpose)), key); err != nil {
		return nil, fmt.Errorf("deriving %s key: %w", purpose, err)
	}
	return key, nil
}
