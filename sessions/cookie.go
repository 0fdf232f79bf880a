package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
)

// CookieClaims is the payload of the session cookie. Tokens never leave the server.
type CookieClaims struct {
	SessionID string `json:"sid"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// CookieCodec signs and verifies session cookies as HS256 JWTs.
type CookieCodec struct {
	key []byte
	now func() time.Time
}

func NewCookieCodec(key []byte) *CookieCodec {
	return &CookieCodec{key: key, now: time.Now}
}

func (c *CookieCodec) Encode(session Session) (string, error) {
	claims := CookieClaims{
		SessionID: session.ID,
		Role:      session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("signing session cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of a cookie value.
func (c *CookieCodec) Decode(value string) (CookieClaims, error) {
	var claims CookieClaims
	_, err := jwt.ParseWithClaims(value, &claims, func(*jwt.Token) (any, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return CookieClaims{}, apperrors.ErrSessionExpired
	case err != nil:
		return CookieClaims{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidCookie, err)
	case claims.SessionID == "" || claims.Subject == "":
		return CookieClaims{}, apperrors.ErrInvalidCookie
	}
	return claims, nil
}
