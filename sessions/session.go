package sessions

import (
	"time"

	"golang.org/x/oauth2"
)

// Identity is what a successful login yields.
type Identity struct {
	ID           string
	Email        string
	AccessToken  string
	RefreshToken string
	Role         string
}

// Session is the server-side record behind the session cookie.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`

	// Tokens issued by the SPEET API. The refresh token is kept but never exchanged.
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Token returns the bearer credential for outbound calls.
func (s Session) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: s.RefreshToken,
	}
}

// State of a browser's session.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}
