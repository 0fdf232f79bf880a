package sessions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/rs/zerolog/log"
)

// DefaultCookieName is the name of the admin session cookie
const DefaultCookieName = "speet_admin_session"

// CookieOptions is the template for the session cookie.
type CookieOptions struct {
	Name   string
	Path   string
	Secure bool
	MaxAge time.Duration
}

// Manager hands out one Handle per browser request.
type Manager struct {
	repo   Repo
	codec  *CookieCodec
	cookie CookieOptions
	now    func() time.Time
	newID  func() string
}

func NewManager(repo Repo, codec *CookieCodec, cookie CookieOptions) *Manager {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return &Manager{
		repo:   repo,
		codec:  codec,
		cookie: cookie,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (m *Manager) Handle(w http.ResponseWriter, r *http.Request) *Handle {
	return &Handle{m: m, w: w, r: r}
}

func (m *Manager) CookieName() string {
	return m.cookie.Name
}

// Handle is the session context of a single request. It is not safe for concurrent use.
type Handle struct {
	m *Manager
	w http.ResponseWriter
	r *http.Request

	loaded  bool
	session *Session

	cookieWritten bool
	cookieExpired bool
}

// Establish stores a new session for identity and writes its cookie.
// Any session the browser already carried is discarded first.
func (h *Handle) Establish(ctx context.Context, identity Identity) (Session, error) {
	if identity.ID == "" || identity.AccessToken == "" {
		return Session{}, fmt.Errorf("identity requires a user ID and access token")
	}
	if err := h.discard(ctx); err != nil {
		return Session{}, err
	}

	now := h.m.now()
	session := Session{
		ID:           h.m.newID(),
		UserID:       identity.ID,
		Email:        identity.Email,
		Role:         identity.Role,
		AccessToken:  identity.AccessToken,
		RefreshToken: identity.RefreshToken,
		CreatedAt:    now,
		ExpiresAt:    now.Add(h.m.cookie.MaxAge),
	}
	if err := h.m.repo.Upsert(ctx, session); err != nil {
		return Session{}, apperrors.Wrapf(err, "storing session")
	}

	value, err := h.m.codec.Encode(session)
	if err != nil {
		_ = h.m.repo.Delete(ctx, session.ID)
		return Session{}, err
	}
	http.SetCookie(h.w, h.newCookie(value, int(h.m.cookie.MaxAge.Seconds())))

	h.session = &session
	h.cookieWritten = true
	h.cookieExpired = false
	log.Info().Str("sessionId", session.ID).Str("userId", session.UserID).Msg("session established")
	return session, nil
}

// Current returns the session for this request, if there is a valid one.
func (h *Handle) Current(ctx context.Context) (Session, bool) {
	if !h.loaded {
		h.loaded = true
		h.session = h.load(ctx)
	}
	if h.session == nil {
		return Session{}, false
	}
	if h.session.Expired(h.m.now()) {
		h.session = nil
		return Session{}, false
	}
	return *h.session, true
}

func (h *Handle) load(ctx context.Context) *Session {
	claims, ok := h.claims()
	if !ok {
		return nil
	}
	session, err := h.m.repo.Get(ctx, claims.SessionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSessionNotFound) && !errors.Is(err, apperrors.ErrSessionExpired) {
			log.Err(err).Str("sessionId", claims.SessionID).Msg("loading session")
		}
		return nil
	}
	if session.UserID != claims.Subject || session.ID != claims.SessionID {
		log.Warn().Str("sessionId", claims.SessionID).Msg("session cookie subject mismatch")
		return nil
	}
	return &session
}

func (h *Handle) claims() (CookieClaims, bool) {
	cookie, err := h.r.Cookie(h.m.cookie.Name)
	if err != nil || cookie.Value == "" {
		return CookieClaims{}, false
	}
	claims, err := h.m.codec.Decode(cookie.Value)
	if err != nil {
		log.Debug().Err(err).Msg("rejecting session cookie")
		return CookieClaims{}, false
	}
	return claims, true
}

// Clear deletes the session record and expires the cookie. Calling it again is harmless.
func (h *Handle) Clear(ctx context.Context) error {
	if err := h.discard(ctx); err != nil {
		return err
	}
	if h.cookieExpired {
		return nil
	}
	if _, err := h.r.Cookie(h.m.cookie.Name); err == nil || h.cookieWritten {
		http.SetCookie(h.w, h.newCookie("", -1))
		h.cookieExpired = true
	}
	return nil
}

// discard deletes whatever session record this request refers to.
func (h *Handle) discard(ctx context.Context) error {
	sessionID := ""
	switch {
	case h.session != nil:
		sessionID = h.session.ID
	case !h.loaded:
		if claims, ok := h.claims(); ok {
			sessionID = claims.SessionID
		}
	}
	h.loaded = true
	h.session = nil

	if sessionID == "" {
		return nil
	}
	if err := h.m.repo.Delete(ctx, sessionID); err != nil {
		return apperrors.Wrapf(err, "deleting session")
	}
	log.Info().Str("sessionId", sessionID).Msg("session cleared")
	return nil
}

func (h *Handle) State() State {
	if _, ok := h.Current(h.r.Context()); ok {
		return Authenticated
	}
	return Anonymous
}

func (h *Handle) newCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.m.cookie.Name,
		Value:    value,
		Path:     h.m.cookie.Path,
		HttpOnly: true,
		Secure:   h.m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

type contextKey struct{}

func NewContext(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, contextKey{}, h)
}

func FromContext(ctx context.Context) (*Handle, bool) {
	h, ok := ctx.Value(contextKey{}).(*Handle)
	return h, ok
}
