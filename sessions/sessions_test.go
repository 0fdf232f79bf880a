package sessions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/sessions"
	"github.com/stretchr/testify/require"
)

var (
	testKey      = []byte("0123456789abcdef0123456789abcdef")
	testIdentity = sessions.Identity{
		ID:           "user-1",
		Email:        "admin@speet.app",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		Role:         "admin",
	}
)

type fixture struct {
	repo    *sessions.InMemoryRepo
	manager *sessions.Manager
	now     time.Time
}

func newFixture() *fixture {
	f := &fixture{
		repo: sessions.NewInMemoryRepo(),
		now:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	f.manager = sessions.NewManager(f.repo, sessions.NewCookieCodec(testKey), sessions.CookieOptions{MaxAge: time.Hour})
	f.manager.SetClock(func() time.Time { return f.now })
	f.repo.SetClock(func() time.Time { return f.now })
	return f
}

// login establishes a session and returns the cookies a browser would send back.
func (f *fixture) login(t *testing.T) (sessions.Session, []*http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	h := f.manager.Handle(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	s, err := h.Establish(context.Background(), testIdentity)
	require.NoError(t, err)
	require.Equal(t, sessions.Authenticated, h.State())
	return s, rec.Result().Cookies()
}

func (f *fixture) handle(cookies []*http.Cookie) (*sessions.Handle, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	return f.manager.Handle(rec, req), rec
}

func TestEstablish_CurrentReturnsTokens(t *testing.T) {
	f := newFixture()
	established, cookies := f.login(t)
	require.Len(t, cookies, 1)
	require.Equal(t, sessions.DefaultCookieName, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
	require.NotContains(t, cookies[0].Value, testIdentity.AccessToken)

	h, _ := f.handle(cookies)
	current, ok := h.Current(context.Background())
	require.True(t, ok)
	require.Equal(t, established, current)
	require.Equal(t, testIdentity.AccessToken, current.AccessToken)
	require.Equal(t, "user-1", current.UserID)
	require.Equal(t, "admin", current.Role)
	require.Equal(t, f.now.Add(time.Hour), current.ExpiresAt)
}

func TestEstablish_RejectsIncompleteIdentity(t *testing.T) {
	f := newFixture()
	h, _ := f.handle(nil)
	_, err := h.Establish(context.Background(), sessions.Identity{ID: "user-1"})
	require.Error(t, err)
	require.Equal(t, sessions.Anonymous, h.State())
}

func TestEstablish_ReplacesPreviousSession(t *testing.T) {
	f := newFixture()
	first, cookies := f.login(t)

	h, _ := f.handle(cookies)
	second, err := h.Establish(context.Background(), testIdentity)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	_, err = f.repo.Get(context.Background(), first.ID)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestCurrent_Anonymous(t *testing.T) {
	f := newFixture()

	t.Run("no cookie", func(t *testing.T) {
		h, _ := f.handle(nil)
		_, ok := h.Current(context.Background())
		require.False(t, ok)
		require.Equal(t, sessions.Anonymous, h.State())
	})

	t.Run("tampered cookie", func(t *testing.T) {
		_, cookies := f.login(t)
		cookies[0].Value += "x"
		h, _ := f.handle(cookies)
		_, ok := h.Current(context.Background())
		require.False(t, ok)
	})

	t.Run("cookie signed with another key", func(t *testing.T) {
		s, _ := f.login(t)
		value, err := sessions.NewCookieCodec([]byte("another-key-another-key-another!!")).Encode(s)
		require.NoError(t, err)
		h, _ := f.handle([]*http.Cookie{{Name: sessions.DefaultCookieName, Value: value}})
		_, ok := h.Current(context.Background())
		require.False(t, ok)
	})

	t.Run("record deleted server side", func(t *testing.T) {
		s, cookies := f.login(t)
		require.NoError(t, f.repo.Delete(context.Background(), s.ID))
		h, _ := f.handle(cookies)
		_, ok := h.Current(context.Background())
		require.False(t, ok)
	})

	t.Run("subject mismatch", func(t *testing.T) {
		s, cookies := f.login(t)
		s.UserID = "someone-else"
		require.NoError(t, f.repo.Upsert(context.Background(), s))
		h, _ := f.handle(cookies)
		_, ok := h.Current(context.Background())
		require.False(t, ok)
	})
}

func TestCurrent_Expired(t *testing.T) {
	f := newFixture()
	_, cookies := f.login(t)

	f.now = f.now.Add(time.Hour + time.Second)
	h, _ := f.handle(cookies)
	_, ok := h.Current(context.Background())
	require.False(t, ok)
}

func TestClear_Idempotent(t *testing.T) {
	f := newFixture()
	s, cookies := f.login(t)

	h, rec := f.handle(cookies)
	_, ok := h.Current(context.Background())
	require.True(t, ok)

	require.NoError(t, h.Clear(context.Background()))
	require.NoError(t, h.Clear(context.Background()))
	require.Equal(t, sessions.Anonymous, h.State())

	_, err := f.repo.Get(context.Background(), s.ID)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	expired := rec.Result().Cookies()
	require.Len(t, expired, 1, "cookie expired once")
	require.Equal(t, -1, expired[0].MaxAge)

	// The old cookie no longer resolves to a session.
	h2, _ := f.handle(cookies)
	_, ok = h2.Current(context.Background())
	require.False(t, ok)
}

func TestClear_WithoutSession(t *testing.T) {
	f := newFixture()
	h, rec := f.handle(nil)
	require.NoError(t, h.Clear(context.Background()))
	require.Empty(t, rec.Result().Cookies())
}

func TestContext(t *testing.T) {
	f := newFixture()
	h, _ := f.handle(nil)

	_, ok := sessions.FromContext(context.Background())
	require.False(t, ok)

	got, ok := sessions.FromContext(sessions.NewContext(context.Background(), h))
	require.True(t, ok)
	require.Same(t, h, got)
}

func TestInMemoryRepo_Expiry(t *testing.T) {
	repo := sessions.NewInMemoryRepo()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.SetClock(func() time.Time { return now })
	ctx := context.Background()

	require.Error(t, repo.Upsert(ctx, sessions.Session{}))
	require.NoError(t, repo.Upsert(ctx, sessions.Session{ID: "a", ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, repo.Upsert(ctx, sessions.Session{ID: "b", ExpiresAt: now.Add(time.Hour)}))

	_, err := repo.Get(ctx, "a")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = repo.Get(ctx, "a")
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	_, err = repo.Get(ctx, "a")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	require.Equal(t, 1, repo.DeleteExpired(now.Add(2*time.Hour)))
	require.NoError(t, repo.Delete(ctx, "missing"))
}

func TestSessionToken(t *testing.T) {
	s := sessions.Session{AccessToken: "abc"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s.Token().SetAuthHeader(req)
	require.Equal(t, "Bearer abc", req.Header.Get("Authorization"))
}
