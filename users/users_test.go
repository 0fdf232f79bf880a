package users_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jrsteele09/speet-admin/gateway"
	"github.com/jrsteele09/speet-admin/internal/listcache"
	"github.com/jrsteele09/speet-admin/internal/pagination"
	"github.com/jrsteele09/speet-admin/internal/speetfake"
	"github.com/jrsteele09/speet-admin/sessions"
	"github.com/jrsteele09/speet-admin/users"
	"github.com/stretchr/testify/require"
)

type staticSession struct{ session sessions.Session }

func (s staticSession) Current(context.Context) (sessions.Session, bool) { return s.session, true }
func (s staticSession) Clear(context.Context) error                      { return nil }

func newService(t *testing.T) (*users.Service, *speetfake.Backend) {
	t.Helper()
	backend := speetfake.Start(t)
	token := backend.Issue("admin-1")
	api := gateway.New(backend.URL(), backend.Client()).For(staticSession{sessions.Session{UserID: "admin-1", AccessToken: token}})
	return users.NewService(api, listcache.New(time.Minute).Scoped("admin-1")), backend
}

func TestList_Normalizes(t *testing.T) {
	service, backend := newService(t)
	backend.AddUser(map[string]any{
		"_id":             "u1",
		"email":           "jane@speet.app",
		"fullName":        "Jane Doe",
		"phone":           "+1 555",
		"gender":          "female",
		"role":            "user",
		"status":          "active",
		"profileImage":    "https://cdn/jane.png",
		"adminVerify":     true,
		"isEmailVerified": true,
		"interest":        []any{map[string]any{"_id": "i1", "name": "Music", "color": "blue"}},
		"address":         []any{"1 Main St", "2 Side St"},
	})
	backend.AddUser(map[string]any{"_id": "u2", "email": "bob@speet.app"})
	backend.AddUser(map[string]any{"_id": "", "email": "ghost@speet.app"})

	page, err := service.List(context.Background(), pagination.NewParams(1, 20))
	require.NoError(t, err)

	want := []users.User{
		{
			ID: "u1", Email: "jane@speet.app", FullName: "Jane Doe", Phone: "+1 555", Gender: "female",
			Role: "user", Status: "active", ProfileImage: "https://cdn/jane.png",
			AdminVerified: true, EmailVerified: true,
			Interests: []users.Interest{{ID: "i1", Name: "Music", Color: "blue"}},
			Addresses: []string{"1 Main St", "2 Side St"},
			Location:  "1 Main St",
		},
		{ID: "u2", Email: "bob@speet.app", FullName: "bob", Interests: []users.Interest{}, Addresses: []string{}},
	}
	if diff := cmp.Diff(want, page.Users); diff != "" {
		t.Fatalf("users mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 3, page.Pagination.Total)
	require.Equal(t, 1, page.Pagination.TotalPages)
}

func TestList_Cached(t *testing.T) {
	service, backend := newService(t)
	backend.AddUser(map[string]any{"_id": "u1", "email": "a@speet.app"})
	ctx := context.Background()

	_, err := service.List(ctx, pagination.NewParams(1, 20))
	require.NoError(t, err)
	_, err = service.List(ctx, pagination.NewParams(1, 20))
	require.NoError(t, err)
	require.Equal(t, 1, backend.Count(http.MethodGet, "/user/all-user"))

	_, err = service.List(ctx, pagination.NewParams(2, 20))
	require.NoError(t, err)
	require.Equal(t, 2, backend.Count(http.MethodGet, "/user/all-user"), "pages are cached separately")
}

func TestList_Pages(t *testing.T) {
	service, backend := newService(t)
	for _, email := range []string{"a@x.io", "b@x.io", "c@x.io"} {
		backend.AddUser(map[string]any{"email": email})
	}

	page, err := service.List(context.Background(), pagination.NewParams(2, 2))
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	require.Equal(t, pagination.Info{Total: 3, CurrentPage: 2, TotalPages: 2, PageSize: 2}, page.Pagination)
	require.True(t, page.Pagination.HasPrev())
	require.False(t, page.Pagination.HasNext())
}

func TestGet(t *testing.T) {
	service, backend := newService(t)
	id := backend.AddUser(map[string]any{"email": "a@speet.app", "fullName": "Ann Lee"})

	u, err := service.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Ann Lee", u.FullName)
	require.Equal(t, "AL", u.Initials())

	_, err = service.Get(context.Background(), "missing")
	require.Error(t, err)
}

func TestFilter(t *testing.T) {
	all := []users.User{
		{ID: "1", FullName: "Jane Doe", Email: "jane@speet.app", EmailVerified: true},
		{ID: "2", FullName: "Bob Ray", Email: "bob@speet.app"},
		{ID: "3", FullName: "Ann Lee", Email: "ann@other.io", EmailVerified: true},
	}
	ids := func(us []users.User) []string {
		out := []string{}
		for _, u := range us {
			out = append(out, u.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		query  string
		status string
		want   []string
	}{
		{name: "everything", status: users.StatusAll, want: []string{"1", "2", "3"}},
		{name: "by name", query: "JANE", want: []string{"1"}},
		{name: "by email", query: "speet.app", want: []string{"1", "2"}},
		{name: "verified", status: users.StatusVerified, want: []string{"1", "3"}},
		{name: "unverified", status: users.StatusUnverified, want: []string{"2"}},
		{name: "combined", query: "speet", status: users.StatusVerified, want: []string{"1"}},
		{name: "no match", query: "zzz", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ids(users.Filter(all, tt.query, tt.status)))
		})
	}
}
