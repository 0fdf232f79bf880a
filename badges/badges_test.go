package badges_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jrsteele09/speet-admin/badges"
	"github.com/jrsteele09/speet-admin/gateway"
	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/internal/listcache"
	"github.com/jrsteele09/speet-admin/internal/pagination"
	"github.com/jrsteele09/speet-admin/internal/speetfake"
	"github.com/jrsteele09/speet-admin/sessions"
	"github.com/stretchr/testify/require"
)

type staticSession struct{ session sessions.Session }

func (s staticSession) Current(context.Context) (sessions.Session, bool) { return s.session, true }
func (s staticSession) Clear(context.Context) error                      { return nil }

var gold = badges.Input{Name: "Gold", Tag: "top", Info: "Top contributor", Color: "yellow"}

func newService(t *testing.T) (*badges.Service, *speetfake.Backend) {
	t.Helper()
	backend := speetfake.Start(t)
	token := backend.Issue("admin-1")
	api := gateway.New(backend.URL(), backend.Client()).For(staticSession{sessions.Session{UserID: "admin-1", AccessToken: token}})
	return badges.NewService(api, listcache.New(time.Minute).Scoped("admin-1")), backend
}

func TestCreate_ListReflectsNewBadge(t *testing.T) {
	service, backend := newService(t)
	ctx := context.Background()
	p := pagination.NewParams(1, 20)

	before, err := service.List(ctx, p)
	require.NoError(t, err)
	require.Empty(t, before.Badges)

	created, err := service.Create(ctx, gold)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	after, err := service.List(ctx, p)
	require.NoError(t, err)
	require.Len(t, after.Badges, 1)
	require.Equal(t, created.ID, after.Badges[0].ID)
	require.Equal(t, 2, backend.Count(http.MethodGet, "/badges/"))
}

func TestList_CachedUntilMutation(t *testing.T) {
	service, backend := newService(t)
	backend.AddBadge("Silver", "mid", "Regular", "gray")
	ctx := context.Background()
	p := pagination.NewParams(1, 20)

	for range 3 {
		_, err := service.List(ctx, p)
		require.NoError(t, err)
	}
	require.Equal(t, 1, backend.Count(http.MethodGet, "/badges/"))

	// A failed mutation leaves the cache alone.
	backend.FailNext(http.MethodPost, "/badges/", http.StatusBadRequest, "Name already exists")
	_, err := service.Create(ctx, gold)
	require.ErrorIs(t, err, apperrors.ErrRequestFailed)
	require.Equal(t, "Name already exists", apperrors.UserMessage(err))
	_, err = service.List(ctx, p)
	require.NoError(t, err)
	require.Equal(t, 1, backend.Count(http.MethodGet, "/badges/"))
}

func TestList_Normalizes(t *testing.T) {
	service, backend := newService(t)
	id := backend.AddBadge("Silver", "mid", "Regular", "gray")

	page, err := service.List(context.Background(), pagination.NewParams(1, 20))
	require.NoError(t, err)

	raw := backend.Badges()[0]
	created, err := time.Parse(time.RFC3339, raw["createdAt"].(string))
	require.NoError(t, err)
	want := []badges.Badge{{ID: id, Name: "Silver", Tag: "mid", Info: "Regular", Color: "gray", CreatedAt: created, UpdatedAt: created}}
	if diff := cmp.Diff(want, page.Badges); diff != "" {
		t.Fatalf("badges mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, pagination.Info{Total: 1, CurrentPage: 1, TotalPages: 1, PageSize: 20}, page.Pagination)
}

func TestValidation(t *testing.T) {
	service, backend := newService(t)
	ctx := context.Background()

	for field, in := range map[string]badges.Input{
		"name":  {Tag: "t", Info: "i", Color: "c"},
		"tag":   {Name: "n", Info: "i", Color: "c"},
		"info":  {Name: "n", Tag: "t", Color: "c"},
		"color": {Name: "n", Tag: "t", Info: "i", Color: "  "},
	} {
		t.Run(field, func(t *testing.T) {
			_, err := service.Create(ctx, in)
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, field, verr.Field)

			_, err = service.Update(ctx, "badge-1", in)
			require.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
	require.Empty(t, backend.Calls())
}

func TestUpdateGetDelete(t *testing.T) {
	service, backend := newService(t)
	ctx := context.Background()
	id := backend.AddBadge("Silver", "mid", "Regular", "gray")

	updated, err := service.Update(ctx, id, badges.Input{Name: " Platinum ", Tag: "elite", Info: "Best", Color: "white"})
	require.NoError(t, err)
	require.Equal(t, "Platinum", updated.Name)
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	got, err := service.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "elite", got.Tag)

	require.NoError(t, service.Delete(ctx, id))
	_, err = service.Get(ctx, id)
	require.ErrorIs(t, err, apperrors.ErrRequestFailed)
	require.Equal(t, "Badge not found", apperrors.UserMessage(err))
}

func TestDeleteMany(t *testing.T) {
	service, backend := newService(t)
	ctx := context.Background()
	a := backend.AddBadge("A", "a", "a", "red")
	b := backend.AddBadge("B", "b", "b", "red")
	c := backend.AddBadge("C", "c", "c", "red")

	_, err := service.List(ctx, pagination.NewParams(1, 20))
	require.NoError(t, err)

	deleted, err := service.DeleteMany(ctx, []string{a, "missing", b})
	require.ErrorIs(t, err, apperrors.ErrRequestFailed)
	require.Equal(t, 1, deleted)

	page, err := service.List(ctx, pagination.NewParams(1, 20))
	require.NoError(t, err)
	require.Len(t, page.Badges, 2, "partial delete still invalidates the list")

	deleted, err = service.DeleteMany(ctx, []string{b, c})
	require.NoError(t, err)
	require.Equal(t, 2, deleted)

	_, err = service.DeleteMany(ctx, nil)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
