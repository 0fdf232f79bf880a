package reports_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jrsteele09/speet-admin/gateway"
	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/internal/listcache"
	"github.com/jrsteele09/speet-admin/internal/pagination"
	"github.com/jrsteele09/speet-admin/internal/speetfake"
	"github.com/jrsteele09/speet-admin/reports"
	"github.com/jrsteele09/speet-admin/sessions"
	"github.com/stretchr/testify/require"
)

type staticSession struct{ session sessions.Session }

func (s staticSession) Current(context.Context) (sessions.Session, bool) { return s.session, true }
func (s staticSession) Clear(context.Context) error                      { return nil }

func newService(t *testing.T) (*reports.Service, *speetfake.Backend) {
	t.Helper()
	backend := speetfake.Start(t)
	backend.AddAccount("admin-1", "admin@speet.test", "secret", "admin")
	token := backend.Issue("admin-1")
	api := gateway.New(backend.URL(), backend.Client()).For(staticSession{sessions.Session{UserID: "admin-1", AccessToken: token}})
	return reports.NewService(api, listcache.New(time.Minute).Scoped("admin-1")), backend
}

func TestList_Normalizes(t *testing.T) {
	service, backend := newService(t)
	backend.AddReport(map[string]any{
		"_id":        "r1",
		"name":       "Spam",
		"message":    "Posting links",
		"attachment": "https://cdn.speet.test/a.png",
		"reportBy":   map[string]any{"_id": "u1", "email": "jane@speet.test"},
		"createdAt":  "2026-01-02T03:04:05Z",
	})
	backend.AddReport(map[string]any{
		"_id":        "r2",
		"name":       "Abuse",
		"message":    "Rude replies",
		"attachment": []any{"https://cdn.speet.test/b.png", "https://cdn.speet.test/c.png"},
		"status":     "resolved",
		"reportBy":   map[string]any{"_id": "u2", "email": "bob@speet.test", "name": "Bob", "avatar": "https://cdn.speet.test/bob.png"},
	})
	backend.AddReport(map[string]any{"_id": "", "name": "ghost"})

	page, err := service.List(context.Background(), pagination.NewParams(1, 20))
	require.NoError(t, err)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	want := []reports.Report{
		{
			ID:          "r1",
			Name:        "Spam",
			Message:     "Posting links",
			Attachments: []string{"https://cdn.speet.test/a.png"},
			Status:      reports.StatusPending,
			ReportBy:    reports.Reporter{ID: "u1", Email: "jane@speet.test", Name: "jane", Avatar: reports.DefaultAvatar},
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "r2",
			Name:        "Abuse",
			Message:     "Rude replies",
			Attachments: []string{"https://cdn.speet.test/b.png", "https://cdn.speet.test/c.png"},
			Status:      reports.StatusResolved,
			ReportBy:    reports.Reporter{ID: "u2", Email: "bob@speet.test", Name: "Bob", Avatar: "https://cdn.speet.test/bob.png"},
		},
	}
	diff := cmp.Diff(want, page.Reports, cmpopts.IgnoreFields(reports.Report{}, "UpdatedAt"), cmpopts.IgnoreFields(reports.Report{}, "CreatedAt"))
	require.Empty(t, diff)
	require.Equal(t, created, page.Reports[0].CreatedAt)
	require.Equal(t, 3, page.Pagination.Total)
}

func TestCreate_Multipart(t *testing.T) {
	service, backend := newService(t)
	ctx := context.Background()

	t.Run("single attachment", func(t *testing.T) {
		report, err := service.Create(ctx, reports.CreateInput{
			Name:        " Spam ",
			Message:     "Links everywhere",
			Attachments: []reports.Attachment{{Filename: "shot.png", ContentType: "image/png", Data: []byte("png")}},
		})
		require.NoError(t, err)
		require.Equal(t, "Spam", report.Name)
		require.Equal(t, []string{"https://cdn.speet.test/shot.png"}, report.Attachments)
		require.Equal(t, reports.StatusPending, report.Status)
		require.Equal(t, "admin@speet.test", report.ReportBy.Email)
		require.Equal(t, "admin", report.ReportBy.Name)
	})

	t.Run("several attachments", func(t *testing.T) {
		report, err := service.Create(ctx, reports.CreateInput{
			Name:    "Abuse",
			Message: "See screenshots",
			Attachments: []reports.Attachment{
				{Filename: "a.png", Data: []byte("a")},
				{Filename: "b.png", Data: []byte("b")},
			},
		})
		require.NoError(t, err)
		require.Len(t, report.Attachments, 2)
	})

	t.Run("validation stays local", func(t *testing.T) {
		before := backend.Count(http.MethodPost, "/reports/")
		_, err := service.Create(ctx, reports.CreateInput{Name: "x"})
		require.ErrorIs(t, err, apperrors.ErrValidation)
		require.Equal(t, "message is required", err.Error())

		_, err = service.Create(ctx, reports.CreateInput{Name: "x", Message: "y", Attachments: make([]reports.Attachment, reports.MaxAttachments+1)})
		require.ErrorIs(t, err, apperrors.ErrValidation)
		require.Equal(t, before, backend.Count(http.MethodPost, "/reports/"))
	})
}

func TestMutations_InvalidateList(t *testing.T) {
	service, backend := newService(t)
	id := backend.AddReport(map[string]any{"name": "Spam", "message": "Links", "status": "pending"})
	ctx := context.Background()
	p := pagination.NewParams(1, 20)

	list := func() reports.Page {
		page, err := service.List(ctx, p)
		require.NoError(t, err)
		return page
	}

	require.False(t, list().Reports[0].Resolved())
	require.False(t, list().Reports[0].Resolved())
	require.Equal(t, 1, backend.Count(http.MethodGet, "/reports/"))

	resolved, err := service.Resolve(ctx, id)
	require.NoError(t, err)
	require.True(t, resolved.Resolved())
	require.True(t, list().Reports[0].Resolved())
	require.Equal(t, 2, backend.Count(http.MethodGet, "/reports/"))

	updated, err := service.Update(ctx, id, reports.UpdateInput{Message: "Links and spam"})
	require.NoError(t, err)
	require.Equal(t, "Links and spam", updated.Message)
	require.Equal(t, "Links and spam", list().Reports[0].Message)

	_, err = service.Update(ctx, id, reports.UpdateInput{})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = service.Update(ctx, id, reports.UpdateInput{Status: "closed"})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, service.Delete(ctx, id))
	require.Empty(t, list().Reports)
	require.Equal(t, 4, backend.Count(http.MethodGet, "/reports/"))

	err = service.Delete(ctx, id)
	require.ErrorIs(t, err, apperrors.ErrRequestFailed)
	require.Equal(t, "Report not found", apperrors.UserMessage(err))
}

func TestGet(t *testing.T) {
	service, backend := newService(t)
	id := backend.AddReport(map[string]any{"name": "Spam", "message": "Links"})

	report, err := service.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Spam", report.Name)
	require.Equal(t, reports.DefaultAvatar, report.ReportBy.Avatar)
	require.Empty(t, report.Attachments)
}

func TestFilter(t *testing.T) {
	all := []reports.Report{
		{ID: "1", Name: "Spam", Message: "links", Status: reports.StatusPending, ReportBy: reports.Reporter{Email: "jane@speet.test"}},
		{ID: "2", Name: "Abuse", Message: "rude", Status: reports.StatusResolved, ReportBy: reports.Reporter{Email: "bob@speet.test"}},
		{ID: "3", Name: "Other", Message: "spam again", Status: reports.StatusResolved, ReportBy: reports.Reporter{Email: "amy@speet.test"}},
	}
	ids := func(rs []reports.Report) []string {
		out := []string{}
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		query  string
		status string
		want   []string
	}{
		{"everything", "", reports.StatusAll, []string{"1", "2", "3"}},
		{"name or message", "SPAM", "", []string{"1", "3"}},
		{"reporter email", "bob@", "", []string{"2"}},
		{"status only", "", "resolved", []string{"2", "3"}},
		{"combined", "spam", "resolved", []string{"3"}},
		{"no match", "nothing", "", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ids(reports.Filter(all, tc.query, tc.status)))
		})
	}
}
