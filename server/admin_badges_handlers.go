package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/speet-admin/badges"
	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
)

func badgeInput(r *http.Request) badges.Input {
	return badges.Input{
		Name:  r.FormValue("name"),
		Tag:   r.FormValue("tag"),
		Info:  r.FormValue("info"),
		Color: r.FormValue("color"),
	}
}

// AdminBadgesListHandler lists one page of badges with create, edit and multi-delete forms
func (s *Server) AdminBadgesListHandler() http.HandlerFunc {
	return s.adminPage(func(w http.ResponseWriter, r *http.Request, a adminRequest) {
		page, err := badges.NewService(a.api, a.cache).List(r.Context(), s.pageParams(r))
		s.renderAdminPage(w, r, a, "badges", "Badges", "admin_badges_content.html", page, err)
	})
}

func (s *Server) AdminBadgeCreateHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminBadges, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		badge, err := badges.NewService(a.api, a.cache).Create(ctx, badgeInput(r))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Badge %q created", badge.Name), nil
	})
}

func (s *Server) AdminBadgeUpdateHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminBadges, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		if _, err := badges.NewService(a.api, a.cache).Update(ctx, r.PathValue("id"), badgeInput(r)); err != nil {
			return "", err
		}
		return "Badge updated", nil
	})
}

// AdminBadgesDeleteHandler deletes every selected badge
func (s *Server) AdminBadgesDeleteHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminBadges, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		ids := r.Form["id"]
		if len(ids) == 0 {
			return "", apperrors.NewValidationError("id", "Select at least one badge")
		}
		deleted, err := badges.NewService(a.api, a.cache).DeleteMany(ctx, ids)
		if err != nil {
			return "", apperrors.Wrapf(err, "deleted %d of %d badges", deleted, len(ids))
		}
		if deleted == 1 {
			return "Badge deleted", nil
		}
		return fmt.Sprintf("%d badges deleted", deleted), nil
	})
}
