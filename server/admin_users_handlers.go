package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/speet-admin/internal/pagination"
	"github.com/jrsteele09/speet-admin/users"
)

// UsersPageData is the model of the user list
type UsersPageData struct {
	Users      []users.User
	Pagination pagination.Info
	Query      string
	Status     string
	Statuses   []string
}

// AdminUsersListHandler lists one page of users, filtered on the page
func (s *Server) AdminUsersListHandler() http.HandlerFunc {
	return s.adminPage(func(w http.ResponseWriter, r *http.Request, a adminRequest) {
		q := r.URL.Query()
		data := UsersPageData{
			Query:    strings.TrimSpace(q.Get("q")),
			Status:   q.Get("status"),
			Statuses: []string{users.StatusAll, users.StatusVerified, users.StatusUnverified},
		}
		if data.Status == "" {
			data.Status = users.StatusAll
		}

		page, err := users.NewService(a.api, a.cache).List(r.Context(), s.pageParams(r))
		if err == nil {
			data.Users = users.Filter(page.Users, data.Query, data.Status)
			data.Pagination = page.Pagination
		}
		s.renderAdminPage(w, r, a, "users", "Users", "admin_users_content.html", data, err)
	})
}

// AdminUserHandler shows one user's details
func (s *Server) AdminUserHandler() http.HandlerFunc {
	return s.adminPage(func(w http.ResponseWriter, r *http.Request, a adminRequest) {
		user, err := users.NewService(a.api, a.cache).Get(r.Context(), r.PathValue("id"))
		if err != nil {
			s.renderAdminPage(w, r, a, "users", "User", "admin_user_content.html", nil, err)
			return
		}
		s.renderAdminPage(w, r, a, "users", user.FullName, "admin_user_content.html", user, nil)
	})
}
