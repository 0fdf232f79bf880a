// Package users reads SPEET platform users. The dashboard never writes them.
package users

import (
	"context"
	"net/http"

	"github.com/jrsteele09/speet-admin/gateway"
	"github.com/jrsteele09/speet-admin/internal/listcache"
	"github.com/jrsteele09/speet-admin/internal/pagination"
)

type Service struct {
	api   gateway.Requester
	cache *listcache.Scoped
}

func NewService(api gateway.Requester, cache *listcache.Scoped) *Service {
	return &Service{api: api, cache: cache}
}

// List fetches one page of users: GET /user/all-user?page&limit
func (s *Service) List(ctx context.Context, p pagination.Params) (Page, error) {
	return listcache.Fetch(ctx, s.cache, listcache.Users, p.Page, p.Limit, func(ctx context.Context) (Page, error) {
		var raw rawPage
		err := s.api.Do(ctx, gateway.Request{
			Method: http.MethodGet,
			Path:   "/user/all-user",
			Query:  p.Query(),
		}, &raw)
		if err != nil {
			return Page{}, err
		}
		users := normalizeAll(raw.Users)
		return Page{Users: users, Pagination: raw.Pagination.Normalize(p, len(users))}, nil
	})
}

// Get fetches one user: GET /user/single-user/{id}
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	var raw rawUser
	err := s.api.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   gateway.Pathf("/user/single-user/%s", id),
	}, &raw)
	if err != nil {
		return User{}, err
	}
	u, ok := raw.normalize()
	if !ok {
		return User{}, errMalformed
	}
	return u, nil
}
