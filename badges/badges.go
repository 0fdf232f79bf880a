// Package badges manages the badges users can be awarded.
package badges

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/speet-admin/gateway"
	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/internal/listcache"
	"github.com/jrsteele09/speet-admin/internal/pagination"
	"github.com/jrsteele09/speet-admin/internal/utils"
	"github.com/rs/zerolog/log"
)

type Badge struct {
	ID        string
	Name      string
	Tag       string
	Info      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Page struct {
	Badges     []Badge
	Pagination pagination.Info
}

// Input is the editable part of a badge.
type Input struct {
	Name  string `json:"name"`
	Tag   string `json:"tag"`
	Info  string `json:"info"`
	Color string `json:"color"`
}

func (in Input) Validate() error {
	for _, f := range []struct{ field, value string }{
		{"name", in.Name},
		{"tag", in.Tag},
		{"info", in.Info},
		{"color", in.Color},
	} {
		if strings.TrimSpace(f.value) == "" {
			return apperrors.NewValidationError(f.field, f.field+" is required")
		}
	}
	return nil
}

func (in Input) trimmed() Input {
	return Input{
		Name:  strings.TrimSpace(in.Name),
		Tag:   strings.TrimSpace(in.Tag),
		Info:  strings.TrimSpace(in.Info),
		Color: strings.TrimSpace(in.Color),
	}
}

type rawBadge struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Tag       string `json:"tag"`
	Info      string `json:"info"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (r rawBadge) normalize() Badge {
	b := Badge{
		ID:        r.ID,
		Name:      r.Name,
		Tag:       r.Tag,
		Info:      r.Info,
		Color:     r.Color,
		CreatedAt: utils.ParseTime(r.CreatedAt),
		UpdatedAt: utils.ParseTime(r.UpdatedAt),
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	return b
}

type rawPage struct {
	Badges     []rawBadge      `json:"badges"`
	Pagination *pagination.Raw `json:"pagination"`
}

type Service struct {
	api   gateway.Requester
	cache *listcache.Scoped
}

func NewService(api gateway.Requester, cache *listcache.Scoped) *Service {
	return &Service{api: api, cache: cache}
}

func (s *Service) List(ctx context.Context, p pagination.Params) (Page, error) {
	return listcache.Fetch(ctx, s.cache, listcache.Badges, p.Page, p.Limit, func(ctx context.Context) (Page, error) {
		var raw rawPage
		if err := s.api.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "/badges/", Query: p.Query()}, &raw); err != nil {
			return Page{}, err
		}
		out := make([]Badge, 0, len(raw.Badges))
		for _, r := range raw.Badges {
			if r.ID == "" {
				log.Warn().Msg("dropping badge record without an ID")
				continue
			}
			out = append(out, r.normalize())
		}
		return Page{Badges: out, Pagination: raw.Pagination.Normalize(p, len(out))}, nil
	})
}

func (s *Service) Get(ctx context.Context, id string) (Badge, error) {
	var raw rawBadge
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodGet, Path: gateway.Pathf("/badges/%s", id)}, &raw); err != nil {
		return Badge{}, err
	}
	return raw.normalize(), nil
}

func (s *Service) Create(ctx context.Context, in Input) (Badge, error) {
	in = in.trimmed()
	if err := in.Validate(); err != nil {
		return Badge{}, err
	}
	var raw rawBadge
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodPost, Path: "/badges/", Body: in}, &raw); err != nil {
		return Badge{}, err
	}
	s.cache.Invalidate(listcache.Badges)
	return raw.normalize(), nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Badge, error) {
	in = in.trimmed()
	if err := in.Validate(); err != nil {
		return Badge{}, err
	}
	var raw rawBadge
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodPut, Path: gateway.Pathf("/badges/%s", id), Body: in}, &raw); err != nil {
		return Badge{}, err
	}
	s.cache.Invalidate(listcache.Badges)
	return raw.normalize(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: gateway.Pathf("/badges/%s", id)}, nil); err != nil {
		return err
	}
	s.cache.Invalidate(listcache.Badges)
	return nil
}

// DeleteMany deletes badges one by one and stops at the first failure.
// It returns how many were deleted. The cache is invalidated if any were.
func (s *Service) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, apperrors.NewValidationError("ids", "no badges selected")
	}
	deleted := 0
	defer func() {
		if deleted > 0 {
			s.cache.Invalidate(listcache.Badges)
		}
	}()
	for _, id := range ids {
		if err := s.api.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: gateway.Pathf("/badges/%s", id)}, nil); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
