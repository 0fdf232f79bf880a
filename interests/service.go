package interests

import (
	"context"
	"net/http"
	"strings"

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

// ListCategories fetches one page of categories. A backend that returns every
// category in one bare array yields a single page.
func (s *Service) ListCategories(ctx context.Context, p pagination.Params) (CategoryPage, error) {
	return listcache.Fetch(ctx, s.cache, listcache.InterestCategories, p.Page, p.Limit, func(ctx context.Context) (CategoryPage, error) {
		var raw rawCategoryList
		if err := s.api.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "/interest/categories", Query: p.Query()}, &raw); err != nil {
			return CategoryPage{}, err
		}
		out := make([]Category, 0, len(raw.Categories))
		for _, c := range raw.Categories {
			if c.ID != "" {
				out = append(out, c.normalize())
			}
		}
		info := pagination.SinglePage(len(out))
		if raw.Paged {
			info = raw.Pagination.Normalize(p, len(out))
		}
		return CategoryPage{Categories: out, Pagination: info}, nil
	})
}

// AllCategories returns every category, for pickers and grouping.
func (s *Service) AllCategories(ctx context.Context) ([]Category, error) {
	page, err := s.ListCategories(ctx, pagination.NewParams(1, pagination.MaxLimit))
	if err != nil {
		return nil, err
	}
	all := page.Categories
	for p := 2; p <= page.Pagination.TotalPages; p++ {
		next, err := s.ListCategories(ctx, pagination.NewParams(p, pagination.MaxLimit))
		if err != nil {
			return nil, err
		}
		all = append(all, next.Categories...)
	}
	return all, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string) (Category, error) {
	name, err := validateCategoryName(name)
	if err != nil {
		return Category{}, err
	}
	var raw rawCategory
	err = s.api.Do(ctx, gateway.Request{Method: http.MethodPost, Path: "/interest/create-category", Body: map[string]string{"name": name}}, &raw)
	if err != nil {
		return Category{}, err
	}
	s.cache.Invalidate(listcache.InterestCategories)
	return raw.normalize(), nil
}

func (s *Service) UpdateCategory(ctx context.Context, id, name string) (Category, error) {
	name, err := validateCategoryName(name)
	if err != nil {
		return Category{}, err
	}
	var raw rawCategory
	err = s.api.Do(ctx, gateway.Request{Method: http.MethodPatch, Path: gateway.Pathf("/interest/category/%s", id), Body: map[string]string{"name": name}}, &raw)
	if err != nil {
		return Category{}, err
	}
	s.cache.Invalidate(listcache.InterestCategories)
	return raw.normalize(), nil
}

// DeleteCategory also invalidates interests, which may reference the category.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: gateway.Pathf("/interest/category/%s", id)}, nil); err != nil {
		return err
	}
	s.cache.Invalidate(listcache.InterestCategories, listcache.Interests)
	return nil
}

// ListInterests fetches every interest. The endpoint is not paged.
func (s *Service) ListInterests(ctx context.Context) ([]Interest, error) {
	return listcache.Fetch(ctx, s.cache, listcache.Interests, 1, 0, func(ctx context.Context) ([]Interest, error) {
		var raw []rawInterest
		if err := s.api.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "/interest/"}, &raw); err != nil {
			return nil, err
		}
		out := make([]Interest, 0, len(raw))
		for _, r := range raw {
			if r.ID != "" {
				out = append(out, r.normalize())
			}
		}
		return out, nil
	})
}

type nameAndColor struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type createInterestRequest struct {
	NameAndColor     []nameAndColor `json:"nameAndColor"`
	InterestCategory string         `json:"interestCategory"`
}

// CreateInterest creates one interest in a category.
func (s *Service) CreateInterest(ctx context.Context, in InterestInput) ([]Interest, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	body := createInterestRequest{
		NameAndColor:     []nameAndColor{{Name: strings.TrimSpace(in.Name), Color: strings.TrimSpace(in.Color)}},
		InterestCategory: strings.TrimSpace(in.CategoryID),
	}
	var raw rawInterestList
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodPost, Path: "/interest/create-interest", Body: body}, &raw); err != nil {
		return nil, err
	}
	s.cache.Invalidate(listcache.Interests)
	out := make([]Interest, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.normalize())
	}
	return out, nil
}

func (s *Service) UpdateInterest(ctx context.Context, id string, in InterestInput) (Interest, error) {
	if err := in.Validate(); err != nil {
		return Interest{}, err
	}
	body := map[string]string{
		"name":             strings.TrimSpace(in.Name),
		"color":            strings.TrimSpace(in.Color),
		"interestCategory": strings.TrimSpace(in.CategoryID),
	}
	var raw rawInterest
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodPatch, Path: gateway.Pathf("/interest/update-interest/%s", id), Body: body}, &raw); err != nil {
		return Interest{}, err
	}
	s.cache.Invalidate(listcache.Interests)
	return raw.normalize(), nil
}

func (s *Service) DeleteInterest(ctx context.Context, id string) error {
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: gateway.Pathf("/interest/delete-interest/%s", id)}, nil); err != nil {
		return err
	}
	s.cache.Invalidate(listcache.Interests)
	return nil
}
