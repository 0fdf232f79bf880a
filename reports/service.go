package reports

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/speet-admin/gateway"
	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/internal/listcache"
	"github.com/jrsteele09/speet-admin/internal/pagination"
)

// MaxAttachments is the most files one report may carry
const MaxAttachments = 5

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CreateInput struct {
	Name        string
	Message     string
	Attachments []Attachment
}

func (in CreateInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return apperrors.NewValidationError("name", "name is required")
	case strings.TrimSpace(in.Message) == "":
		return apperrors.NewValidationError("message", "message is required")
	case len(in.Attachments) > MaxAttachments:
		return apperrors.NewValidationError("attachment", "too many attachments")
	}
	return nil
}

// UpdateInput changes the text or status of a report. Empty fields are left as they are.
type UpdateInput struct {
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
	Status  Status `json:"status,omitempty"`
}

func (in UpdateInput) Validate() error {
	if in.Name == "" && in.Message == "" && in.Status == "" {
		return apperrors.NewValidationError("report", "nothing to update")
	}
	if in.Status != "" && in.Status != StatusPending && in.Status != StatusResolved {
		return apperrors.NewValidationError("status", "unknown status")
	}
	return nil
}

type Service struct {
	api   gateway.Requester
	cache *listcache.Scoped
}

func NewService(api gateway.Requester, cache *listcache.Scoped) *Service {
	return &Service{api: api, cache: cache}
}

func (s *Service) List(ctx context.Context, p pagination.Params) (Page, error) {
	return listcache.Fetch(ctx, s.cache, listcache.Reports, p.Page, p.Limit, func(ctx context.Context) (Page, error) {
		var raw rawPage
		if err := s.api.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "/reports/", Query: p.Query()}, &raw); err != nil {
			return Page{}, err
		}
		out := normalizeAll(raw.Reports)
		return Page{Reports: out, Pagination: raw.Pagination.Normalize(p, len(out))}, nil
	})
}

func (s *Service) Get(ctx context.Context, id string) (Report, error) {
	var raw rawReport
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodGet, Path: gateway.Pathf("/reports/%s", id)}, &raw); err != nil {
		return Report{}, err
	}
	return raw.normalize(), nil
}

// Create files a report as multipart form data with its attachments.
func (s *Service) Create(ctx context.Context, in CreateInput) (Report, error) {
	if err := in.Validate(); err != nil {
		return Report{}, err
	}
	form := &gateway.MultipartForm{}
	form.AddField("name", strings.TrimSpace(in.Name))
	form.AddField("message", strings.TrimSpace(in.Message))
	for _, a := range in.Attachments {
		form.AddFile("attachment", a.Filename, a.ContentType, a.Data)
	}

	var raw rawReport
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodPost, Path: "/reports/", Form: form}, &raw); err != nil {
		return Report{}, err
	}
	s.cache.Invalidate(listcache.Reports)
	return raw.normalize(), nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Report, error) {
	if err := in.Validate(); err != nil {
		return Report{}, err
	}
	var raw rawReport
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodPut, Path: gateway.Pathf("/reports/%s", id), Body: in}, &raw); err != nil {
		return Report{}, err
	}
	s.cache.Invalidate(listcache.Reports)
	return raw.normalize(), nil
}

func (s *Service) Resolve(ctx context.Context, id string) (Report, error) {
	var raw rawReport
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodPatch, Path: gateway.Pathf("/reports/%s/resolve", id)}, &raw); err != nil {
		return Report{}, err
	}
	s.cache.Invalidate(listcache.Reports)
	return raw.normalize(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: gateway.Pathf("/reports/%s", id)}, nil); err != nil {
		return err
	}
	s.cache.Invalidate(listcache.Reports)
	return nil
}
