// Package pagination is the single paging contract shared by every list screen.
// Pages are always computed by the SPEET API; the dashboard only forwards page and limit.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a page request.
type Params struct {
	Page  int
	Limit int
}

// NewParams clamps page to >= 1 and limit to 1..MaxLimit (0 means DefaultLimit).
func NewParams(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// FromQuery reads ?page= from a request query; malformed values give page 1.
func FromQuery(q url.Values, limit int) Params {
	page, _ := strconv.Atoi(q.Get("page"))
	return NewParams(page, limit)
}

func (p Params) Query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
	return q
}

// Info describes the page the backend returned.
type Info struct {
	Total       int
	CurrentPage int
	TotalPages  int
	PageSize    int
}

// Raw is the pagination object as the SPEET API sends it. The total field is named per
// resource (totalUsers, totalBadges, totalReports, ...).
type Raw struct {
	Total        *int `json:"total"`
	TotalUsers   *int `json:"totalUsers"`
	TotalBadges  *int `json:"totalBadges"`
	TotalReports *int `json:"totalReports"`
	TotalItems   *int `json:"totalItems"`
	CurrentPage  *int `json:"currentPage"`
	TotalPages   *int `json:"totalPages"`
	PageSize     *int `json:"pageSize"`
	Limit        *int `json:"limit"`
}

// Normalize fills every Info field, using the request params and the item count when the
// backend leaves something out.
func (r *Raw) Normalize(p Params, itemCount int) Info {
	if r == nil {
		r = &Raw{}
	}
	info := Info{
		Total:       firstOf(itemCount, r.Total, r.TotalUsers, r.TotalBadges, r.TotalReports, r.TotalItems),
		CurrentPage: firstOf(p.Page, r.CurrentPage),
		PageSize:    firstOf(p.Limit, r.PageSize, r.Limit),
	}
	if info.PageSize <= 0 {
		info.PageSize = p.Limit
	}
	info.TotalPages = firstOf(ceilDiv(info.Total, info.PageSize), r.TotalPages)
	if info.TotalPages < 1 {
		info.TotalPages = 1
	}
	if info.CurrentPage < 1 {
		info.CurrentPage = 1
	}
	return info
}

// SinglePage describes a complete, unpaged list.
func SinglePage(itemCount int) Info {
	return Info{Total: itemCount, CurrentPage: 1, TotalPages: 1, PageSize: itemCount}
}

func (i Info) HasPrev() bool { return i.CurrentPage > 1 }
func (i Info) HasNext() bool { return i.CurrentPage < i.TotalPages }
func (i Info) Prev() int     { return i.CurrentPage - 1 }
func (i Info) Next() int     { return i.CurrentPage + 1 }

func firstOf(fallback int, values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return fallback
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 1
	}
	return (a + b - 1) / b
}
