// Package reports manages reports users file against content or other users.
package reports

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/jrsteele09/speet-admin/internal/pagination"
	"github.com/jrsteele09/speet-admin/internal/utils"
	"github.com/rs/zerolog/log"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
)

// StatusAll disables status filtering
const StatusAll = "all"

// DefaultAvatar is used when the reporter has no avatar
const DefaultAvatar = "/img/avatar.svg"

type Reporter struct {
	ID     string
	Email  string
	Name   string
	Avatar string
}

type Report struct {
	ID          string
	Name        string
	Message     string
	Attachments []string
	Status      Status
	ReportBy    Reporter
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r Report) Resolved() bool {
	return r.Status == StatusResolved
}

type Page struct {
	Reports    []Report
	Pagination pagination.Info
}

// attachments accepts a single URL or a list of them.
type attachments []string

func (a *attachments) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*a = nil
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = attachments{s}
		return nil
	}
	var list []any
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*a = utils.ToStringSlice(list)
	return nil
}

type rawReporter struct {
	ID     string  `json:"_id"`
	Email  string  `json:"email"`
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

type rawReport struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Message string `json:"message"`
	// Older records use "attachment", newer ones "attachments"
	Attachment  attachments  `json:"attachment"`
	Attachments attachments  `json:"attachments"`
	Status      *string      `json:"status"`
	ReportBy    *rawReporter `json:"reportBy"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

type rawPage struct {
	Reports    []rawReport     `json:"reports"`
	Pagination *pagination.Raw `json:"pagination"`
}

func (r rawReport) normalize() Report {
	report := Report{
		ID:          r.ID,
		Name:        r.Name,
		Message:     r.Message,
		Attachments: append(append([]string{}, r.Attachment...), r.Attachments...),
		Status:      Status(utils.ValueOr(r.Status, string(StatusPending))),
		CreatedAt:   utils.ParseTime(r.CreatedAt),
		UpdatedAt:   utils.ParseTime(r.UpdatedAt),
	}
	if report.Status != StatusResolved {
		report.Status = StatusPending
	}
	if report.UpdatedAt.IsZero() {
		report.UpdatedAt = report.CreatedAt
	}

	by := utils.Value(r.ReportBy)
	report.ReportBy = Reporter{
		ID:     by.ID,
		Email:  by.Email,
		Name:   strings.TrimSpace(utils.Value(by.Name)),
		Avatar: strings.TrimSpace(utils.Value(by.Avatar)),
	}
	if report.ReportBy.Name == "" {
		report.ReportBy.Name, _, _ = strings.Cut(by.Email, "@")
	}
	if report.ReportBy.Avatar == "" {
		report.ReportBy.Avatar = DefaultAvatar
	}
	return report
}

func normalizeAll(raw []rawReport) []Report {
	out := make([]Report, 0, len(raw))
	for _, r := range raw {
		if r.ID == "" {
			log.Warn().Msg("dropping report record without an ID")
			continue
		}
		out = append(out, r.normalize())
	}
	return out
}

// Filter narrows a page of reports by a search over name, message and reporter
// email, and by status.
func Filter(reports []Report, query, status string) []Report {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		if query != "" &&
			!strings.Contains(strings.ToLower(r.Name), query) &&
			!strings.Contains(strings.ToLower(r.Message), query) &&
			!strings.Contains(strings.ToLower(r.ReportBy.Email), query) {
			continue
		}
		if status != "" && status != StatusAll && string(r.Status) != status {
			continue
		}
		out = append(out, r)
	}
	return out
}
