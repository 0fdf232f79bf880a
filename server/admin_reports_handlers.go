package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/internal/pagination"
	"github.com/jrsteele09/speet-admin/reports"
)

// Upload limits for report attachments
const (
	maxAttachmentSize = 5 << 20
	maxUploadMemory   = 32 << 20
)

// ReportsPageData is the model of the report list
type ReportsPageData struct {
	Reports    []reports.Report
	Pagination pagination.Info
	Query      string
	Status     string
	Statuses   []string
}

// AdminReportsListHandler lists one page of reports, filtered on the page
func (s *Server) AdminReportsListHandler() http.HandlerFunc {
	return s.adminPage(func(w http.ResponseWriter, r *http.Request, a adminRequest) {
		q := r.URL.Query()
		data := ReportsPageData{
			Query:    strings.TrimSpace(q.Get("q")),
			Status:   q.Get("status"),
			Statuses: []string{reports.StatusAll, string(reports.StatusPending), string(reports.StatusResolved)},
		}
		if data.Status == "" {
			data.Status = reports.StatusAll
		}

		page, err := reports.NewService(a.api, a.cache).List(r.Context(), s.pageParams(r))
		if err == nil {
			data.Reports = reports.Filter(page.Reports, data.Query, data.Status)
			data.Pagination = page.Pagination
		}
		s.renderAdminPage(w, r, a, "reports", "Reports", "admin_reports_content.html", data, err)
	})
}

// AdminReportHandler shows one report with its attachments
func (s *Server) AdminReportHandler() http.HandlerFunc {
	return s.adminPage(func(w http.ResponseWriter, r *http.Request, a adminRequest) {
		report, err := reports.NewService(a.api, a.cache).Get(r.Context(), r.PathValue("id"))
		if err != nil {
			s.renderAdminPage(w, r, a, "reports", "Report", "admin_report_content.html", nil, err)
			return
		}
		s.renderAdminPage(w, r, a, "reports", report.Name, "admin_report_content.html", report, nil)
	})
}

// AdminReportCreateHandler files a report with its uploaded attachments
func (s *Server) AdminReportCreateHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminReports, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		attachments, err := readAttachments(r)
		if err != nil {
			return "", err
		}
		_, err = reports.NewService(a.api, a.cache).Create(ctx, reports.CreateInput{
			Name:        r.FormValue("name"),
			Message:     r.FormValue("message"),
			Attachments: attachments,
		})
		if err != nil {
			return "", err
		}
		return "Report created", nil
	})
}

func (s *Server) AdminReportUpdateHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminReports, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		_, err := reports.NewService(a.api, a.cache).Update(ctx, r.PathValue("id"), reports.UpdateInput{
			Name:    strings.TrimSpace(r.FormValue("name")),
			Message: strings.TrimSpace(r.FormValue("message")),
			Status:  reports.Status(r.FormValue("status")),
		})
		if err != nil {
			return "", err
		}
		return "Report updated", nil
	})
}

func (s *Server) AdminReportResolveHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminReports, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		if _, err := reports.NewService(a.api, a.cache).Resolve(ctx, r.PathValue("id")); err != nil {
			return "", err
		}
		return "Report resolved", nil
	})
}

func (s *Server) AdminReportDeleteHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminReports, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		if err := reports.NewService(a.api, a.cache).Delete(ctx, r.PathValue("id")); err != nil {
			return "", err
		}
		return "Report deleted", nil
	})
}

func readAttachments(r *http.Request) ([]reports.Attachment, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			if err == http.ErrNotMultipart {
				return nil, nil
			}
			return nil, apperrors.NewValidationError("attachment", "could not read the upload")
		}
	}
	var out []reports.Attachment
	for _, fh := range r.MultipartForm.File["attachment"] {
		if fh.Size > maxAttachmentSize {
			return nil, apperrors.NewValidationError("attachment", fh.Filename+" is too large")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, apperrors.Wrapf(err, "open %s", fh.Filename)
		}
		data, err := io.ReadAll(io.LimitReader(f, maxAttachmentSize))
		f.Close()
		if err != nil {
			return nil, apperrors.Wrapf(err, "read %s", fh.Filename)
		}
		out = append(out, reports.Attachment{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return out, nil
}
