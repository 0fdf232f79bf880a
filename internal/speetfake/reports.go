package speetfake

import (
	"net/http"
	"slices"
)

// AddReport stores a raw report record and returns its ID. Missing _id and
// timestamps are filled in.
func (b *Backend) AddReport(report map[string]any) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := report["_id"]; !ok {
		report["_id"] = b.nextID("report")
	}
	if _, ok := report["createdAt"]; !ok {
		stamp := b.stamp()
		report["createdAt"], report["updatedAt"] = stamp, stamp
	}
	b.reports = append(b.reports, report)
	return report["_id"].(string)
}

func (b *Backend) Report(id string) map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, report := find(b.reports, id)
	return report
}

func (b *Backend) listReports(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	items, current, pages, limit := page(r, b.reports)
	total := len(b.reports)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, "Reports retrieved", map[string]any{
		"reports": items,
		"pagination": map[string]any{
			"totalReports": total,
			"currentPage":  current,
			"totalPages":   pages,
			"pageSize":     limit,
		},
	})
}

func (b *Backend) createReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Expected multipart form")
		return
	}
	name, message := r.FormValue("name"), r.FormValue("message")
	if name == "" || message == "" {
		writeError(w, http.StatusBadRequest, "Name and message are required")
		return
	}
	var attachments []string
	for _, fh := range r.MultipartForm.File["attachment"] {
		attachments = append(attachments, "https://cdn.speet.test/"+fh.Filename)
	}

	b.mu.Lock()
	userID := b.tokens[bearer(r)]
	reporter := map[string]any{"_id": userID}
	for _, a := range b.accounts {
		if a.UserID == userID {
			reporter["email"] = a.Email
		}
	}
	stamp := b.stamp()
	report := map[string]any{
		"_id":       b.nextID("report"),
		"name":      name,
		"message":   message,
		"reportBy":  reporter,
		"status":    "pending",
		"createdAt": stamp,
		"updatedAt": stamp,
	}
	if len(attachments) == 1 {
		report["attachment"] = attachments[0]
	} else if len(attachments) > 1 {
		report["attachment"] = attachments
	}
	b.reports = append(b.reports, report)
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, "Report created", report)
}

func (b *Backend) getReport(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	_, report := find(b.reports, r.PathValue("id"))
	b.mu.Unlock()
	if report == nil {
		writeError(w, http.StatusNotFound, "Report not found")
		return
	}
	writeJSON(w, http.StatusOK, "Report retrieved", report)
}

func (b *Backend) updateReport(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, report := find(b.reports, r.PathValue("id"))
	if report == nil {
		writeError(w, http.StatusNotFound, "Report not found")
		return
	}
	for _, field := range []string{"name", "message", "status"} {
		if v, ok := body[field].(string); ok && v != "" {
			report[field] = v
		}
	}
	report["updatedAt"] = b.stamp()
	writeJSON(w, http.StatusOK, "Report updated", report)
}

func (b *Backend) resolveReport(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, report := find(b.reports, r.PathValue("id"))
	if report == nil {
		writeError(w, http.StatusNotFound, "Report not found")
		return
	}
	report["status"] = "resolved"
	report["updatedAt"] = b.stamp()
	writeJSON(w, http.StatusOK, "Report resolved", report)
}

func (b *Backend) deleteReport(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, _ := find(b.reports, r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Report not found")
		return
	}
	b.reports = slices.Delete(b.reports, i, i+1)
	writeJSON(w, http.StatusOK, "Report deleted", nil)
}

func bearer(r *http.Request) string {
	token := r.Header.Get("Authorization")
	if len(token) > 7 {
		return token[7:]
	}
	return ""
}
