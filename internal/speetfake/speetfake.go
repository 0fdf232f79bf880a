// Package speetfake is an in-memory SPEET REST API for tests.
package speetfake

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	// APIPrefix is where the fake mounts its routes, matching the real base URL
	APIPrefix = "/api/v1"
	// DefaultOTP is the code every forgot-password request "emails"
	DefaultOTP = "123456"
	timeLayout = time.RFC3339
)

type Call struct {
	Method string
	Path   string
	Auth   string
}

type account struct {
	UserID   string
	Email    string
	Password string
	Role     string
}

// Backend holds all state behind the fake API. It is safe for concurrent use.
type Backend struct {
	mu sync.Mutex

	server   *httptest.Server
	calls    []Call
	seq      int
	now      time.Time
	accounts map[string]*account // by email
	tokens   map[string]string   // access token -> user ID
	otps     map[string]string   // email -> pending code

	users      []map[string]any
	badges     []map[string]any
	categories []map[string]any
	interests  []map[string]any
	reports    []map[string]any

	// BareCategories makes GET /interest/categories return a plain array and ignore paging
	BareCategories bool
	// Fail forces the next matching "METHOD /path" to answer with the given status
	fail map[string]failure
}

type failure struct {
	status  int
	message string
}

// Start runs the fake on an httptest server that is closed with the test.
func Start(t testing.TB) *Backend {
	t.Helper()
	b := New()
	b.server = httptest.NewServer(b.Handler())
	t.Cleanup(b.server.Close)
	return b
}

func New() *Backend {
	return &Backend{
		now:      time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		otps:     make(map[string]string),
		fail:     make(map[string]failure),
	}
}

// URL is the API base URL, including the version prefix.
func (b *Backend) URL() string {
	return b.server.URL + APIPrefix
}

func (b *Backend) Client() *http.Client {
	return b.server.Client()
}

func (b *Backend) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+APIPrefix+"/auth/login", b.login)
	mux.HandleFunc("POST "+APIPrefix+"/auth/forgot-password", b.forgotPassword)
	mux.HandleFunc("POST "+APIPrefix+"/auth/reset-password", b.resetPassword)

	mux.HandleFunc("GET "+APIPrefix+"/user/all-user", b.authed(b.listUsers))
	mux.HandleFunc("GET "+APIPrefix+"/user/single-user/{id}", b.authed(b.getUser))

	mux.HandleFunc("GET "+APIPrefix+"/badges/{$}", b.authed(b.listBadges))
	mux.HandleFunc("POST "+APIPrefix+"/badges/{$}", b.authed(b.createBadge))
	mux.HandleFunc("GET "+APIPrefix+"/badges/{id}", b.authed(b.getBadge))
	mux.HandleFunc("PUT "+APIPrefix+"/badges/{id}", b.authed(b.updateBadge))
	mux.HandleFunc("DELETE "+APIPrefix+"/badges/{id}", b.authed(b.deleteBadge))

	mux.HandleFunc("GET "+APIPrefix+"/interest/categories", b.authed(b.listCategories))
	mux.HandleFunc("POST "+APIPrefix+"/interest/create-category", b.authed(b.createCategory))
	mux.HandleFunc("PATCH "+APIPrefix+"/interest/category/{id}", b.authed(b.updateCategory))
	mux.HandleFunc("DELETE "+APIPrefix+"/interest/category/{id}", b.authed(b.deleteCategory))
	mux.HandleFunc("GET "+APIPrefix+"/interest/{$}", b.authed(b.listInterests))
	mux.HandleFunc("POST "+APIPrefix+"/interest/create-interest", b.authed(b.createInterest))
	mux.HandleFunc("PATCH "+APIPrefix+"/interest/update-interest/{id}", b.authed(b.updateInterest))
	mux.HandleFunc("DELETE "+APIPrefix+"/interest/delete-interest/{id}", b.authed(b.deleteInterest))

	mux.HandleFunc("GET "+APIPrefix+"/reports/{$}", b.authed(b.listReports))
	mux.HandleFunc("POST "+APIPrefix+"/reports/{$}", b.authed(b.createReport))
	mux.HandleFunc("GET "+APIPrefix+"/reports/{id}", b.authed(b.getReport))
	mux.HandleFunc("PUT "+APIPrefix+"/reports/{id}", b.authed(b.updateReport))
	mux.HandleFunc("PATCH "+APIPrefix+"/reports/{id}/resolve", b.authed(b.resolveReport))
	mux.HandleFunc("DELETE "+APIPrefix+"/reports/{id}", b.authed(b.deleteReport))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, APIPrefix)
		b.mu.Lock()
		b.calls = append(b.calls, Call{Method: r.Method, Path: path, Auth: r.Header.Get("Authorization")})
		f, failing := b.fail[r.Method+" "+path]
		if failing {
			delete(b.fail, r.Method+" "+path)
		}
		b.mu.Unlock()

		if failing {
			writeError(w, f.status, f.message)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// FailNext makes the next call to method and path (without the version prefix) fail.
func (b *Backend) FailNext(method, path string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[method+" "+path] = failure{status: status, message: message}
}

func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.calls)
}

// Count returns how many calls matched method and path.
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

// AddAccount registers credentials that POST /auth/login accepts.
func (b *Backend) AddAccount(userID, email, password, role string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[email] = &account{UserID: userID, Email: email, Password: password, Role: role}
}

// Password returns the current password of an account.
func (b *Backend) Password(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if a, ok := b.accounts[email]; ok {
		return a.Password
	}
	return ""
}

// RevokeTokens makes every issued access token answer 401 from now on.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.tokens)
}

// Issue returns a valid access token for userID without a login call.
func (b *Backend) Issue(userID string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	token := fmt.Sprintf("access-%s-%d", userID, b.seq)
	b.tokens[token] = userID
	return token
}

func (b *Backend) nextID(kind string) string {
	b.seq++
	return fmt.Sprintf("%s-%d", kind, b.seq)
}

func (b *Backend) stamp() string {
	b.now = b.now.Add(time.Minute)
	return b.now.Format(timeLayout)
}

func (b *Backend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		_, valid := b.tokens[token]
		b.mu.Unlock()
		if !ok || !valid {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"statusCode": status,
		"success":    true,
		"message":    message,
		"data":       data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"statusCode": status,
		"success":    false,
		"message":    message,
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// page slices items by the page/limit query, defaulting to everything on one page.
func page(r *http.Request, items []map[string]any) ([]map[string]any, int, int, int) {
	total := len(items)
	current, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if current < 1 {
		current = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = max(total, 1)
	}
	pages := (total + limit - 1) / limit
	start := min((current-1)*limit, total)
	end := min(start+limit, total)
	return slices.Clone(items[start:end]), current, pages, limit
}

func find(items []map[string]any, id string) (int, map[string]any) {
	for i, item := range items {
		if item["_id"] == id {
			return i, item
		}
	}
	return -1, nil
}
