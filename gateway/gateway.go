// Package gateway is the single path from the dashboard to the SPEET REST API.
//
// A Gateway is bound to one browser's session context. It attaches the
// session's bearer token, refuses to send authenticated requests when there is
// no session, and clears the session when the API answers 401.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/sessions"
	"github.com/rs/zerolog/log"
)

const maxResponseBytes = 10 << 20

// SessionContext is the per-browser session the gateway reads tokens from.
// *sessions.Handle satisfies it.
type SessionContext interface {
	Current(ctx context.Context) (sessions.Session, bool)
	Clear(ctx context.Context) error
}

// Requester sends a request and decodes the envelope's data into out.
type Requester interface {
	Do(ctx context.Context, req Request, out any) error
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is sent as JSON when non-nil
	Body any
	// Form is sent as multipart/form-data when non-nil. It takes precedence over Body.
	Form *MultipartForm
	// Public requests may be sent without a session, e.g. login
	Public bool
}

// Client holds the connection settings shared by every Gateway.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// For binds a Gateway to a browser's session context.
func (c *Client) For(session SessionContext) *Gateway {
	return &Gateway{client: c, session: session}
}

// Public returns a Gateway with no session. Only Public requests succeed through it.
func (c *Client) Public() *Gateway {
	return &Gateway{client: c}
}

type Gateway struct {
	client  *Client
	session SessionContext
}

var _ Requester = (*Gateway)(nil)

func (g *Gateway) Do(ctx context.Context, req Request, out any) error {
	var (
		session       sessions.Session
		authenticated bool
	)
	if g.session != nil {
		session, authenticated = g.session.Current(ctx)
	}
	if !authenticated && !req.Public {
		log.Debug().Str("method", req.Method).Str("path", req.Path).Msg("no session, request not sent")
		return apperrors.ErrUnauthorized
	}

	httpReq, err := g.client.newRequest(ctx, req)
	if err != nil {
		return apperrors.NewRequestError(0, "", err)
	}
	if authenticated {
		session.Token().SetAuthHeader(httpReq)
	}

	start := time.Now()
	resp, err := g.client.http.Do(httpReq)
	if err != nil {
		log.Err(err).Str("method", req.Method).Str("path", req.Path).Msg("speet api request failed")
		return apperrors.NewRequestError(0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Err(err).Str("method", req.Method).Str("path", req.Path).Msg("reading speet api response")
		return apperrors.NewRequestError(resp.StatusCode, "", err)
	}
	log.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("speet api")

	if resp.StatusCode == http.StatusUnauthorized && authenticated {
		log.Warn().Str("method", req.Method).Str("path", req.Path).Str("userId", session.UserID).Msg("speet api rejected session token")
		if err := g.session.Clear(ctx); err != nil {
			log.Err(err).Msg("clearing rejected session")
		}
		return apperrors.ErrUnauthorized
	}
	return decodeResponse(resp.StatusCode, body, out)
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Form != nil:
		data, ct, err := req.Form.encode()
		if err != nil {
			return nil, err
		}
		body, contentType = bytes.NewReader(data), ct
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

// Pathf builds a request path, escaping every argument as a path segment.
func Pathf(format string, args ...string) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(a)
	}
	return fmt.Sprintf(format, escaped...)
}

// IsUnauthorized reports whether err means the browser must log in again.
func IsUnauthorized(err error) bool {
	return errors.Is(err, apperrors.ErrUnauthorized)
}
