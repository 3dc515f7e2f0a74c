// internal/app/api/client.go
//
// Package api is the console's client for the Postline REST backend. It is
// the only data plane the console has: every entity rendered by a feature
// is fetched through here, and every mutation is posted through here.
//
// The bearer credential is supplied per request by a CredentialProvider so
// the client itself holds no user state and a single client instance can
// serve every session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CredentialProvider supplies the bearer token for an outgoing request.
// The second return value is false when the context carries no credential
// (e.g. the login request itself).
type CredentialProvider interface {
	BearerToken(ctx context.Context) (string, bool)
}

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialProvider
	log     *zap.Logger
}

// New constructs a Client for the given base URL (e.g.
// "http://localhost:8000/api"). creds may be nil for an unauthenticated
// client, which is only useful in tests.
func New(baseURL string, creds CredentialProvider, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		creds:   creds,
		log:     logger,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping reports whether the backend is reachable. Any HTTP response counts
// as reachable; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("api: build ping request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: ping: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

// get issues a GET request and decodes the 2xx response body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// do issues one request. A non-nil body is sent as JSON; a non-nil out
// receives the decoded 2xx response. Non-2xx responses come back as
// *Error; transport failures are returned wrapped and are distinguishable
// from backend rejections.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.creds != nil {
		if tok, ok := c.creds.BearerToken(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		c.log.Debug("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail))
		return apiErr
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeError turns a non-2xx response into *Error. The backend reports
// business errors as {"detail": "..."}; anything else (HTML error pages,
// proxies, validation arrays) collapses to an empty detail so callers fall
// back to their generic message.
func decodeError(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Detail == nil {
		return apiErr
	}
	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err != nil {
		// Detail was not a plain string (e.g. a validation error array).
		return apiErr
	}
	apiErr.Detail = detail
	return apiErr
}
