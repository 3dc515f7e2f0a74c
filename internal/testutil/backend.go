package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/postline-app/console/internal/app/api"
	"github.com/postline-app/console/internal/app/system/auth"
	"go.uber.org/zap"
)

// RecordedCall is one request the stub backend received.
type RecordedCall struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// BackendStub is a fake REST backend for handler tests. Tests register
// responses per "METHOD /path" route, run the handler under test, and
// then inspect which calls reached the backend and with what payloads.
// Re-registering a route replaces the earlier response, so tests can
// start from a happy-path fixture and break one endpoint.
type BackendStub struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    []RecordedCall
}

// NewBackend starts a stub backend that shuts down with the test.
func NewBackend(t *testing.T) *BackendStub {
	t.Helper()

	b := &BackendStub{t: t, handlers: map[string]http.HandlerFunc{}}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.calls = append(b.calls, RecordedCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		fn := b.handlers[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if fn == nil {
			http.NotFound(w, r)
			return
		}
		fn(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

// URL returns the stub's base URL.
func (b *BackendStub) URL() string { return b.srv.URL }

// Close shuts the stub down early. Tests use this to simulate an
// unreachable backend; normal shutdown happens via t.Cleanup.
func (b *BackendStub) Close() { b.srv.Close() }

// Client returns an API client pointed at the stub. Credentials come from
// the request context, the same way production wires them.
func (b *BackendStub) Client() *api.Client {
	return api.New(b.srv.URL, auth.Credentials{}, zap.NewNop())
}

// Respond registers a JSON response for a "METHOD /path" route.
func (b *BackendStub) Respond(route string, status int, payload any) {
	b.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if payload != nil {
			_ = json.NewEncoder(w).Encode(payload)
		}
	})
}

// RespondDetail registers an error response with the backend's
// {"detail": "..."} body shape.
func (b *BackendStub) RespondDetail(route string, status int, detail string) {
	b.Respond(route, status, map[string]string{"detail": detail})
}

// HandleFunc registers a raw handler for full control over the response.
func (b *BackendStub) HandleFunc(route string, fn http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[route] = fn
}

// Calls returns every request the stub has received so far.
func (b *BackendStub) Calls() []RecordedCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedCall, len(b.calls))
	copy(out, b.calls)
	return out
}

// CallsTo returns the requests received for one path.
func (b *BackendStub) CallsTo(path string) []RecordedCall {
	var out []RecordedCall
	for _, c := range b.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// CallCount returns the total number of requests received.
func (b *BackendStub) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}
