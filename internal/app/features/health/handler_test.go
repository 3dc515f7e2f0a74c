package health_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/postline-app/console/internal/app/features/health"
	"github.com/postline-app/console/internal/testutil"
	"go.uber.org/zap"
)

func TestServe_BackendReachable(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond("GET /", http.StatusNotFound, nil) // any response counts

	h := health.NewHandler(backend.Client(), zap.NewNop())

	req := testutil.NewRequest(http.MethodGet, "/health")
	rec := testutil.NewRecorder()

	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp struct {
		Status  string `json:"status"`
		Backend string `json:"backend"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Status != "ok" || resp.Backend != "reachable" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestServe_BackendUnreachable(t *testing.T) {
	backend := testutil.NewBackend(t)
	client := backend.Client()
	// Shut the stub down so the ping hits a dead socket.
	backend.Close()

	h := health.NewHandler(client, zap.NewNop())

	req := testutil.NewRequest(http.MethodGet, "/health")
	rec := testutil.NewRecorder()

	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusServiceUnavailable)

	var resp struct {
		Status  string `json:"status"`
		Backend string `json:"backend"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Status != "error" || resp.Backend != "unreachable" {
		t.Errorf("resp = %+v", resp)
	}
}
