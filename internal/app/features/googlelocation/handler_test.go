package googlelocation_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/postline-app/console/internal/app/features/googlelocation"
	"github.com/postline-app/console/internal/testutil"
	"go.uber.org/zap"
)

func serveSafely(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func TestServeLocations_MissingTokenMakesNoBackendCall(t *testing.T) {
	backend := testutil.NewBackend(t)
	h := googlelocation.NewHandler(backend.Client(), zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/social/google-business/locations", testutil.Editor())
	rec := testutil.NewRecorder()

	serveSafely(func() { h.ServeLocations(rec.ResponseRecorder, req) })

	if backend.CallCount() != 0 {
		t.Errorf("backend calls = %d, want 0", backend.CallCount())
	}
	rec.AssertStatus(t, http.StatusInternalServerError)
}

func TestServeLocations_ResolvesToken(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond("GET /social/google-locations/tok-abc", http.StatusOK, map[string]any{
		"locations": []map[string]string{
			{"id": "loc-1", "name": "Main Street Store"},
			{"id": "loc-2", "name": "Harbor Branch"},
		},
	})

	h := googlelocation.NewHandler(backend.Client(), zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/social/google-business/locations?token=tok-abc", testutil.Editor())
	rec := testutil.NewRecorder()

	serveSafely(func() { h.ServeLocations(rec.ResponseRecorder, req) })

	if calls := backend.CallsTo("/social/google-locations/tok-abc"); len(calls) != 1 {
		t.Errorf("resolve calls = %d, want 1", len(calls))
	}
}

func TestServeLocations_ExpiredTokenShowsError(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.RespondDetail("GET /social/google-locations/tok-old", http.StatusBadRequest, "Token expired")

	h := googlelocation.NewHandler(backend.Client(), zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/social/google-business/locations?token=tok-old", testutil.Editor())
	rec := testutil.NewRecorder()

	serveSafely(func() { h.ServeLocations(rec.ResponseRecorder, req) })

	rec.AssertStatus(t, http.StatusInternalServerError)
}

func TestHandleSelect_SuccessRedirectsWithBannerQuery(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond("POST /social/google-locations/tok-abc/select", http.StatusOK, map[string]bool{"success": true})

	h := googlelocation.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{"token": {"tok-abc"}, "location_id": {"loc-2"}}
	req := testutil.NewFormRequest("/social/google-business/locations/select", form, testutil.Editor())
	rec := testutil.NewRecorder()

	h.HandleSelect(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/dashboard?social_connected=google_business")

	calls := backend.CallsTo("/social/google-locations/tok-abc/select")
	if len(calls) != 1 {
		t.Fatalf("select calls = %d, want 1", len(calls))
	}
	if got := calls[0].Query.Get("location_id"); got != "loc-2" {
		t.Errorf("location_id = %q, want loc-2", got)
	}
}

func TestHandleSelect_BodySuccessFalseStaysOnSelection(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond("POST /social/google-locations/tok-abc/select", http.StatusOK, map[string]bool{"success": false})
	backend.Respond("GET /social/google-locations/tok-abc", http.StatusOK, map[string]any{
		"locations": []map[string]string{{"id": "loc-2", "name": "Harbor Branch"}},
	})

	h := googlelocation.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{"token": {"tok-abc"}, "location_id": {"loc-2"}}
	req := testutil.NewFormRequest("/social/google-business/locations/select", form, testutil.Editor())
	rec := testutil.NewRecorder()

	serveSafely(func() { h.HandleSelect(rec.ResponseRecorder, req) })

	if rec.Code == http.StatusSeeOther {
		t.Error("success=false must not redirect as connected")
	}
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	// The selection screen is re-rendered with the same token, so the
	// user can retry without restarting the connection.
	if calls := backend.CallsTo("/social/google-locations/tok-abc"); len(calls) != 1 {
		t.Errorf("resolve calls after failure = %d, want 1", len(calls))
	}
}

func TestHandleSelect_BackendRejectionStaysOnSelection(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.RespondDetail("POST /social/google-locations/tok-abc/select", http.StatusBadRequest, "Location already connected")
	backend.Respond("GET /social/google-locations/tok-abc", http.StatusOK, map[string]any{
		"locations": []map[string]string{{"id": "loc-2", "name": "Harbor Branch"}},
	})

	h := googlelocation.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{"token": {"tok-abc"}, "location_id": {"loc-2"}}
	req := testutil.NewFormRequest("/social/google-business/locations/select", form, testutil.Editor())
	rec := testutil.NewRecorder()

	serveSafely(func() { h.HandleSelect(rec.ResponseRecorder, req) })

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if calls := backend.CallsTo("/social/google-locations/tok-abc"); len(calls) != 1 {
		t.Errorf("resolve calls after failure = %d, want 1", len(calls))
	}
}

func TestHandleSelect_TokenExpiredDuringRetryIsTerminal(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond("POST /social/google-locations/tok-abc/select", http.StatusOK, map[string]bool{"success": false})
	backend.RespondDetail("GET /social/google-locations/tok-abc", http.StatusBadRequest, "Token expired")

	h := googlelocation.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{"token": {"tok-abc"}, "location_id": {"loc-2"}}
	req := testutil.NewFormRequest("/social/google-business/locations/select", form, testutil.Editor())
	rec := testutil.NewRecorder()

	serveSafely(func() { h.HandleSelect(rec.ResponseRecorder, req) })

	rec.AssertStatus(t, http.StatusInternalServerError)
}

func TestHandleSelect_MissingChoiceRedirectsBackWithoutBackendCall(t *testing.T) {
	backend := testutil.NewBackend(t)
	h := googlelocation.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{"token": {"tok-abc"}}
	req := testutil.NewFormRequest("/social/google-business/locations/select", form, testutil.Editor())
	rec := testutil.NewRecorder()

	serveSafely(func() { h.HandleSelect(rec.ResponseRecorder, req) })

	if backend.CallCount() != 0 {
		t.Errorf("backend calls = %d, want 0", backend.CallCount())
	}
	rec.AssertRedirect(t, "/social/google-business/locations?token=tok-abc")
}
