package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/postline-app/console/internal/app/system/auth"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestSignIn_RoundTrip(t *testing.T) {
	sm := newManager(t)

	// Sign in and capture the cookie.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	user := &auth.SessionUser{
		ID:    7,
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  "admin",
		Token: "bearer-abc",
	}
	if err := sm.SignIn(rec, req, user); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	// Replay the cookie through the middleware.
	var got *auth.SessionUser
	h := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	req2 := httptest.NewRequest("GET", "/admin", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != 7 || got.Role != "admin" || got.Token != "bearer-abc" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestSignOut_ClearsSession(t *testing.T) {
	sm := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	_ = sm.SignIn(rec, req, &auth.SessionUser{ID: 1, Role: "viewer"})
	cookies := rec.Result().Cookies()

	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest("POST", "/logout", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	if err := sm.SignOut(rec2, req2); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	found := false
	for _, c := range rec2.Result().Cookies() {
		if c.MaxAge < 0 {
			found = true
		}
	}
	if !found {
		t.Error("expected session cookie to be expired")
	}
}

func TestRequireSignedIn_RedirectsHTML(t *testing.T) {
	sm := newManager(t)
	h := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for anonymous user")
	}))

	req := httptest.NewRequest("GET", "/admin?org=3", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login?return=") {
		t.Errorf("location: got %q", loc)
	}
}

func TestRequireRole_WrongRoleForbidden(t *testing.T) {
	sm := newManager(t)
	h := sm.RequireRole("admin", "superuser")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for viewer")
	}))

	req := auth.WithTestUser(httptest.NewRequest("GET", "/admin", nil), &auth.SessionUser{ID: 2, Role: "viewer"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
}

func TestRequireRole_AllowsMatch(t *testing.T) {
	sm := newManager(t)
	ran := false
	h := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	req := auth.WithTestUser(httptest.NewRequest("GET", "/admin", nil), &auth.SessionUser{ID: 2, Role: "Admin"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !ran {
		t.Error("expected handler to run for admin")
	}
}

func TestCredentials_ReadFromContext(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: 1, Token: "tok-9"})

	tok, ok := auth.Credentials{}.BearerToken(req.Context())
	if !ok || tok != "tok-9" {
		t.Errorf("BearerToken: got %q, %v", tok, ok)
	}

	if _, ok := (auth.Credentials{}).BearerToken(context.Background()); ok {
		t.Error("expected no token on empty context")
	}
}
