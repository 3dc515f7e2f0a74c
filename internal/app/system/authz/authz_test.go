package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/postline-app/console/internal/app/system/auth"
	"github.com/postline-app/console/internal/app/system/authz"
)

func TestUserCtx_Anonymous(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	role, name, id, ok := authz.UserCtx(r)
	if ok {
		t.Fatal("expected ok=false for anonymous request")
	}
	if role != "visitor" || name != "" || id != 0 {
		t.Errorf("got role=%q name=%q id=%d", role, name, id)
	}
}

func TestUserCtx_NormalizesRole(t *testing.T) {
	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: 3, Name: "Eve", Role: "SuperUser"})
	role, name, id, ok := authz.UserCtx(r)
	if !ok || role != "superuser" || name != "Eve" || id != 3 {
		t.Errorf("got role=%q name=%q id=%d ok=%v", role, name, id, ok)
	}
}

func TestIsSuperuser(t *testing.T) {
	su := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: 1, Role: "superuser"})
	admin := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: 2, Role: "admin"})

	if !authz.IsSuperuser(su) {
		t.Error("superuser not recognized")
	}
	if authz.IsSuperuser(admin) {
		t.Error("admin must not be superuser")
	}
	if !authz.IsAdmin(su) || !authz.IsAdmin(admin) {
		t.Error("both superuser and admin are admins")
	}
}

func TestHasAnyRole(t *testing.T) {
	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: 1, Role: "editor"})
	if !authz.HasAnyRole(r, "admin", "Editor") {
		t.Error("expected editor to match")
	}
	if authz.HasAnyRole(r, "admin", "viewer") {
		t.Error("expected no match")
	}
	if authz.HasAnyRole(httptest.NewRequest("GET", "/", nil), "admin") {
		t.Error("anonymous must never match")
	}
}
