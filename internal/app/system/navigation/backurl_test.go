package navigation_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/postline-app/console/internal/app/system/navigation"
)

func TestSafeBackURL_ValidReturn(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/users/3/edit?return=/admin", nil)
	got := navigation.SafeBackURL(r, navigation.AdminBackURL)
	if got != "/admin" {
		t.Errorf("got %q, want /admin", got)
	}
}

func TestSafeBackURL_RejectsWrongPrefix(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/users/new?return=/profile", nil)
	got := navigation.SafeBackURL(r, navigation.AdminBackURL)
	if got != "/admin" {
		t.Errorf("got %q, want fallback /admin", got)
	}
}

func TestSafeBackURL_RejectsExcludedSubpath(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin?return=/admin/users/3/deactivate", nil)
	got := navigation.SafeBackURL(r, navigation.AdminBackURL)
	if got != "/admin" {
		t.Errorf("got %q, want fallback /admin", got)
	}
}

func TestSafeBackURL_RejectsAbsoluteURL(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin?return="+url.QueryEscape("https://evil.example/admin"), nil)
	got := navigation.SafeBackURL(r, navigation.AdminBackURL)
	if strings.Contains(got, "evil.example") {
		t.Errorf("open redirect not rejected: %q", got)
	}
}

func TestSafeBackURL_PreservesOrgFilter(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/users/new?organization_id=7", nil)
	got := navigation.SafeBackURL(r, navigation.AdminBackURL)
	if got != "/admin?organization_id=7" {
		t.Errorf("got %q", got)
	}
}

func TestSafeBackURL_AllSentinelNotPreserved(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/users/new?organization_id=all", nil)
	got := navigation.SafeBackURL(r, navigation.AdminBackURL)
	if got != "/admin" {
		t.Errorf("got %q, want /admin", got)
	}
}

func TestSafeBackURL_FormValue(t *testing.T) {
	form := url.Values{"return": {"/profile"}}
	r := httptest.NewRequest(http.MethodPost, "/profile/password", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	got := navigation.SafeBackURL(r, navigation.ProfileBackURL)
	if got != "/profile" {
		t.Errorf("got %q", got)
	}
}
