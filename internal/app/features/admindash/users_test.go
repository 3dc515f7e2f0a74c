package admindash_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/postline-app/console/internal/app/features/admindash"
	"github.com/postline-app/console/internal/testutil"
	"go.uber.org/zap"
)

func serveSafely(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func TestHandleCreateUser_AdminCannotAssignSuperuser(t *testing.T) {
	backend := testutil.NewBackend(t)
	h := admindash.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{
		"email":     {"new@example.com"},
		"full_name": {"New User"},
		"password":  {"longenough"},
		"role":      {"superuser"},
	}
	req := testutil.NewFormRequest("/admin/users", form, testutil.Admin())
	rec := testutil.NewRecorder()

	serveSafely(func() { h.HandleCreateUser(rec.ResponseRecorder, req) })

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if backend.CallCount() != 0 {
		t.Errorf("backend calls = %d, want 0", backend.CallCount())
	}
}

func TestHandleCreateUser_AdminForcedIntoOwnOrg(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond("POST /admin/users", http.StatusCreated, map[string]any{
		"id": 99, "email": "new@example.com", "full_name": "New User", "role": "editor", "is_active": true,
	})

	h := admindash.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{
		"email":           {"new@example.com"},
		"full_name":       {"New User"},
		"password":        {"longenough"},
		"role":            {"editor"},
		"organization_id": {"9"}, // forged; must be ignored
		"return":          {"/admin"},
	}
	req := testutil.NewFormRequest("/admin/users", form, testutil.Admin())
	rec := testutil.NewRecorder()

	h.HandleCreateUser(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/admin")

	calls := backend.CallsTo("/admin/users")
	if len(calls) != 1 {
		t.Fatalf("create calls = %d, want 1", len(calls))
	}
	var payload struct {
		OrganizationID *int64 `json:"organization_id"`
	}
	if err := json.Unmarshal(calls[0].Body, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.OrganizationID == nil || *payload.OrganizationID != 3 {
		t.Errorf("organization_id = %v, want 3", payload.OrganizationID)
	}
}

func TestHandleCreateUser_SuperuserMayLeaveUnscoped(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond("POST /admin/users", http.StatusCreated, map[string]any{
		"id": 99, "email": "new@example.com", "full_name": "New User", "role": "admin", "is_active": true,
	})

	h := admindash.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{
		"email":           {"new@example.com"},
		"full_name":       {"New User"},
		"password":        {"longenough"},
		"role":            {"admin"},
		"organization_id": {""},
		"return":          {"/admin"},
	}
	req := testutil.NewFormRequest("/admin/users", form, testutil.Superuser())
	rec := testutil.NewRecorder()

	h.HandleCreateUser(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/admin")

	calls := backend.CallsTo("/admin/users")
	if len(calls) != 1 {
		t.Fatalf("create calls = %d, want 1", len(calls))
	}
	if strings.Contains(string(calls[0].Body), "organization_id") {
		t.Errorf("unscoped create must omit organization_id entirely: %s", calls[0].Body)
	}
}

func TestHandleCreateUser_BackendRejectionRerendersForm(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.RespondDetail("POST /admin/users", http.StatusBadRequest, "Email already registered")

	h := admindash.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{
		"email":     {"dup@example.com"},
		"full_name": {"Dup User"},
		"password":  {"longenough"},
		"role":      {"viewer"},
	}
	req := testutil.NewFormRequest("/admin/users", form, testutil.Admin())
	rec := testutil.NewRecorder()

	serveSafely(func() { h.HandleCreateUser(rec.ResponseRecorder, req) })

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestHandleUpdateUser_SendsOnlyChangedFields(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond("GET /admin/users", http.StatusOK, []map[string]any{
		{"id": 42, "email": "u@example.com", "full_name": "A User", "role": "editor", "is_active": true},
	})
	backend.Respond("PUT /admin/users/42", http.StatusOK, map[string]any{
		"id": 42, "email": "u@example.com", "full_name": "A User", "role": "viewer", "is_active": true,
	})

	h := admindash.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{
		"full_name": {"A User"},
		"role":      {"viewer"},
		"is_active": {"on"},
		"return":    {"/admin"},
	}
	req := testutil.NewFormRequest("/admin/users/42", form, testutil.Admin())
	req = testutil.WithChiURLParam(req, "userID", "42")
	rec := testutil.NewRecorder()

	h.HandleUpdateUser(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/admin")

	calls := backend.CallsTo("/admin/users/42")
	if len(calls) != 1 {
		t.Fatalf("update calls = %d, want 1", len(calls))
	}
	body := string(calls[0].Body)
	if !strings.Contains(body, `"role":"viewer"`) {
		t.Errorf("payload missing role change: %s", body)
	}
	if strings.Contains(body, "full_name") || strings.Contains(body, "is_active") {
		t.Errorf("unchanged fields must be absent: %s", body)
	}
}

func TestHandleUpdateUser_NoChangesSkipsBackendWrite(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond("GET /admin/users", http.StatusOK, []map[string]any{
		{"id": 42, "email": "u@example.com", "full_name": "A User", "role": "editor", "is_active": true},
	})

	h := admindash.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{
		"full_name": {"A User"},
		"role":      {"editor"},
		"is_active": {"on"},
		"return":    {"/admin"},
	}
	req := testutil.NewFormRequest("/admin/users/42", form, testutil.Admin())
	req = testutil.WithChiURLParam(req, "userID", "42")
	rec := testutil.NewRecorder()

	h.HandleUpdateUser(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/admin")
	if calls := backend.CallsTo("/admin/users/42"); len(calls) != 0 {
		t.Errorf("update calls = %d, want 0", len(calls))
	}
}

func TestHandleDeactivateUser_Success(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond("GET /admin/users", http.StatusOK, []map[string]any{
		{"id": 42, "email": "u@example.com", "full_name": "A User", "role": "editor", "is_active": true},
	})
	backend.Respond("DELETE /admin/users/42", http.StatusNoContent, nil)

	h := admindash.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{"return": {"/admin"}}
	req := testutil.NewFormRequest("/admin/users/42/deactivate", form, testutil.Admin())
	req = testutil.WithChiURLParam(req, "userID", "42")
	rec := testutil.NewRecorder()

	h.HandleDeactivateUser(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/admin")

	if calls := backend.CallsTo("/admin/users/42"); len(calls) != 1 || calls[0].Method != http.MethodDelete {
		t.Errorf("expected one DELETE, got %+v", calls)
	}
}

func TestHandleDeactivateUser_SelfIsRefused(t *testing.T) {
	backend := testutil.NewBackend(t)
	admin := testutil.Admin()
	backend.Respond("GET /admin/users", http.StatusOK, []map[string]any{
		{"id": admin.ID, "email": admin.Email, "full_name": admin.Name, "role": "admin", "is_active": true},
	})

	h := admindash.NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{"return": {"/admin"}}
	req := testutil.NewFormRequest("/admin/users/10/deactivate", form, admin)
	req = testutil.WithChiURLParam(req, "userID", "10")
	rec := testutil.NewRecorder()

	serveSafely(func() { h.HandleDeactivateUser(rec.ResponseRecorder, req) })

	rec.AssertStatus(t, http.StatusForbidden)

	for _, c := range backend.Calls() {
		if c.Method == http.MethodDelete {
			t.Error("no DELETE should reach the backend")
		}
	}
}

func TestServeEditUser_UnknownUserIs404(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond("GET /admin/users", http.StatusOK, []map[string]any{})

	h := admindash.NewHandler(backend.Client(), zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/admin/users/7/edit", testutil.Admin())
	req = testutil.WithChiURLParam(req, "userID", "7")
	rec := testutil.NewRecorder()

	h.ServeEditUser(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
