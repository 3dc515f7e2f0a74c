// internal/app/features/admindash/handler.go
package admindash

import (
	"context"
	"net/http"
	"sync"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/postline-app/console/internal/app/api"
	uierrors "github.com/postline-app/console/internal/app/features/errors"
	"github.com/postline-app/console/internal/app/system/auth"
	"github.com/postline-app/console/internal/app/system/timeouts"
	"github.com/postline-app/console/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the admin dashboard: user management, the activity feed,
// and the stats snapshot.
type Handler struct {
	Log     *zap.Logger
	Backend *api.Client
}

func NewHandler(backend *api.Client, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Backend: backend}
}

// DashboardData is one load of everything the dashboard shows.
//
// Users are authoritative: if they cannot be loaded the whole page fails.
// Activity, stats, and the org list degrade independently; their
// Unavailable flags drive the "couldn't load" notices in the view.
type DashboardData struct {
	Users         []models.User
	Activity      []models.ActivityEntry
	Stats         models.Stats
	Organizations []models.Organization

	ActivityUnavailable bool
	StatsUnavailable    bool
	OrgsUnavailable     bool

	// OrgFilter is the effective organization scope ("" = all).
	OrgFilter string
}

// Load fetches the dashboard sections concurrently for one user.
//
// Admins are always scoped to their own organization regardless of
// orgFilter; only superusers may widen or move the scope. The returned
// error is the users fetch error, which callers must map to either an
// access-denied page (403) or a generic failure.
func (h *Handler) Load(ctx context.Context, su *auth.SessionUser, orgFilter string) (*DashboardData, error) {
	scope := orgFilter
	if !su.IsSuperuser() {
		scope = su.OrganizationID
	}
	if scope == "all" {
		scope = ""
	}

	data := &DashboardData{OrgFilter: scope}

	var (
		wg       sync.WaitGroup
		usersErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		data.Users, usersErr = h.Backend.ListUsers(ctx, scope)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		entries, err := h.Backend.ListActivity(ctx, api.ActivityLimit, scope)
		if err != nil {
			h.Log.Warn("admin: activity load failed", zap.Error(err))
			data.ActivityUnavailable = true
			return
		}
		data.Activity = entries
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		stats, err := h.Backend.GetStats(ctx, scope)
		if err != nil {
			h.Log.Warn("admin: stats load failed", zap.Error(err))
			data.StatsUnavailable = true
			return
		}
		data.Stats = stats
	}()

	if su.IsSuperuser() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			orgs, err := h.Backend.ListOrganizations(ctx)
			if err != nil {
				h.Log.Warn("admin: organization list failed", zap.Error(err))
				data.OrgsUnavailable = true
				return
			}
			data.Organizations = orgs
		}()
	}

	wg.Wait()

	if usersErr != nil {
		return nil, usersErr
	}
	return data, nil
}

// ServeDashboard handles GET /admin.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	// Aggregate load: several concurrent reads share this deadline.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	data, err := h.Load(ctx, su, query.Get(r, "organization_id"))
	if err != nil {
		if api.IsForbidden(err) {
			uierrors.RenderForbidden(w, r, "You don't have access to the admin dashboard.", "/dashboard")
			return
		}
		h.Log.Error("admin: user list load failed", zap.Error(err))
		uierrors.RenderError(w, r, "The admin dashboard could not be loaded. Please try again.", "/dashboard")
		return
	}

	tab := query.Get(r, "tab")
	switch tab {
	case "activity", "stats":
	default:
		tab = "users"
	}

	vm := newDashboardVM(w, r, su, data, tab)
	templates.Render(w, r, "admin_dashboard", vm)
}
