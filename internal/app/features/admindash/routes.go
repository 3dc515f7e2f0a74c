// internal/app/features/admindash/routes.go
package admindash

import (
	"github.com/go-chi/chi/v5"
	"github.com/postline-app/console/internal/app/system/auth"
)

// Routes returns a subrouter that serves the admin dashboard. The role
// gate here is a fast local check; the backend re-verifies every call.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRole("admin", "superuser"))

	r.Get("/", h.ServeDashboard)

	r.Get("/users/new", h.ServeNewUser)
	r.Post("/users", h.HandleCreateUser)
	r.Get("/users/{userID}/edit", h.ServeEditUser)
	r.Post("/users/{userID}", h.HandleUpdateUser)
	r.Get("/users/{userID}/deactivate", h.ServeDeactivateUser)
	r.Post("/users/{userID}/deactivate", h.HandleDeactivateUser)

	return r
}
