// internal/app/features/googlelocation/routes.go
package googlelocation

import (
	"github.com/go-chi/chi/v5"
	"github.com/postline-app/console/internal/app/system/auth"
)

// Routes returns a subrouter for the location-selection flow. Mounted
// under /social/google-business.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/locations", h.ServeLocations)
	r.Post("/locations/select", h.HandleSelect)

	return r
}
