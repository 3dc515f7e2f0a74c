// internal/app/features/errors/routes.go
package errors

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the error pages.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/forbidden", h.Forbidden)
	r.Get("/unauthorized", h.Unauthorized)
	return r
}
