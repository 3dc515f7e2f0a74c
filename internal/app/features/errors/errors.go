// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/postline-app/console/internal/app/system/viewdata"
)

// pageVM is the view model for error pages.
type pageVM struct {
	viewdata.BaseVM
	Message string
}

// Handler renders the standalone error pages.
// No backend access needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "You don't have permission to view this page.", "")
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	RenderUnauthorized(w, r, "")
}

// RenderForbidden shows an access error page with a message. If backURL is
// empty it falls back to the landing page.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = "/dashboard"
	}
	data := pageVM{
		BaseVM:  viewdata.NewBaseVM(w, r, "Access denied", backURL),
		Message: msg,
	}
	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_forbidden", data)
}

// RenderUnauthorized shows a "sign in required" page. If backURL is empty,
// it defaults to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	data := pageVM{
		BaseVM:  viewdata.NewBaseVM(w, r, "Sign in required", backURL),
		Message: "Please sign in to continue.",
	}
	w.WriteHeader(http.StatusUnauthorized)
	templates.Render(w, r, "error_unauthorized", data)
}

// RenderError shows a generic failure page with a message suitable for the
// user. Details belong in the log, not here.
func RenderError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "Something went wrong. Please try again."
	}
	if backURL == "" {
		backURL = "/dashboard"
	}
	data := pageVM{
		BaseVM:  viewdata.NewBaseVM(w, r, "Error", backURL),
		Message: msg,
	}
	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_generic", data)
}
