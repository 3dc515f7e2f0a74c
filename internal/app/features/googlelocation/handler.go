// internal/app/features/googlelocation/handler.go
//
// The Google Business Profile connection finishes here. The backend runs
// the OAuth exchange and redirects the browser back with a short-lived
// continuation token; this feature resolves that token to the candidate
// locations, lets the user pick one, and commits the choice.
package googlelocation

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/postline-app/console/internal/app/api"
	uierrors "github.com/postline-app/console/internal/app/features/errors"
	"github.com/postline-app/console/internal/app/system/auth"
	"github.com/postline-app/console/internal/app/system/flash"
	"github.com/postline-app/console/internal/app/system/htmlsanitize"
	"github.com/postline-app/console/internal/app/system/timeouts"
	"github.com/postline-app/console/internal/app/system/viewdata"
	"github.com/postline-app/console/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Log     *zap.Logger
	Backend *api.Client
}

func NewHandler(backend *api.Client, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Backend: backend}
}

type selectVM struct {
	viewdata.BaseVM

	Token     string
	Locations []models.GoogleLocation
	FormError string
}

// connectedRedirect is where a committed connection lands; the dashboard
// turns the query value into its confirmation banner.
const connectedRedirect = "/dashboard?social_connected=google_business"

// ServeLocations handles GET /social/google-business/locations.
//
// A missing token is a terminal local error: without it there is nothing
// to resolve, so no backend call is made.
func (h *Handler) ServeLocations(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	token := query.Get(r, "token")
	if token == "" {
		uierrors.RenderError(w, r,
			"The connection link is missing or incomplete. Start the Google Business Profile connection again.",
			"/dashboard")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	locations, err := h.Backend.GoogleLocations(ctx, token)
	if err != nil {
		h.Log.Warn("google locations: resolve failed",
			zap.Int64("user_id", su.ID),
			zap.Error(err))
		msg := htmlsanitize.DetailText(api.Detail(err,
			"The connection could not be resumed. It may have expired; start again."))
		uierrors.RenderError(w, r, msg, "/dashboard")
		return
	}

	data := selectVM{
		BaseVM:    viewdata.NewBaseVM(w, r, "Choose a location", "/dashboard"),
		Token:     token,
		Locations: locations,
	}
	templates.Render(w, r, "google_location_select", data)
}

// HandleSelect handles POST /social/google-business/locations/select.
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}
	if err := r.ParseForm(); err != nil {
		uierrors.RenderError(w, r, "The form could not be read. Please try again.", "/dashboard")
		return
	}

	token := r.FormValue("token")
	locationID := r.FormValue("location_id")
	if token == "" {
		uierrors.RenderError(w, r,
			"The connection link is missing or incomplete. Start the Google Business Profile connection again.",
			"/dashboard")
		return
	}
	if locationID == "" {
		// Send the user back to the selection screen without spending a
		// backend call; the token stays in the URL.
		flash.Set(w, "Choose a location before connecting.")
		http.Redirect(w, r, locationsURL(token), http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	success, err := h.Backend.SelectGoogleLocation(ctx, token, locationID)
	if err != nil {
		h.Log.Warn("google locations: select failed",
			zap.Int64("user_id", su.ID),
			zap.Error(err))
		msg := htmlsanitize.DetailText(api.Detail(err,
			"The location could not be connected. Please try again."))
		h.rerenderSelect(ctx, w, r, token, msg)
		return
	}
	if !success {
		h.rerenderSelect(ctx, w, r, token,
			"The location could not be connected. Please try again.")
		return
	}

	h.Log.Info("google business profile connected",
		zap.Int64("user_id", su.ID),
		zap.String("location_id", locationID))

	http.Redirect(w, r, connectedRedirect, http.StatusSeeOther)
}

// rerenderSelect puts the user back on the selection screen after a
// failed selection so they can retry with the same token. The candidate
// locations are re-resolved; if the token no longer resolves the failure
// is terminal after all.
func (h *Handler) rerenderSelect(ctx context.Context, w http.ResponseWriter, r *http.Request, token, formError string) {
	locations, err := h.Backend.GoogleLocations(ctx, token)
	if err != nil {
		h.Log.Warn("google locations: re-resolve after failed select", zap.Error(err))
		uierrors.RenderError(w, r,
			"The connection could not be resumed. It may have expired; start again.",
			"/dashboard")
		return
	}

	data := selectVM{
		BaseVM:    viewdata.NewBaseVM(w, r, "Choose a location", "/dashboard"),
		Token:     token,
		Locations: locations,
		FormError: formError,
	}
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "google_location_select", data)
}

func locationsURL(token string) string {
	return "/social/google-business/locations?token=" + url.QueryEscape(token)
}
