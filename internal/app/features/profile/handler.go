// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/postline-app/console/internal/app/api"
	uierrors "github.com/postline-app/console/internal/app/features/errors"
	"github.com/postline-app/console/internal/app/system/auth"
	"github.com/postline-app/console/internal/app/system/flash"
	"github.com/postline-app/console/internal/app/system/htmlsanitize"
	"github.com/postline-app/console/internal/app/system/inputval"
	"github.com/postline-app/console/internal/app/system/normalize"
	"github.com/postline-app/console/internal/app/system/timeouts"
	"github.com/postline-app/console/internal/app/system/viewdata"
	"github.com/postline-app/console/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the self-service profile editor.
type Handler struct {
	Log     *zap.Logger
	Backend *api.Client
}

func NewHandler(backend *api.Client, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Backend: backend}
}

type profileVM struct {
	viewdata.BaseVM

	Email        string
	RoleLabel    string
	Organization string

	FullName  string
	Phone     string
	Company   string
	Address   string
	City      string
	Country   string
	VATNumber string
	Notes     string

	ProfileError  string
	ProfileSaved  bool
	PasswordError string
}

type profileForm struct {
	FullName string `validate:"required" label:"Full name"`
}

// ServeProfile handles GET /profile. The form always starts from a fresh
// read of the backend record.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	me, err := h.Backend.Me(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			uierrors.RenderUnauthorized(w, r, "")
			return
		}
		h.Log.Error("profile: load failed",
			zap.Int64("user_id", su.ID),
			zap.Error(err))
		uierrors.RenderError(w, r, "Your profile could not be loaded. Please try again.", "/dashboard")
		return
	}

	vm := vmFromUser(me)
	vm.BaseVM = viewdata.NewBaseVM(w, r, "Your profile", "/dashboard")
	templates.Render(w, r, "profile", vm)
}

// HandleUpdateProfile handles POST /profile.
//
// On success the page re-renders from the submitted values rather than
// re-reading the backend: the write was accepted, so the local copy is
// the record.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}
	if err := r.ParseForm(); err != nil {
		uierrors.RenderError(w, r, "The form could not be read. Please try again.", "/profile")
		return
	}

	vm := profileVM{
		Email:        su.Email,
		RoleLabel:    models.RoleLabel(su.Role),
		Organization: su.OrganizationName,
		FullName:     normalize.Name(r.FormValue("full_name")),
		Phone:        normalize.Text(r.FormValue("phone")),
		Company:      normalize.Text(r.FormValue("company")),
		Address:      normalize.Text(r.FormValue("address")),
		City:         normalize.Text(r.FormValue("city")),
		Country:      normalize.Text(r.FormValue("country")),
		VATNumber:    normalize.Text(r.FormValue("vat_number")),
		Notes:        normalize.Text(r.FormValue("notes")),
	}

	if res := inputval.Validate(profileForm{FullName: vm.FullName}); res.HasErrors() {
		h.renderProfile(w, r, vm, res.First())
		return
	}

	in := api.ProfileUpdate{
		FullName:  vm.FullName,
		Phone:     vm.Phone,
		Company:   vm.Company,
		Address:   vm.Address,
		City:      vm.City,
		Country:   vm.Country,
		VATNumber: vm.VATNumber,
		Notes:     vm.Notes,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Backend.UpdateProfile(ctx, in); err != nil {
		h.Log.Warn("profile: update failed",
			zap.Int64("user_id", su.ID),
			zap.Error(err))
		msg := htmlsanitize.DetailText(api.Detail(err, "Your profile could not be saved. Please try again."))
		h.renderProfile(w, r, vm, msg)
		return
	}

	vm.ProfileSaved = true
	h.renderProfile(w, r, vm, "")
}

// HandleChangePassword handles POST /profile/password.
//
// Local preconditions run in a fixed order before anything goes to the
// backend: first the confirmation match, then the length floor. A local
// failure costs zero network calls.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}
	if err := r.ParseForm(); err != nil {
		uierrors.RenderError(w, r, "The form could not be read. Please try again.", "/profile")
		return
	}

	current := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	if newPassword != confirm {
		h.rerenderWithPasswordError(w, r, su, "The new passwords do not match.")
		return
	}
	if !inputval.IsValidPassword(newPassword) {
		h.rerenderWithPasswordError(w, r, su, "The new password must be at least 8 characters.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Backend.ChangePassword(ctx, current, newPassword); err != nil {
		h.Log.Warn("profile: password change failed",
			zap.Int64("user_id", su.ID),
			zap.Error(err))
		msg := htmlsanitize.DetailText(api.Detail(err, "Your password could not be changed. Please try again."))
		h.rerenderWithPasswordError(w, r, su, msg)
		return
	}

	flash.Set(w, "Password changed.")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// rerenderWithPasswordError shows the password section's error. The
// profile fields come from the session, not a refetch: precondition
// failures must not cost a backend round trip.
func (h *Handler) rerenderWithPasswordError(w http.ResponseWriter, r *http.Request, su *auth.SessionUser, msg string) {
	vm := profileVM{
		Email:         su.Email,
		RoleLabel:     models.RoleLabel(su.Role),
		Organization:  su.OrganizationName,
		FullName:      su.Name,
		PasswordError: msg,
	}
	vm.BaseVM = viewdata.NewBaseVM(w, r, "Your profile", "/dashboard")
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "profile", vm)
}

func (h *Handler) renderProfile(w http.ResponseWriter, r *http.Request, vm profileVM, profileError string) {
	vm.ProfileError = profileError
	vm.BaseVM = viewdata.NewBaseVM(w, r, "Your profile", "/dashboard")
	if profileError != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "profile", vm)
}

func vmFromUser(u models.User) profileVM {
	return profileVM{
		Email:        u.Email,
		RoleLabel:    models.RoleLabel(u.Role),
		Organization: u.OrganizationName,
		FullName:     u.FullName,
		Phone:        u.Phone,
		Company:      u.Company,
		Address:      u.Address,
		City:         u.City,
		Country:      u.Country,
		VATNumber:    u.VATNumber,
		Notes:        u.Notes,
	}
}
