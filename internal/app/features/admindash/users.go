// internal/app/features/admindash/users.go
package admindash

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/postline-app/console/internal/app/api"
	uierrors "github.com/postline-app/console/internal/app/features/errors"
	"github.com/postline-app/console/internal/app/system/auth"
	"github.com/postline-app/console/internal/app/system/flash"
	"github.com/postline-app/console/internal/app/system/htmlsanitize"
	"github.com/postline-app/console/internal/app/system/inputval"
	"github.com/postline-app/console/internal/app/system/navigation"
	"github.com/postline-app/console/internal/app/system/normalize"
	"github.com/postline-app/console/internal/app/system/timeouts"
	"github.com/postline-app/console/internal/app/system/viewdata"
	"github.com/postline-app/console/internal/domain/models"
	"go.uber.org/zap"
)

type createUserForm struct {
	Email    string `validate:"required,email" label:"Email"`
	FullName string `validate:"required" label:"Full name"`
	Password string `validate:"required,min=8" label:"Password"`
	Role     string `validate:"required" label:"Role"`
}

type editUserForm struct {
	FullName string `validate:"required" label:"Full name"`
	Role     string `validate:"required" label:"Role"`
}

// ServeNewUser handles GET /admin/users/new.
func (h *Handler) ServeNewUser(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}
	h.renderNewForm(w, r, su, userFormVM{}, "")
}

// HandleCreateUser handles POST /admin/users.
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderNewForm(w, r, su, userFormVM{}, "The form could not be read. Please try again.")
		return
	}

	form := createUserForm{
		Email:    normalize.Email(r.FormValue("email")),
		FullName: normalize.Name(r.FormValue("full_name")),
		Password: r.FormValue("password"),
		Role:     normalize.Role(r.FormValue("role")),
	}
	submitted := userFormVM{
		Email:          form.Email,
		FullName:       form.FullName,
		Role:           form.Role,
		OrganizationID: r.FormValue("organization_id"),
	}

	if res := inputval.Validate(form); res.HasErrors() {
		h.renderNewForm(w, r, su, submitted, res.First())
		return
	}
	if !assignable(su, form.Role) {
		h.renderNewForm(w, r, su, submitted, "You cannot assign that role.")
		return
	}

	in := api.CreateUserInput{
		Email:    form.Email,
		FullName: form.FullName,
		Password: form.Password,
		Role:     form.Role,
	}

	// Admins always create into their own organization; only superusers
	// choose, and may leave the new user unscoped.
	orgRaw := submitted.OrganizationID
	if !su.IsSuperuser() {
		orgRaw = su.OrganizationID
	}
	if orgRaw != "" {
		orgID, err := strconv.ParseInt(orgRaw, 10, 64)
		if err != nil {
			h.renderNewForm(w, r, su, submitted, "Choose a valid organization.")
			return
		}
		in.OrganizationID = &orgID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Backend.CreateUser(ctx, in)
	if err != nil {
		h.Log.Warn("admin: create user failed", zap.Error(err))
		msg := htmlsanitize.DetailText(api.Detail(err, "The user could not be created. Please try again."))
		h.renderNewForm(w, r, su, submitted, msg)
		return
	}

	h.Log.Info("admin: user created",
		zap.Int64("user_id", created.ID),
		zap.Int64("by", su.ID))

	flash.Set(w, "User created.")
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.AdminBackURL), http.StatusSeeOther)
}

// ServeEditUser handles GET /admin/users/{userID}/edit.
func (h *Handler) ServeEditUser(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	target, ok := h.findUser(w, r, su)
	if !ok {
		return
	}

	vm := userFormVM{
		UserID:   target.ID,
		Email:    target.Email,
		FullName: target.FullName,
		Role:     target.Role,
		IsActive: target.IsActive,
	}
	h.renderEditForm(w, r, su, vm, "")
}

// HandleUpdateUser handles POST /admin/users/{userID}. Only fields that
// actually changed go over the wire; the backend treats absent fields as
// untouched.
func (h *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}
	if err := r.ParseForm(); err != nil {
		uierrors.RenderError(w, r, "The form could not be read. Please try again.", "/admin")
		return
	}

	target, ok := h.findUser(w, r, su)
	if !ok {
		return
	}

	form := editUserForm{
		FullName: normalize.Name(r.FormValue("full_name")),
		Role:     normalize.Role(r.FormValue("role")),
	}
	isActive := r.FormValue("is_active") != ""

	submitted := userFormVM{
		UserID:   target.ID,
		Email:    target.Email,
		FullName: form.FullName,
		Role:     form.Role,
		IsActive: isActive,
	}

	if res := inputval.Validate(form); res.HasErrors() {
		h.renderEditForm(w, r, su, submitted, res.First())
		return
	}
	if !assignable(su, form.Role) || (target.IsSuperuser() && !su.IsSuperuser()) {
		h.renderEditForm(w, r, su, submitted, "You cannot assign that role.")
		return
	}

	var in api.UpdateUserInput
	if form.FullName != target.FullName {
		in.FullName = &form.FullName
	}
	if form.Role != target.Role {
		in.Role = &form.Role
	}
	if isActive != target.IsActive {
		in.IsActive = &isActive
	}

	if in.FullName == nil && in.Role == nil && in.IsActive == nil {
		http.Redirect(w, r, navigation.SafeBackURL(r, navigation.AdminBackURL), http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Backend.UpdateUser(ctx, target.ID, in); err != nil {
		h.Log.Warn("admin: update user failed",
			zap.Int64("user_id", target.ID),
			zap.Error(err))
		msg := htmlsanitize.DetailText(api.Detail(err, "The user could not be updated. Please try again."))
		h.renderEditForm(w, r, su, submitted, msg)
		return
	}

	flash.Set(w, "User updated.")
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.AdminBackURL), http.StatusSeeOther)
}

// ServeDeactivateUser handles GET /admin/users/{userID}/deactivate, the
// confirm page in front of the destructive action.
func (h *Handler) ServeDeactivateUser(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	target, ok := h.findUser(w, r, su)
	if !ok {
		return
	}

	data := confirmVM{
		BaseVM:   viewdata.NewBaseVM(w, r, "Deactivate user", "/admin"),
		UserID:   target.ID,
		Email:    target.Email,
		FullName: target.FullName,
	}
	templates.Render(w, r, "admin_user_deactivate", data)
}

// HandleDeactivateUser handles POST /admin/users/{userID}/deactivate.
func (h *Handler) HandleDeactivateUser(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	target, ok := h.findUser(w, r, su)
	if !ok {
		return
	}
	if target.ID == su.ID {
		uierrors.RenderForbidden(w, r, "You cannot deactivate your own account.", "/admin")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Backend.DeactivateUser(ctx, target.ID); err != nil {
		h.Log.Warn("admin: deactivate user failed",
			zap.Int64("user_id", target.ID),
			zap.Error(err))
		msg := htmlsanitize.DetailText(api.Detail(err, "The user could not be deactivated. Please try again."))
		uierrors.RenderError(w, r, msg, "/admin")
		return
	}

	h.Log.Info("admin: user deactivated",
		zap.Int64("user_id", target.ID),
		zap.Int64("by", su.ID))

	flash.Set(w, "User deactivated.")
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.AdminBackURL), http.StatusSeeOther)
}

// findUser resolves the {userID} route param against the caller's visible
// users. The backend has no single-user read, so this reuses the scoped
// list. Writes the error page itself when it fails.
func (h *Handler) findUser(w http.ResponseWriter, r *http.Request, su *auth.SessionUser) (models.User, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return models.User{}, false
	}

	scope := ""
	if !su.IsSuperuser() {
		scope = su.OrganizationID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Backend.ListUsers(ctx, scope)
	if err != nil {
		if api.IsForbidden(err) {
			uierrors.RenderForbidden(w, r, "You don't have access to user management.", "/dashboard")
			return models.User{}, false
		}
		h.Log.Error("admin: user lookup failed", zap.Error(err))
		uierrors.RenderError(w, r, "The user could not be loaded. Please try again.", "/admin")
		return models.User{}, false
	}

	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	http.NotFound(w, r)
	return models.User{}, false
}

// assignable reports whether the caller may hand out the given role.
func assignable(su *auth.SessionUser, role string) bool {
	if !models.ValidRole(role) {
		return false
	}
	for _, allowed := range models.AssignableRoles(su.IsSuperuser()) {
		if role == allowed {
			return true
		}
	}
	return false
}

func (h *Handler) renderNewForm(w http.ResponseWriter, r *http.Request, su *auth.SessionUser, vm userFormVM, formError string) {
	vm.BaseVM = viewdata.NewBaseVM(w, r, "New user", "/admin")
	vm.FormError = formError
	vm.Roles = roleOptions(su.IsSuperuser())
	vm.CanPickOrg = su.IsSuperuser()

	if vm.CanPickOrg {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()
		orgs, err := h.Backend.ListOrganizations(ctx)
		if err != nil {
			h.Log.Warn("admin: organization list failed", zap.Error(err))
		} else {
			vm.Organizations = orgs
		}
	}

	if formError != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "admin_user_new", vm)
}

func (h *Handler) renderEditForm(w http.ResponseWriter, r *http.Request, su *auth.SessionUser, vm userFormVM, formError string) {
	vm.BaseVM = viewdata.NewBaseVM(w, r, "Edit user", "/admin")
	vm.FormError = formError
	vm.IsEdit = true
	vm.Roles = roleOptions(su.IsSuperuser())

	if formError != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "admin_user_edit", vm)
}
