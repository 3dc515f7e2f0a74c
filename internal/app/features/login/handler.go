// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/postline-app/console/internal/app/api"
	"github.com/postline-app/console/internal/app/system/auth"
	"github.com/postline-app/console/internal/app/system/inputval"
	"github.com/postline-app/console/internal/app/system/navigation"
	"github.com/postline-app/console/internal/app/system/normalize"
	"github.com/postline-app/console/internal/app/system/viewdata"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	Backend    *api.Client
	SessionMgr *auth.SessionManager
}

func NewHandler(backend *api.Client, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		Backend:    backend,
		SessionMgr: sessionMgr,
	}
}

type loginVM struct {
	viewdata.BaseVM
	Email     string
	Return    string
	FormError string
}

type loginForm struct {
	Email    string `validate:"required,email" label:"Email"`
	Password string `validate:"required" label:"Password"`
}

// ServeLogin handles GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, signedIn := auth.CurrentUser(r); signedIn {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderForm(w, r, "", "")
}

// HandleLogin handles POST /login.
//
// The backend issues a bearer token, then a follow-up identity fetch fills
// in the role and organization that gate what the session can see. Both
// must succeed before a session cookie is written.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, r, "", "The form could not be read. Please try again.")
		return
	}

	form := loginForm{
		Email:    normalize.Email(r.FormValue("email")),
		Password: r.FormValue("password"),
	}

	if res := inputval.Validate(form); res.HasErrors() {
		h.renderForm(w, r, form.Email, res.First())
		return
	}

	ctx := r.Context()

	token, err := h.Backend.Login(ctx, form.Email, form.Password)
	if err != nil {
		if api.IsUnauthorized(err) {
			h.renderForm(w, r, form.Email, "Invalid email or password.")
			return
		}
		h.Log.Error("login: token request failed", zap.Error(err))
		h.renderForm(w, r, form.Email, "Sign in is unavailable right now. Please try again shortly.")
		return
	}

	me, err := h.Backend.Me(auth.ContextWithToken(ctx, token))
	if err != nil {
		h.Log.Error("login: identity fetch failed", zap.Error(err))
		h.renderForm(w, r, form.Email, "Sign in is unavailable right now. Please try again shortly.")
		return
	}

	orgID := ""
	if me.OrganizationID != nil {
		orgID = strconv.FormatInt(*me.OrganizationID, 10)
	}

	u := &auth.SessionUser{
		ID:               me.ID,
		Name:             me.FullName,
		Email:            me.Email,
		Role:             normalize.Role(me.Role),
		OrganizationID:   orgID,
		OrganizationName: me.OrganizationName,
		Token:            token,
	}

	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		h.Log.Error("login: session save failed", zap.Error(err))
		h.renderForm(w, r, form.Email, "Sign in is unavailable right now. Please try again shortly.")
		return
	}

	h.Log.Info("user signed in",
		zap.Int64("user_id", me.ID),
		zap.String("role", u.Role))

	dest := navigation.SafeBackURL(r, navigation.DashboardBackURL)
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, email, formError string) {
	data := loginVM{
		BaseVM:    viewdata.NewBaseVM(w, r, "Sign in", "/"),
		Email:     email,
		Return:    r.FormValue("return"),
		FormError: formError,
	}
	if formError != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "login", data)
}
