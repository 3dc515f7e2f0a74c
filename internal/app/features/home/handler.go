// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/postline-app/console/internal/app/system/auth"
	"github.com/postline-app/console/internal/app/system/viewdata"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type homeVM struct {
	viewdata.BaseVM
}

// ServeHome handles GET /. Signed-in users go straight to their dashboard.
func (h *Handler) ServeHome(w http.ResponseWriter, r *http.Request) {
	if _, signedIn := auth.CurrentUser(r); signedIn {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := homeVM{
		BaseVM: viewdata.NewBaseVM(w, r, "Welcome", "/"),
	}
	templates.Render(w, r, "home", data)
}
