// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/postline-app/console/internal/app/system/authz"
	"github.com/postline-app/console/internal/app/system/viewdata"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type dashboardVM struct {
	viewdata.BaseVM
	ShowAdminLink  string
	ConnectedLabel string
}

// connectedLabels maps the social_connected query value set by the
// location-selection flow to the banner shown on arrival.
var connectedLabels = map[string]string{
	"google_business": "Google Business Profile connected.",
}

// ServeDashboard handles GET /dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	data := dashboardVM{
		BaseVM:         viewdata.NewBaseVM(w, r, "Dashboard", "/"),
		ConnectedLabel: connectedLabels[query.Get(r, "social_connected")],
	}
	if authz.IsAdmin(r) {
		data.ShowAdminLink = "/admin"
	}
	templates.Render(w, r, "dashboard", data)
}
