// internal/app/features/admindash/types.go
package admindash

import (
	"net/http"

	"github.com/postline-app/console/internal/app/system/auth"
	"github.com/postline-app/console/internal/app/system/viewdata"
	"github.com/postline-app/console/internal/domain/models"
)

// userRow is one row of the users table.
type userRow struct {
	ID           int64
	Email        string
	FullName     string
	RoleLabel    string
	Organization string
	IsActive     bool
}

// activityRow is one row of the activity feed.
type activityRow struct {
	Actor  string
	Action string
	Entity string
	When   string
}

type statCard struct {
	Label string
	Value int64
}

type roleOption struct {
	Value string
	Label string
}

// dashboardVM is the view model for the dashboard page.
type dashboardVM struct {
	viewdata.BaseVM

	Tab        string
	OrgFilter  string
	CanPickOrg bool

	Organizations []models.Organization
	Users         []userRow
	Activity      []activityRow
	Stats         []statCard

	ActivityUnavailable bool
	StatsUnavailable    bool
	OrgsUnavailable     bool
}

func newDashboardVM(w http.ResponseWriter, r *http.Request, su *auth.SessionUser, data *DashboardData, tab string) dashboardVM {
	vm := dashboardVM{
		BaseVM:              viewdata.NewBaseVM(w, r, "Admin", "/dashboard"),
		Tab:                 tab,
		OrgFilter:           data.OrgFilter,
		CanPickOrg:          su.IsSuperuser(),
		Organizations:       data.Organizations,
		ActivityUnavailable: data.ActivityUnavailable,
		StatsUnavailable:    data.StatsUnavailable,
		OrgsUnavailable:     data.OrgsUnavailable,
	}

	for _, u := range data.Users {
		vm.Users = append(vm.Users, userRow{
			ID:           u.ID,
			Email:        u.Email,
			FullName:     u.FullName,
			RoleLabel:    models.RoleLabel(u.Role),
			Organization: u.OrganizationName,
			IsActive:     u.IsActive,
		})
	}

	for _, e := range data.Activity {
		entity := e.EntityType
		if e.EntityName != "" {
			if entity != "" {
				entity += ": "
			}
			entity += e.EntityName
		}
		vm.Activity = append(vm.Activity, activityRow{
			Actor:  e.Actor(),
			Action: models.ActionLabel(e.Action),
			Entity: entity,
			When:   e.CreatedAt.Format("Jan 2, 2006 15:04"),
		})
	}

	// The organization count only makes sense on the unscoped view.
	if su.IsSuperuser() && data.OrgFilter == "" {
		vm.Stats = append(vm.Stats, statCard{Label: "Organizations", Value: data.Stats.Organizations})
	}
	vm.Stats = append(vm.Stats,
		statCard{Label: "Users", Value: data.Stats.Users},
		statCard{Label: "Brands", Value: data.Stats.Brands},
		statCard{Label: "Projects", Value: data.Stats.Projects},
		statCard{Label: "Posts", Value: data.Stats.Posts},
	)

	return vm
}

// userFormVM backs both the create and edit forms.
type userFormVM struct {
	viewdata.BaseVM

	FormError string
	IsEdit    bool

	UserID         int64
	Email          string
	FullName       string
	Role           string
	IsActive       bool
	OrganizationID string

	Roles         []roleOption
	Organizations []models.Organization
	CanPickOrg    bool
}

func roleOptions(callerIsSuperuser bool) []roleOption {
	var opts []roleOption
	for _, role := range models.AssignableRoles(callerIsSuperuser) {
		opts = append(opts, roleOption{Value: role, Label: models.RoleLabel(role)})
	}
	return opts
}

// confirmVM backs the deactivation confirm page.
type confirmVM struct {
	viewdata.BaseVM

	UserID   int64
	Email    string
	FullName string
}
