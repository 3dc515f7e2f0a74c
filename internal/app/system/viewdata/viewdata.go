// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/postline-app/console/internal/app/system/auth"
	"github.com/postline-app/console/internal/app/system/authz"
	"github.com/postline-app/console/internal/app/system/flash"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// SiteName is the product name shown in the page chrome.
const SiteName = "Postline Console"

// BaseVM contains common fields for all view models. Embed it in feature
// view models:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(w, r, "Page Title", "/default-back"),
//	    ...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn  bool
	Role        string
	UserName    string
	UserOrg     string
	IsSuperuser bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFField template.HTML

	// One-shot status message carried across a redirect, if any.
	Flash string
}

// NewBaseVM creates a fully populated BaseVM for a page. It also consumes
// any pending flash message (reading it clears the cookie via w).
func NewBaseVM(w http.ResponseWriter, r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SiteName:    SiteName,
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    name,
		IsSuperuser: authz.IsSuperuser(r),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFField:   csrf.TemplateField(r),
		Flash:       flash.Take(w, r),
	}

	if user, ok := auth.CurrentUser(r); ok && user.OrganizationName != "" {
		vm.UserOrg = user.OrganizationName
	}

	return vm
}
