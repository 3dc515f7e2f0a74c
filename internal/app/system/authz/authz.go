// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/postline-app/console/internal/app/system/auth"
	"github.com/postline-app/console/internal/domain/models"
)

// UserCtx returns the user's role (lowercased), name, backend user ID, and
// a found flag. ok=true means a valid, authenticated user. The role is
// normalized to lowercase for consistent comparison.
func UserCtx(r *http.Request) (role string, name string, userID int64, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", 0, false
	}
	return strings.ToLower(user.Role), user.Name, user.ID, true
}

// IsSuperuser reports whether the current request's user is a superuser.
func IsSuperuser(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleSuperuser
}

// IsAdmin reports whether the current request's user can manage users.
// Superusers are admins for permission purposes.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == models.RoleAdmin || role == models.RoleSuperuser)
}

// HasAnyRole reports whether the current request's user has any of the
// given roles. Returns false if no user is present.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// Role returns the current user's role (lowercased) and whether a user is
// present.
func Role(r *http.Request) (string, bool) {
	role, _, _, ok := UserCtx(r)
	return role, ok
}
