// internal/domain/models/roles.go
package models

// Role names, totally ordered by privilege (superuser highest).
const (
	RoleSuperuser = "superuser"
	RoleAdmin     = "admin"
	RoleEditor    = "editor"
	RoleViewer    = "viewer"
)

// roleRank orders roles by privilege for comparisons. Unknown roles rank
// below viewer.
var roleRank = map[string]int{
	RoleSuperuser: 4,
	RoleAdmin:     3,
	RoleEditor:    2,
	RoleViewer:    1,
}

// roleLabels are the display names used in badges and dropdowns.
var roleLabels = map[string]string{
	RoleSuperuser: "Superuser",
	RoleAdmin:     "Admin",
	RoleEditor:    "Editor",
	RoleViewer:    "Viewer",
}

// RoleRank returns the privilege rank of a role (0 for unknown).
func RoleRank(role string) int {
	return roleRank[role]
}

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// RoleLabel returns the display name for a role, falling back to the raw
// value for anything the console does not recognize.
func RoleLabel(role string) string {
	if l, ok := roleLabels[role]; ok {
		return l
	}
	return role
}

// AssignableRoles returns the roles a caller may assign when creating or
// editing a user. Only superusers may assign (or see) the superuser role.
func AssignableRoles(callerIsSuperuser bool) []string {
	if callerIsSuperuser {
		return []string{RoleSuperuser, RoleAdmin, RoleEditor, RoleViewer}
	}
	return []string{RoleAdmin, RoleEditor, RoleViewer}
}
