// internal/domain/models/user.go
package models

import "time"

// User is the backend's user record as returned by the admin and auth
// endpoints. The console never owns this data; every copy is discarded
// and replaced on the next fetch.
//
// NOTE:
//   - Email is immutable after creation and is never sent in update payloads.
//   - "Deleted" users are deactivated (IsActive=false), not removed.
type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	Role             string    `json:"role"` // superuser | admin | editor | viewer
	IsActive         bool      `json:"is_active"`
	OrganizationID   *int64    `json:"organization_id,omitempty"`
	OrganizationName string    `json:"organization_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	// Extended profile fields (optional; empty when absent).
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
	VATNumber string `json:"vat_number,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// IsSuperuser reports whether the user has cross-organization rights.
func (u User) IsSuperuser() bool {
	return u.Role == RoleSuperuser
}

// IsAdmin reports whether the user can manage users within their scope.
// Superusers are admins for permission purposes.
func (u User) IsAdmin() bool {
	return u.Role == RoleSuperuser || u.Role == RoleAdmin
}
