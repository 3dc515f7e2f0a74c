// internal/domain/models/organization.go
package models

import "time"

// Organization is a tenant. Visible only to superusers; UserCount is
// computed server-side and cannot be derived from any data the console
// holds, which is why admin mutations always reload instead of patching
// local state.
type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug,omitempty"`
	UserCount int64     `json:"user_count"`
	CreatedAt time.Time `json:"created_at"`
}
