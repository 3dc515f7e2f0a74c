// internal/domain/models/activity.go
package models

import "time"

// Activity actions recorded by the backend's append-only audit log.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionGenerate = "generate"
	ActionExport   = "export"
	ActionLogin    = "login"
)

// ActivityEntry is one row of the audit log. The console only ever reads
// a bounded, most-recent-first window of these.
type ActivityEntry struct {
	ID         int64     `json:"id"`
	UserName   string    `json:"user_name,omitempty"`
	UserEmail  string    `json:"user_email,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityName string    `json:"entity_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Actor returns the best available display name for who performed the
// action.
func (e ActivityEntry) Actor() string {
	if e.UserName != "" {
		return e.UserName
	}
	return e.UserEmail
}

var actionLabels = map[string]string{
	ActionCreate:   "Created",
	ActionUpdate:   "Updated",
	ActionDelete:   "Deleted",
	ActionGenerate: "Generated",
	ActionExport:   "Exported",
	ActionLogin:    "Signed in",
}

// ActionLabel returns the display form of an action, falling back to the
// raw value for anything unrecognized.
func ActionLabel(action string) string {
	if l, ok := actionLabels[action]; ok {
		return l
	}
	return action
}
