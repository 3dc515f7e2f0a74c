// internal/domain/models/stats.go
package models

// Stats is the aggregate snapshot shown on the admin dashboard, scoped to
// the caller's permission and filter context. It is not kept beyond the
// render that requested it.
type Stats struct {
	Organizations int64 `json:"organizations"`
	Users         int64 `json:"users"`
	Brands        int64 `json:"brands"`
	Projects      int64 `json:"projects"`
	Posts         int64 `json:"posts"`
}
