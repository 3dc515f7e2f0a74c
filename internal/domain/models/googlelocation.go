// internal/domain/models/googlelocation.go
package models

// GoogleLocation is one candidate Google Business Profile location tied to
// a pending connection token. The token itself is opaque, single-use, and
// expires server-side; the console only ever sees expiry as a failed
// resolution.
type GoogleLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
