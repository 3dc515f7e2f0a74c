// Package normalize standardizes user-entered values before they are
// validated or sent to the backend.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role value so comparisons are exact.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Text trims free-form text fields such as phone, company, and notes.
func Text(s string) string {
	return strings.TrimSpace(s)
}
