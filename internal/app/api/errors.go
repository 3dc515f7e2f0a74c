// internal/app/api/errors.go
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a backend rejection: any response outside the 2xx range.
// Detail is the server-supplied message when the body carried one, or ""
// when it did not (non-JSON body, unexpected shape).
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend: %d", e.StatusCode)
}

// IsForbidden reports whether err is a backend 403. Admin loads treat this
// as a terminal access-denied state rather than a generic failure.
func IsForbidden(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// IsUnauthorized reports whether err is a backend 401, which means the
// session's bearer credential is missing or no longer valid.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Detail returns the server-supplied message for a backend rejection, or
// fallback for transport failures and rejections without one. Features use
// this to surface business errors verbatim while collapsing everything
// else to a generic message.
func Detail(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
