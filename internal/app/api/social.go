// internal/app/api/social.go
package api

import (
	"context"
	"net/url"

	"github.com/postline-app/console/internal/domain/models"
)

// GoogleLocations resolves a pending connection token to its candidate
// Google Business Profile locations. The backend does not distinguish
// expired from invalid tokens here; both come back as rejections.
func (c *Client) GoogleLocations(ctx context.Context, token string) ([]models.GoogleLocation, error) {
	var out struct {
		Locations []models.GoogleLocation `json:"locations"`
	}
	path := "/social/google-locations/" + url.PathEscape(token)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Locations, nil
}

// SelectGoogleLocation commits the user's choice against the token. The
// backend reports the outcome in the body; a 2xx with success=false still
// means the connection was not made.
func (c *Client) SelectGoogleLocation(ctx context.Context, token, locationID string) (bool, error) {
	q := url.Values{}
	q.Set("location_id", locationID)
	var out struct {
		Success bool `json:"success"`
	}
	path := "/social/google-locations/" + url.PathEscape(token) + "/select"
	if err := c.do(ctx, "POST", path, q, nil, &out); err != nil {
		return false, err
	}
	return out.Success, nil
}
