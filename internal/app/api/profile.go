// internal/app/api/profile.go
package api

import (
	"context"

	"github.com/postline-app/console/internal/domain/models"
)

// Me returns the caller's own record, extended profile fields included.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var u models.User
	if err := c.get(ctx, "/auth/me", nil, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ProfileUpdate is the mutable subset of the caller's own record. Email
// and role are deliberately absent: they cannot be changed through this
// path.
type ProfileUpdate struct {
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
	VATNumber string `json:"vat_number"`
	Notes     string `json:"notes"`
}

// UpdateProfile saves the caller's own profile fields.
func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) error {
	return c.do(ctx, "PUT", "/auth/profile", nil, in, nil)
}

// ChangePassword changes the caller's password. Local preconditions
// (confirmation match, minimum length) are checked by the feature before
// this is called; the backend verifies the current password.
func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	body := struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}{current, newPassword}
	return c.do(ctx, "POST", "/auth/change-password", nil, body, nil)
}

// Login exchanges credentials for a bearer token. This is the one call
// issued without a credential in the context.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, "POST", "/auth/login", nil, body, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}
