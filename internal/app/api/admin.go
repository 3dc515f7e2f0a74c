// internal/app/api/admin.go
package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/postline-app/console/internal/domain/models"
)

// ActivityLimit is the window of audit entries the dashboard reads.
const ActivityLimit = 50

// ListOrganizations returns every tenant. The backend only answers this
// for superusers.
func (c *Client) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := c.get(ctx, "/admin/organizations", nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// ListUsers returns the users visible to the caller, optionally scoped to
// one organization. orgID is the raw filter value; empty means unscoped.
func (c *Client) ListUsers(ctx context.Context, orgID string) ([]models.User, error) {
	q := url.Values{}
	if orgID != "" {
		q.Set("organization_id", orgID)
	}
	var users []models.User
	if err := c.get(ctx, "/admin/users", q, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListActivity returns the most recent audit entries, newest first,
// bounded by limit and optionally scoped to one organization.
func (c *Client) ListActivity(ctx context.Context, limit int, orgID string) ([]models.ActivityEntry, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if orgID != "" {
		q.Set("organization_id", orgID)
	}
	var entries []models.ActivityEntry
	if err := c.get(ctx, "/admin/activity", q, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetStats returns the aggregate snapshot for the caller's scope.
func (c *Client) GetStats(ctx context.Context, orgID string) (models.Stats, error) {
	q := url.Values{}
	if orgID != "" {
		q.Set("organization_id", orgID)
	}
	var stats models.Stats
	if err := c.get(ctx, "/admin/stats", q, &stats); err != nil {
		return models.Stats{}, err
	}
	return stats, nil
}

// CreateUserInput is the payload for creating a user. OrganizationID must
// be nil (not zero, not empty) when the new user is unscoped — the backend
// distinguishes an absent field from an explicit null.
type CreateUserInput struct {
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	OrganizationID *int64 `json:"organization_id,omitempty"`
}

// CreateUser creates a user. The backend enforces role and organization
// permissions; rejections carry a detail message for the form.
func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (models.User, error) {
	var u models.User
	if err := c.do(ctx, "POST", "/admin/users", nil, in, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	FullName *string `json:"full_name,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// UpdateUser applies a partial update to one user.
func (c *Client) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (models.User, error) {
	var u models.User
	path := "/admin/users/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, "PUT", path, nil, in, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// DeactivateUser soft-deletes a user: the backend sets is_active=false and
// keeps the record. There is no hard delete in this API.
func (c *Client) DeactivateUser(ctx context.Context, id int64) error {
	path := "/admin/users/" + strconv.FormatInt(id, 10)
	return c.do(ctx, "DELETE", path, nil, nil, nil)
}
