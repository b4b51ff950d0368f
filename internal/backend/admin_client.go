package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"evrental/internal/models"
)

// AdminClient talks to the backend's staff/admin user-management surface.
type AdminClient struct {
	base *BaseClient
}

// NewAdminClient returns client.
func NewAdminClient(baseURL string, httpClient HTTPDoer) *AdminClient {
	return &AdminClient{base: NewBaseClient(baseURL, httpClient)}
}

// StationUsers lists users visible to the station dashboard.
func (c *AdminClient) StationUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := c.base.DoJSON(ctx, http.MethodGet, "/admin/station/users", token, nil, &users, nil); err != nil {
		return nil, err
	}
	return users, nil
}

// StationUser fetches one user record.
func (c *AdminClient) StationUser(ctx context.Context, token string, userID int64) (*models.User, error) {
	var user models.User
	path := fmt.Sprintf("/admin/station/users/%d", userID)
	if err := c.base.DoJSON(ctx, http.MethodGet, path, token, nil, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserRole writes a role change using the backend's numeric id.
func (c *AdminClient) UpdateUserRole(ctx context.Context, token string, userID int64, role models.Role) (*models.User, error) {
	payload := map[string]int{"roleId": role.RoleID()}
	var user models.User
	path := fmt.Sprintf("/admin/station/users/%d/role", userID)
	if err := c.base.DoJSON(ctx, http.MethodPut, path, token, payload, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserStatus toggles a user ACTIVE/INACTIVE via query parameter.
func (c *AdminClient) UpdateUserStatus(ctx context.Context, token string, userID int64, status string) (*models.User, error) {
	var user models.User
	path := fmt.Sprintf("/admin/station/users/%d/status?status=%s", userID, url.QueryEscape(status))
	if err := c.base.DoJSON(ctx, http.MethodPatch, path, token, nil, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}
