package backend

import (
	"bytes"
	"context"
	"net/http"

	"evrental/internal/models"
	"evrental/internal/verification"
)

// ProfileClient talks to the backend's profile endpoints.
type ProfileClient struct {
	base *BaseClient
}

// NewProfileClient returns client.
func NewProfileClient(baseURL string, httpClient HTTPDoer) *ProfileClient {
	return &ProfileClient{base: NewBaseClient(baseURL, httpClient)}
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Me fetches the authenticated principal's profile.
func (c *ProfileClient) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.base.DoJSON(ctx, http.MethodGet, "/profile/me", token, nil, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update edits the profile and returns the refreshed record.
func (c *ProfileClient) Update(ctx context.Context, token string, update ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.base.DoJSON(ctx, http.MethodPut, "/profile/update", token, update, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

// UploadVerification re-streams a validated document submission upstream.
func (c *ProfileClient) UploadVerification(ctx context.Context, token string, upload *verification.Upload) error {
	var buf bytes.Buffer
	contentType, err := upload.WriteTo(&buf)
	if err != nil {
		return err
	}

	headers := map[string]string{"Content-Type": contentType}
	status, body, err := c.base.Do(ctx, http.MethodPost, "/profile/verification/upload", token, buf.Bytes(), headers)
	if err != nil {
		return err
	}
	return checkStatus(status, body)
}
