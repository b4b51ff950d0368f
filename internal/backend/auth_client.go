package backend

import (
	"context"
	"net/http"

	"evrental/internal/models"
)

// AuthClient talks to the backend's authentication endpoints.
type AuthClient struct {
	base *BaseClient
}

// NewAuthClient returns client.
func NewAuthClient(baseURL string, httpClient HTTPDoer) *AuthClient {
	return &AuthClient{base: NewBaseClient(baseURL, httpClient)}
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a new renter account.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ResetPasswordRequest completes the forgot-password flow.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// LoginResult is the backend's token + principal pair.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a bearer token and profile.
func (c *AuthClient) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var result LoginResult
	if err := c.base.DoJSON(ctx, http.MethodPost, "/auth/login", "", creds, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account; the backend logs the user straight in and
// returns the same token + profile shape as Login.
func (c *AuthClient) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	var result LoginResult
	if err := c.base.DoJSON(ctx, http.MethodPost, "/auth/register", "", req, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}

// ForgotPassword requests an OTP for the given address.
func (c *AuthClient) ForgotPassword(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.base.DoJSON(ctx, http.MethodPost, "/auth/forgot-password", "", payload, nil, nil)
}

// ResetPassword verifies the OTP and sets the new password.
func (c *AuthClient) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return c.base.DoJSON(ctx, http.MethodPost, "/auth/reset-password", "", req, nil, nil)
}
