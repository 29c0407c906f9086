package client

import (
	"context"
	"net/http"

	"github.com/dev-7msolution/restaurante-mobile/config"
	"github.com/dev-7msolution/restaurante-mobile/models"
)

// Login authenticates against POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, models.LoginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account via POST /auth/register. No auto-login.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, nil)
}

// ForgotPassword starts a password reset via POST /auth/forgot-password.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, models.ForgotPasswordRequest{Email: email}, nil)
}

// ResetPassword completes a reset via POST /auth/reset-password.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password", nil, models.ResetPasswordRequest{
		Token:    token,
		Password: password,
	}, nil)
}

// RefreshToken exchanges the stored refresh token for a new access token
// via POST /auth/refresh. The caller is responsible for persisting the
// result; the automatic 401 path persists it itself.
func (c *Client) RefreshToken(ctx context.Context) (*models.RefreshResponse, error) {
	refreshTok, err := c.store.Get(ctx, config.RefreshTokenKey)
	if err != nil || refreshTok == "" {
		return nil, validationError("nenhum refresh token armazenado")
	}

	var out models.RefreshResponse
	if err := c.do(ctx, http.MethodPost, refreshPath, nil, models.RefreshRequest{RefreshToken: refreshTok}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the current profile via GET /auth/me.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile patches the profile via PATCH /auth/profile.
func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPatch, "/auth/profile", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword calls POST /auth/change-password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/change-password", nil, models.ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, nil)
}

// Logout notifies the server via POST /auth/logout. Callers treat this as
// best-effort; local teardown never waits on it succeeding.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// CheckEmailExists probes POST /auth/check-email during registration.
func (c *Client) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/check-email", nil, models.CheckEmailRequest{Email: email}, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// SendVerificationCode calls POST /auth/send-verification.
func (c *Client) SendVerificationCode(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/send-verification", nil, models.CheckEmailRequest{Email: email}, nil)
}

// VerifyCode calls POST /auth/verify-code.
func (c *Client) VerifyCode(ctx context.Context, email, code string) error {
	return c.do(ctx, http.MethodPost, "/auth/verify-code", nil, models.VerifyCodeRequest{
		Email: email,
		Code:  code,
	}, nil)
}
