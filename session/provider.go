package session

import (
	"context"
	"time"

	"github.com/dev-7msolution/restaurante-mobile/client"
	"github.com/dev-7msolution/restaurante-mobile/config"
	"github.com/dev-7msolution/restaurante-mobile/models"
)

// AuthProvider performs the credential exchange behind Login and Register.
// The store itself stays provider-agnostic: the same state machine runs
// against the real API or the offline dev provider.
type AuthProvider interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, name, email, password string) error
}

// APIProvider authenticates against the remote API.
type APIProvider struct {
	api *client.Client
}

func NewAPIProvider(api *client.Client) *APIProvider {
	return &APIProvider{api: api}
}

func (p *APIProvider) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	return p.api.Login(ctx, email, password)
}

func (p *APIProvider) Register(ctx context.Context, name, email, password string) error {
	return p.api.Register(ctx, name, email, password)
}

// DevToken is the synthesized bearer credential issued by the dev
// provider. It is not a real JWT and is only honored by optimistic local
// state, never by a real backend.
const DevToken = "mock-jwt-token-for-testing"

// DevProvider satisfies logins with the fixed test credentials after a
// simulated network delay, so the app can be exercised with no backend.
// Credentials that do not match fall through to the next provider.
type DevProvider struct {
	creds    config.TestCredentials
	delay    time.Duration
	fallback AuthProvider
}

// NewDevProvider builds the offline provider. fallback may be nil, in
// which case non-matching credentials fail as invalid.
func NewDevProvider(creds config.TestCredentials, delay time.Duration, fallback AuthProvider) *DevProvider {
	return &DevProvider{creds: creds, delay: delay, fallback: fallback}
}

func (p *DevProvider) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *DevProvider) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	if email == p.creds.Email && password == p.creds.Password {
		if err := p.sleep(ctx, p.delay); err != nil {
			return nil, err
		}
		return &models.LoginResponse{
			Token: DevToken,
			User: &models.User{
				ID:    p.creds.UserID,
				Name:  p.creds.Name,
				Email: p.creds.Email,
				Role:  p.creds.Role,
			},
		}, nil
	}
	if p.fallback != nil {
		return p.fallback.Login(ctx, email, password)
	}
	return nil, &client.APIError{
		Status:  401,
		Kind:    client.KindInvalidCredentials,
		Message: "Credenciais inválidas",
	}
}

func (p *DevProvider) Register(ctx context.Context, name, email, password string) error {
	// Dev mode simulates a successful registration for any input.
	return p.sleep(ctx, p.delay+500*time.Millisecond)
}
