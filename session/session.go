// Package session owns the authentication lifecycle: the current token,
// refresh token and user profile, persisted through the key-value store
// and exposed to UI code as an explicit three-state machine.
package session

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dev-7msolution/restaurante-mobile/client"
	"github.com/dev-7msolution/restaurante-mobile/config"
	"github.com/dev-7msolution/restaurante-mobile/logger"
	"github.com/dev-7msolution/restaurante-mobile/models"
	"github.com/dev-7msolution/restaurante-mobile/storage"
)

// State is the session's position in its lifecycle. Indeterminate means
// Restore has not finished yet; UI that depends on authentication must
// block on it rather than treating it as logged out.
type State int

const (
	StateIndeterminate State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "indeterminate"
	}
}

// Target is a navigation destination signaled to the UI layer.
type Target int

const (
	TargetHome Target = iota
	TargetLogin
)

// Navigator receives navigation signals from the session store. The UI
// wires its router here; the store never touches screens directly.
type Navigator interface {
	Navigate(target Target)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(Target)

func (f NavigatorFunc) Navigate(target Target) { f(target) }

// remoteLogoutTimeout bounds the best-effort server notification during
// logout; local teardown proceeds regardless of its outcome.
const remoteLogoutTimeout = 3 * time.Second

// Store holds the active session. All dependencies are injected; there is
// no package-level singleton.
type Store struct {
	api      *client.Client
	kv       storage.Store
	provider AuthProvider
	nav      Navigator

	mu      sync.RWMutex
	state   State
	token   string
	user    *models.User
	lastErr string
	ready   bool
}

// New builds a session store. nav may be nil when no UI is attached.
func New(api *client.Client, kv storage.Store, provider AuthProvider, nav Navigator) *Store {
	return &Store{
		api:      api,
		kv:       kv,
		provider: provider,
		nav:      nav,
		state:    StateIndeterminate,
	}
}

func (s *Store) navigate(t Target) {
	if s.nav != nil {
		s.nav.Navigate(t)
	}
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Ready reports whether Restore has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// IsAuthenticated holds exactly when both token and user are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Token returns the active bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the active profile snapshot, or nil when logged out.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Err returns the last normalized error message for the UI, or "".
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearError discards the last error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// Restore loads a persisted session at process start. A stored
// token+user pair is set optimistically, then validated against
// GET /auth/me; validation failure tears the session down. When the user
// chose not to be remembered, residual keys are purged instead.
func (s *Store) Restore(ctx context.Context) {
	storedToken, tokenErr := s.kv.Get(ctx, config.TokenKey)
	storedUser, userErr := s.kv.Get(ctx, config.UserKey)
	remember, _ := s.kv.Get(ctx, config.RememberKey)

	switch {
	case remember == "false":
		// The user opted out of being remembered; purge leftovers.
		if err := s.kv.DeleteMany(ctx, config.TokenKey, config.UserKey, config.RefreshTokenKey); err != nil {
			logger.Error("failed to purge unremembered session", err)
		}
		s.mu.Lock()
		s.state = StateUnauthenticated
		s.mu.Unlock()

	case tokenErr == nil && userErr == nil && storedToken != "" && storedUser != "":
		var user models.User
		if err := json.Unmarshal([]byte(storedUser), &user); err != nil {
			logger.Error("stored user profile is corrupt, discarding session", err)
			s.teardown(ctx)
			break
		}

		s.mu.Lock()
		s.state = StateAuthenticated
		s.token = storedToken
		s.user = &user
		s.mu.Unlock()

		if _, err := s.api.Me(ctx); err != nil {
			logger.Warn("stored token rejected by server, logging out", zap.Error(err))
			s.Logout(ctx)
		}

	default:
		// A token without its user (or vice versa) means a crash landed
		// between the persist writes; remove the leftovers.
		if storedToken != "" || storedUser != "" {
			if err := s.kv.DeleteMany(ctx, config.TokenKey, config.UserKey, config.RefreshTokenKey); err != nil {
				logger.Error("failed to purge partial session", err)
			}
		}
		s.mu.Lock()
		s.state = StateUnauthenticated
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
}

// Login authenticates through the configured provider and activates the
// resulting session. A failed login leaves any prior session untouched.
// Logging in while already authenticated replaces the session in place.
func (s *Store) Login(ctx context.Context, email, password string, rememberMe bool) error {
	resp, err := s.provider.Login(ctx, email, password)
	if err != nil {
		s.setError(err)
		return err
	}
	if resp.Token == "" || resp.User == nil {
		err := &client.APIError{Kind: client.KindUnknown, Message: "Erro na comunicação com o servidor"}
		s.setError(err)
		return err
	}

	if err := s.persist(ctx, resp.Token, resp.RefreshToken, resp.User, rememberMe); err != nil {
		s.setError(err)
		return err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.token = resp.Token
	s.user = resp.User
	s.lastErr = ""
	s.mu.Unlock()

	logger.Info("login succeeded", zap.String("email", resp.User.Email))
	s.navigate(TargetHome)
	return nil
}

// Register creates an account through the provider. On success the UI is
// sent to the login screen; there is no auto-login.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	if err := s.provider.Register(ctx, name, email, password); err != nil {
		s.setError(err)
		return err
	}

	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()

	s.navigate(TargetLogin)
	return nil
}

// Refresh exchanges the stored refresh token for a new access token. The
// user is unchanged. A failed refresh always terminates the session; a
// stale token is never left active.
func (s *Store) Refresh(ctx context.Context) error {
	resp, err := s.api.RefreshToken(ctx)
	if err != nil {
		logger.Warn("token refresh failed, logging out", zap.Error(err))
		s.Logout(ctx)
		return err
	}

	if err := s.kv.Set(ctx, config.TokenKey, resp.Token); err != nil {
		logger.Error("failed to persist refreshed token", err)
	}
	if resp.RefreshToken != "" {
		if err := s.kv.Set(ctx, config.RefreshTokenKey, resp.RefreshToken); err != nil {
			logger.Error("failed to persist rotated refresh token", err)
		}
	}

	s.mu.Lock()
	s.token = resp.Token
	s.mu.Unlock()
	return nil
}

// Logout clears the session. The remote notification is best-effort with
// a short deadline; local teardown always completes.
func (s *Store) Logout(ctx context.Context) {
	remoteCtx, cancel := context.WithTimeout(ctx, remoteLogoutTimeout)
	if err := s.api.Logout(remoteCtx); err != nil {
		logger.Warn("remote logout failed", zap.Error(err))
	}
	cancel()

	s.teardown(ctx)
	s.navigate(TargetLogin)
}

// teardown removes all session keys and clears in-memory state.
func (s *Store) teardown(ctx context.Context) {
	keys := []string{config.TokenKey, config.UserKey, config.RememberKey, config.RefreshTokenKey}
	if err := s.kv.DeleteMany(ctx, keys...); err != nil {
		logger.Error("failed to remove session keys", err)
	}

	s.mu.Lock()
	s.state = StateUnauthenticated
	s.token = ""
	s.user = nil
	s.lastErr = ""
	s.mu.Unlock()
}

// persist writes the session keys. Token and user are written before the
// remember flag so a partially persisted session is never observable as
// valid without its profile.
func (s *Store) persist(ctx context.Context, token, refreshToken string, user *models.User, rememberMe bool) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return &client.APIError{Kind: client.KindUnknown, Message: "Erro desconhecido", Err: err}
	}

	if err := s.kv.Set(ctx, config.TokenKey, token); err != nil {
		return &client.APIError{Kind: client.KindUnknown, Message: "Erro desconhecido", Err: err}
	}
	if err := s.kv.Set(ctx, config.UserKey, string(userJSON)); err != nil {
		// Never leave a token persisted without its user.
		_ = s.kv.Delete(ctx, config.TokenKey)
		return &client.APIError{Kind: client.KindUnknown, Message: "Erro desconhecido", Err: err}
	}
	if refreshToken != "" {
		if err := s.kv.Set(ctx, config.RefreshTokenKey, refreshToken); err != nil {
			logger.Error("failed to persist refresh token", err)
		}
	}
	if err := s.kv.Set(ctx, config.RememberKey, strconv.FormatBool(rememberMe)); err != nil {
		logger.Error("failed to persist remember flag", err)
	}
	return nil
}

func (s *Store) setError(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}
