package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-7msolution/restaurante-mobile/client"
	"github.com/dev-7msolution/restaurante-mobile/config"
	"github.com/dev-7msolution/restaurante-mobile/models"
	"github.com/dev-7msolution/restaurante-mobile/storage"
)

var testCreds = config.TestCredentials{
	Email:    "teste@restaurante.com",
	Password: "123456",
	UserID:   "1",
	Name:     "Usuário Teste",
	Role:     "customer",
}

// navRecorder captures navigation signals for assertions.
type navRecorder struct {
	mu      sync.Mutex
	targets []Target
}

func (n *navRecorder) Navigate(t Target) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, t)
}

func (n *navRecorder) last() (Target, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.targets) == 0 {
		return 0, false
	}
	return n.targets[len(n.targets)-1], true
}

func newTestAPI(url string, kv storage.Store) *client.Client {
	api := client.New(url, 5*time.Second, kv)
	api.RetryDelay = time.Millisecond
	return api
}

// acceptingServer validates any bearer token and acknowledges logout.
func acceptingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			if r.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "Token não fornecido"})
				return
			}
			json.NewEncoder(w).Encode(models.User{ID: "1", Email: testCreds.Email, Name: testCreds.Name})
		case "/auth/logout":
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDevLoginActivatesSession(t *testing.T) {
	srv := acceptingServer(t)
	kv := storage.NewMemoryStore()
	api := newTestAPI(srv.URL, kv)
	nav := &navRecorder{}

	s := New(api, kv, NewDevProvider(testCreds, 0, nil), nav)

	ctx := context.Background()
	require.NoError(t, s.Login(ctx, testCreds.Email, testCreds.Password, true))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, DevToken, s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, testCreds.Email, s.User().Email)

	tok, err := kv.Get(ctx, config.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, DevToken, tok)

	remember, err := kv.Get(ctx, config.RememberKey)
	require.NoError(t, err)
	assert.Equal(t, "true", remember)

	target, ok := nav.last()
	require.True(t, ok)
	assert.Equal(t, TargetHome, target)
}

func TestDevLoginRejectsWrongCredentials(t *testing.T) {
	kv := storage.NewMemoryStore()
	api := newTestAPI("http://127.0.0.1:0", kv)

	s := New(api, kv, NewDevProvider(testCreds, 0, nil), nil)

	err := s.Login(context.Background(), "alguem@exemplo.com", "errada", true)
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, client.KindInvalidCredentials, apiErr.Kind)

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, "Credenciais inválidas", s.Err())

	s.ClearError()
	assert.Empty(t, s.Err())
}

func TestRememberedSessionSurvivesRestart(t *testing.T) {
	srv := acceptingServer(t)
	kv := storage.NewMemoryStore()
	api := newTestAPI(srv.URL, kv)

	first := New(api, kv, NewDevProvider(testCreds, 0, nil), nil)
	require.NoError(t, first.Login(context.Background(), testCreds.Email, testCreds.Password, true))

	// A fresh store over the same persisted keys simulates a restart.
	second := New(api, kv, NewDevProvider(testCreds, 0, nil), nil)
	assert.False(t, second.Ready())

	second.Restore(context.Background())

	assert.True(t, second.Ready())
	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, DevToken, second.Token())
}

func TestUnrememberedSessionIsPurgedOnRestart(t *testing.T) {
	srv := acceptingServer(t)
	kv := storage.NewMemoryStore()
	api := newTestAPI(srv.URL, kv)

	first := New(api, kv, NewDevProvider(testCreds, 0, nil), nil)
	require.NoError(t, first.Login(context.Background(), testCreds.Email, testCreds.Password, false))

	second := New(api, kv, NewDevProvider(testCreds, 0, nil), nil)
	second.Restore(context.Background())

	assert.True(t, second.Ready())
	assert.False(t, second.IsAuthenticated())
	assert.Equal(t, StateUnauthenticated, second.State())

	_, err := kv.Get(context.Background(), config.TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRestoreWithNoSessionIsUnauthenticated(t *testing.T) {
	kv := storage.NewMemoryStore()
	api := newTestAPI("http://127.0.0.1:0", kv)

	s := New(api, kv, NewDevProvider(testCreds, 0, nil), nil)
	s.Restore(context.Background())

	assert.True(t, s.Ready())
	assert.Equal(t, StateUnauthenticated, s.State())
}

func TestRestorePurgesPartialSession(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	// A token with no stored user is what a crash between the session
	// writes leaves behind.
	require.NoError(t, kv.Set(ctx, config.TokenKey, "orphan-token"))
	require.NoError(t, kv.Set(ctx, config.RefreshTokenKey, "orphan-refresh"))

	api := newTestAPI("http://127.0.0.1:0", kv)
	s := New(api, kv, NewDevProvider(testCreds, 0, nil), nil)
	s.Restore(ctx)

	assert.True(t, s.Ready())
	assert.Equal(t, StateUnauthenticated, s.State())
	for _, key := range []string{config.TokenKey, config.RefreshTokenKey} {
		_, err := kv.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrNotFound, key)
	}
}

func TestRestoreTearsDownRejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Token inválido ou expirado"})
	}))
	defer srv.Close()

	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, config.TokenKey, "expired-token"))
	require.NoError(t, kv.Set(ctx, config.UserKey, `{"id":"1","email":"teste@restaurante.com"}`))
	require.NoError(t, kv.Set(ctx, config.RememberKey, "true"))

	api := newTestAPI(srv.URL, kv)
	nav := &navRecorder{}
	s := New(api, kv, NewDevProvider(testCreds, 0, nil), nav)

	s.Restore(ctx)

	assert.True(t, s.Ready())
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, StateUnauthenticated, s.State())

	_, err := kv.Get(ctx, config.TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	target, ok := nav.last()
	require.True(t, ok)
	assert.Equal(t, TargetLogin, target)
}

func TestRefreshFailureTerminatesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			json.NewEncoder(w).Encode(models.User{ID: "1", Email: testCreds.Email})
		case "/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Refresh token inválido"})
		case "/auth/logout":
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, config.TokenKey, "tok"))
	require.NoError(t, kv.Set(ctx, config.UserKey, `{"id":"1"}`))
	require.NoError(t, kv.Set(ctx, config.RefreshTokenKey, "revoked-refresh"))

	api := newTestAPI(srv.URL, kv)
	nav := &navRecorder{}
	s := New(api, kv, NewDevProvider(testCreds, 0, nil), nav)
	s.Restore(ctx)

	require.Error(t, s.Refresh(ctx))

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, StateUnauthenticated, s.State())
	for _, key := range []string{config.TokenKey, config.UserKey, config.RefreshTokenKey, config.RememberKey} {
		_, err := kv.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrNotFound, key)
	}

	target, ok := nav.last()
	require.True(t, ok)
	assert.Equal(t, TargetLogin, target)
}

func TestRegisterNavigatesToLogin(t *testing.T) {
	kv := storage.NewMemoryStore()
	api := newTestAPI("http://127.0.0.1:0", kv)
	nav := &navRecorder{}

	s := New(api, kv, NewDevProvider(testCreds, 0, nil), nav)

	require.NoError(t, s.Register(context.Background(), "Novo Usuário", "novo@exemplo.com", "segredo"))
	assert.False(t, s.IsAuthenticated())

	target, ok := nav.last()
	require.True(t, ok)
	assert.Equal(t, TargetLogin, target)
}

func TestLogoutIsBestEffortWhenServerUnreachable(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, config.TokenKey, "tok"))
	require.NoError(t, kv.Set(ctx, config.UserKey, `{"id":"1"}`))

	// Unroutable base URL: the remote call fails, teardown still runs.
	api := newTestAPI("http://127.0.0.1:1", kv)
	s := New(api, kv, NewDevProvider(testCreds, 0, nil), nil)
	s.Restore(ctx)

	s.Logout(ctx)

	assert.False(t, s.IsAuthenticated())
	_, err := kv.Get(ctx, config.TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDevProviderFallsThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(models.LoginResponse{
			Token: "api-token",
			User:  &models.User{ID: "42", Email: "real@exemplo.com", Name: "Real"},
		})
	}))
	defer srv.Close()

	kv := storage.NewMemoryStore()
	api := newTestAPI(srv.URL, kv)
	provider := NewDevProvider(testCreds, 0, NewAPIProvider(api))

	s := New(api, kv, provider, nil)
	require.NoError(t, s.Login(context.Background(), "real@exemplo.com", "senha", true))

	assert.Equal(t, "api-token", s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, "real@exemplo.com", s.User().Email)
}
