package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-7msolution/restaurante-mobile/config"
	"github.com/dev-7msolution/restaurante-mobile/models"
	"github.com/dev-7msolution/restaurante-mobile/session"
	"github.com/dev-7msolution/restaurante-mobile/storage"
)

func init() {
	// The simulated network delay only slows tests down.
	devLoginDelay = 0
}

func testConfig() config.Config {
	return config.Config{
		Env:            "test",
		APIBaseURL:     "http://127.0.0.1:0",
		APITimeout:     time.Second,
		DevMode:        true,
		StorageBackend: "memory",
		TestCreds: config.TestCredentials{
			Email:    "teste@restaurante.com",
			Password: "123456",
			UserID:   "1",
			Name:     "Usuário Teste",
			Role:     "customer",
		},
	}
}

func TestNewSelectsConfiguredBackend(t *testing.T) {
	ctx := context.Background()

	a, err := New(ctx, testConfig(), nil)
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, a.KV)

	cfg := testConfig()
	cfg.StorageBackend = "file"
	cfg.StorageFile = filepath.Join(t.TempDir(), "kv.json")
	a, err = New(ctx, cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &storage.FileStore{}, a.KV)

	cfg.StorageBackend = "bogus"
	_, err = New(ctx, cfg, nil)
	assert.Error(t, err)
}

func TestDevModeLogsInOffline(t *testing.T) {
	ctx := context.Background()

	// The base URL is unreachable: a dev login must not need it.
	a, err := New(ctx, testConfig(), nil)
	require.NoError(t, err)

	creds := testConfig().TestCreds
	require.NoError(t, a.Session.Login(ctx, creds.Email, creds.Password, true))
	assert.True(t, a.Session.IsAuthenticated())
	assert.Equal(t, session.DevToken, a.Session.Token())
}

func TestDevModeDisabledUsesAPI(t *testing.T) {
	var loginCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		atomic.AddInt32(&loginCalls, 1)
		json.NewEncoder(w).Encode(models.LoginResponse{
			Token: "api-token",
			User:  &models.User{ID: "1", Email: "teste@restaurante.com", Name: "Usuário Teste"},
		})
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.DevMode = false
	cfg.APIBaseURL = srv.URL

	ctx := context.Background()
	a, err := New(ctx, cfg, nil)
	require.NoError(t, err)

	// Even the test credentials go over the wire with the bypass off.
	require.NoError(t, a.Session.Login(ctx, cfg.TestCreds.Email, cfg.TestCreds.Password, true))
	assert.Equal(t, int32(1), atomic.LoadInt32(&loginCalls))
	assert.Equal(t, "api-token", a.Session.Token())
}

func TestCloseIsSafeForPlainBackends(t *testing.T) {
	a, err := New(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	assert.NoError(t, a.Close())
}
