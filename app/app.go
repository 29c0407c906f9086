// Package app composes the client core from configuration: the storage
// backend, the API client, the auth provider and the session store.
package app

import (
	"context"
	"io"
	"time"

	"github.com/dev-7msolution/restaurante-mobile/cart"
	"github.com/dev-7msolution/restaurante-mobile/client"
	"github.com/dev-7msolution/restaurante-mobile/config"
	"github.com/dev-7msolution/restaurante-mobile/session"
	"github.com/dev-7msolution/restaurante-mobile/storage"
)

// devLoginDelay simulates network latency on the offline dev login.
var devLoginDelay = time.Second

// App is the assembled client core.
type App struct {
	KV      storage.Store
	API     *client.Client
	Session *session.Store
	Cart    *cart.Cart
}

// New builds the core from cfg. STORAGE_BACKEND selects the store,
// API_BASE_URL and API_TIMEOUT shape the client, and DEV_MODE decides the
// auth provider: enabled, the fixed test credentials log in locally and
// everything else falls through to the API; disabled, all logins go to
// the API. nav may be nil when no UI is attached.
func New(ctx context.Context, cfg config.Config, nav session.Navigator) (*App, error) {
	kv, err := storage.Open(ctx, cfg.StorageBackend, cfg.StorageFile, cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	api := client.New(cfg.APIBaseURL, cfg.APITimeout, kv)

	var provider session.AuthProvider = session.NewAPIProvider(api)
	if cfg.DevMode {
		provider = session.NewDevProvider(cfg.TestCreds, devLoginDelay, provider)
	}

	return &App{
		KV:      kv,
		API:     api,
		Session: session.New(api, kv, provider, nav),
		Cart:    cart.New(),
	}, nil
}

// Close releases the storage backend when it holds external resources.
func (a *App) Close() error {
	if closer, ok := a.KV.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
