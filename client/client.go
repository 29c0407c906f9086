// Package client wraps the restaurant REST API with bearer-token
// attachment, 401-triggered refresh-and-replay, bounded retry on transient
// network failure, and error normalization. Callers never see raw
// transport errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dev-7msolution/restaurante-mobile/config"
	"github.com/dev-7msolution/restaurante-mobile/logger"
	"github.com/dev-7msolution/restaurante-mobile/models"
	"github.com/dev-7msolution/restaurante-mobile/storage"
)

const refreshPath = "/auth/refresh"

// sessionKeys are purged together when a refresh attempt fails for good.
var sessionKeys = []string{config.TokenKey, config.UserKey, config.RefreshTokenKey}

// Client is the authenticated API client. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      storage.Store

	// MaxRetries bounds transient network retries, counted per request
	// chain. Concurrent requests retry independently.
	MaxRetries int
	// RetryDelay is the linear backoff base: retry n waits n×RetryDelay.
	RetryDelay time.Duration

	refreshMu sync.Mutex
}

// New builds a client against baseURL. The store holds the persisted
// session keys the client reads tokens from.
func New(baseURL string, timeout time.Duration, store storage.Store) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}

// token reads the current bearer token; absent means unauthenticated.
func (c *Client) token(ctx context.Context) string {
	tok, err := c.store.Get(ctx, config.TokenKey)
	if err != nil {
		return ""
	}
	return tok
}

// send performs a single HTTP exchange and drains the response body.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

// sendRetry wraps send with the network-failure retry loop. Any response,
// success or not, stops the loop; only transport errors are retried.
func (c *Client) sendRetry(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (int, []byte, error) {
	for attempt := 0; ; attempt++ {
		status, data, err := c.send(ctx, method, path, query, payload, token)
		if err == nil {
			return status, data, nil
		}
		if attempt >= c.MaxRetries {
			return 0, nil, err
		}

		delay := time.Duration(attempt+1) * c.RetryDelay
		logger.Warn("network error, retrying",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// do runs the full request pipeline and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return &APIError{Kind: KindUnknown, Message: kindMessages[KindUnknown], Err: err}
		}
	}

	token := c.token(ctx)
	status, data, err := c.sendRetry(ctx, method, path, query, payload, token)
	if err != nil {
		return normalizeNetwork(err)
	}

	if status == http.StatusUnauthorized && path != refreshPath {
		status, data = c.refreshAndReplay(ctx, method, path, query, payload, token, status, data)
	}

	if status >= 400 {
		return normalizeStatus(status, serverMessage(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{Status: status, Kind: KindUnknown, Message: kindMessages[KindUnknown], Err: err}
		}
	}
	return nil
}

// refreshAndReplay performs the single-flight refresh triggered by a 401,
// then replays the original request once against the new token. Any
// failure of the refresh itself purges the session keys and leaves the
// caller with the original 401, never the refresh error.
func (c *Client) refreshAndReplay(ctx context.Context, method, path string, query url.Values, payload []byte, usedToken string, origStatus int, origBody []byte) (int, []byte) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another request may have refreshed while we waited on the lock.
	if tok := c.token(ctx); tok != "" && tok != usedToken {
		if status, data, err := c.sendRetry(ctx, method, path, query, payload, tok); err == nil {
			return status, data
		}
		return origStatus, origBody
	}

	refreshTok, err := c.store.Get(ctx, config.RefreshTokenKey)
	if err != nil || refreshTok == "" {
		return origStatus, origBody
	}

	body, _ := json.Marshal(models.RefreshRequest{RefreshToken: refreshTok})
	status, data, err := c.send(ctx, http.MethodPost, refreshPath, nil, body, "")
	if err != nil || status >= 400 {
		logger.Warn("token refresh failed, purging session", zap.Error(err), zap.Int("status", status))
		if derr := c.store.DeleteMany(ctx, sessionKeys...); derr != nil {
			logger.Error("failed to purge session keys", derr)
		}
		return origStatus, origBody
	}

	var refreshed models.RefreshResponse
	if err := json.Unmarshal(data, &refreshed); err != nil || refreshed.Token == "" {
		return origStatus, origBody
	}

	if err := c.store.Set(ctx, config.TokenKey, refreshed.Token); err != nil {
		logger.Error("failed to persist refreshed token", err)
	}
	if refreshed.RefreshToken != "" {
		if err := c.store.Set(ctx, config.RefreshTokenKey, refreshed.RefreshToken); err != nil {
			logger.Error("failed to persist rotated refresh token", err)
		}
	}

	replayStatus, replayData, err := c.sendRetry(ctx, method, path, query, payload, refreshed.Token)
	if err != nil {
		return origStatus, origBody
	}
	return replayStatus, replayData
}

// serverMessage extracts an explicit error message from a failure body.
func serverMessage(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
