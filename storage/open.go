package storage

import (
	"context"
	"fmt"
)

// Open builds the store selected by backend ("memory", "file" or "redis").
func Open(ctx context.Context, backend, filePath, redisURL string) (Store, error) {
	switch backend {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(filePath)
	case "redis":
		return NewRedisStore(ctx, redisURL, "restaurante", 0)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
