package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/litera-id/litera-backend/pkg/config"
)

// Store persists uploaded objects (book covers, avatars) under a key.
type Store interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// New selects a driver from configuration.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.LocalDir)
	case "minio":
		return NewMinioStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
