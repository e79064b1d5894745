// Package storage abstracts the blob store that holds uploaded record files
// and generated QR images.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"arogyachain-server/internal/config"
)

// BlobStore is the contract for object storage. Upload returns the public
// URL of the stored object. Remove is used for compensation when a record
// row fails to persist after its blob was written. Exists supports
// reconciliation checks.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}

// NewFromConfig builds the configured blob store backend.
func NewFromConfig(cfg config.StorageConfig, logger *zap.Logger) (BlobStore, error) {
	switch cfg.Backend {
	case "minio":
		return NewMinioStore(cfg, logger)
	case "local":
		return NewLocalStore(cfg.LocalDir, cfg.LocalBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
