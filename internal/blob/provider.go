// Package blob hands out content references for uploaded bytes.
//
// A reference is an opaque URL string stored in media metadata. Whether it
// survives a restart depends on the provider: memory references do not,
// file and S3 references do (S3 ones until their presigned URL expires).
// The stores never release references.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophcloud/internal/config"
	"github.com/dmitrijs2005/gophcloud/internal/logging"
)

var (
	// ErrStaleReference reports a reference issued by an earlier process.
	ErrStaleReference = errors.New("stale content reference")
	ErrNotFound       = errors.New("content not found")
	ErrUnsupported    = errors.New("unsupported content reference")
)

// Provider creates and resolves content references.
type Provider interface {
	CreateReference(ctx context.Context, name, contentType string, data []byte) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// NewProvider builds the provider selected by cfg.BlobBackend.
func NewProvider(ctx context.Context, cfg *config.Config, logger logging.Logger) (Provider, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendMemory, "":
		return NewMemoryProvider(), nil
	case config.BlobBackendLocal:
		return NewLocalProvider(cfg.BlobDir, logger)
	case config.BlobBackendS3:
		return NewS3Provider(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}
