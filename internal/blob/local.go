package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophcloud/internal/logging"
	"github.com/google/uuid"
)

// LocalProvider stores content as files under a base directory and hands out
// file:// URLs.
type LocalProvider struct {
	basePath string
	logger   logging.Logger
}

func NewLocalProvider(dir string, logger logging.Logger) (*LocalProvider, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("blob directory is not configured")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve blob directory: %w", err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}

	logger = logger.With("module", "blob-local")
	logger.Debug(context.Background(), "local blob storage initialized", "path", abs)

	return &LocalProvider{basePath: abs, logger: logger}, nil
}

func (l *LocalProvider) CreateReference(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(l.basePath, uuid.NewString()+strings.ToLower(filepath.Ext(name)))
	if err := os.WriteFile(fullPath, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	l.logger.Debug(ctx, "blob stored", "path", fullPath, "bytes", len(data))

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(fullPath)}
	return u.String(), nil
}

func (l *LocalProvider) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "file" {
		return nil, ErrUnsupported
	}

	fullPath := filepath.Clean(filepath.FromSlash(u.Path))
	rel, err := filepath.Rel(l.basePath, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, ErrUnsupported
	}

	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}
