package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage abstracts where media files (article images, avatars, the
// site logo and favicon) live.
type Storage interface {
	// Save stores a file at the given path, overwriting any previous file.
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves a file from the given path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file; deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// Exists checks whether a file exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns the public URL for the file.
	GetURL(ctx context.Context, path string) (string, error)

	// GetSize returns the size of a file in bytes.
	GetSize(ctx context.Context, path string) (int64, error)
}

// Config holds storage configuration.
type Config struct {
	Type      string // local, cloudflare_r2
	BasePath  string // for local storage
	BaseURL   string // public URL base
	Bucket    string // for R2
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
	UseSSL    bool
}

// NewStorage creates a storage backend from configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
