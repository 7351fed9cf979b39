package storage

import (
	"context"
	"time"
)

// ExportStore persists exported chart images
type ExportStore interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores data under name and returns where it was written
	StoreFile(ctx context.Context, name string, data []byte, timestamp time.Time) (string, error)

	// GetFile retrieves a file by the location StoreFile returned
	GetFile(ctx context.Context, location string) ([]byte, error)

	// ListExports lists stored exports, newest first
	ListExports(ctx context.Context, limit int) ([]string, error)
}
