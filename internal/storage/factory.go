package storage

import (
	"context"
	"fmt"

	"moviedash/internal/config"
)

// NewExportStore creates the export store selected by EXPORT_STORAGE.
// It returns a nil store when exports are not persisted.
func NewExportStore(ctx context.Context, cfg *config.Config) (ExportStore, error) {
	switch cfg.ExportStorage {
	case config.ExportStorageLocal:
		dir := cfg.ExportDir
		if dir == "" {
			dir = "exports"
		}
		localClient, err := NewLocalStorageClient(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case config.ExportStorageGCS:
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	case config.ExportStorageNone, "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported export storage: %s", cfg.ExportStorage)
	}
}
