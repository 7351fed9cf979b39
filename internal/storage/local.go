package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorageClient stores exports on the local file system
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a new local storage client
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalStorageClient{baseDir: baseDir}, nil
}

// Close is a no-op for local storage
func (l *LocalStorageClient) Close() error {
	return nil
}

// BaseDir returns the export root
func (l *LocalStorageClient) BaseDir() string {
	return l.baseDir
}

// StoreFile writes data under the dated export folder
func (l *LocalStorageClient) StoreFile(ctx context.Context, name string, data []byte, timestamp time.Time) (string, error) {
	filePath := filepath.Join(l.baseDir, filepath.FromSlash(ExportObjectPath(name, timestamp)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", filePath, err)
	}
	return filePath, nil
}

// GetFile reads a stored export by its object path (as ListExports returns
// it) or by the path StoreFile returned
func (l *LocalStorageClient) GetFile(ctx context.Context, location string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, filepath.FromSlash(location)))
	if os.IsNotExist(err) {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", location, err)
	}
	return data, nil
}

// ListExports lists stored PNG exports relative to the base directory
func (l *LocalStorageClient) ListExports(ctx context.Context, limit int) ([]string, error) {
	var paths []string
	root := filepath.Join(l.baseDir, "exports")

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".png") {
			rel, _ := filepath.Rel(l.baseDir, p)
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk exports directory: %w", err)
	}
	return newestFirst(paths, limit), nil
}
