package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"moviedash/internal/logger"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSClient stores exports in a Google Cloud Storage bucket
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName string, opts ...option.ClientOption) (*GCSClient, error) {
	if bucketName == "" {
		return nil, errors.New("GCS bucket name is required")
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.Component("storage"),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// StoreFile uploads data under the dated export prefix and returns its gs:// URL
func (g *GCSClient) StoreFile(ctx context.Context, name string, data []byte, timestamp time.Time) (string, error) {
	objectPath := ExportObjectPath(name, timestamp)
	g.log.Info("Storing export", logger.Fields{"bucket": g.bucket, "object": objectPath})

	writer := g.client.Bucket(g.bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = GetContentType(name)
	writer.CacheControl = "private, max-age=0"
	writer.Metadata = map[string]string{
		"exported-at": timestamp.UTC().Format(time.RFC3339),
		"filename":    name,
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", g.bucket, objectPath), nil
}

// GetFile downloads an export by object path or gs:// URL
func (g *GCSClient) GetFile(ctx context.Context, location string) ([]byte, error) {
	objectPath := strings.TrimPrefix(location, "gs://"+g.bucket+"/")

	reader, err := g.client.Bucket(g.bucket).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for file %s: %w", objectPath, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", objectPath, err)
	}
	return data, nil
}

// ListExports lists exported PNG objects, newest first
func (g *GCSClient) ListExports(ctx context.Context, limit int) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: "exports/"})

	var paths []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, ".png") {
			paths = append(paths, attrs.Name)
		}
	}
	return newestFirst(paths, limit), nil
}
