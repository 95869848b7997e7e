// Package storage uploads category images to an object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/interviewqa/apiserver/config"
)

const (
	BackendMinio = "minio"
	BackendGCS   = "gcs"
)

// ObjectStorage is the subset of object-store operations needed to publish
// images.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Bucket() string
}

// New builds the backend selected by cfg.Backend. It returns nil without an
// error when no backend is configured.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStorage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "":
		return nil, nil
	case BackendMinio:
		client, err := NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, err
		}
		return client, nil
	case BackendGCS:
		client, err := NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// ObjectURL returns the public address of key. Without a configured public
// base URL it falls back to a bucket-relative path.
func ObjectURL(publicURL, bucket, key string) string {
	base := strings.TrimRight(strings.TrimSpace(publicURL), "/")
	if base == "" {
		return "/" + bucket + "/" + key
	}
	return base + "/" + key
}
