package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSKV is a KV backed by a Google Cloud Storage bucket, one object per key
// under an optional prefix. It assumes Application Default Credentials
// unless overridden with client options (e.g. a local emulator endpoint).
type GCSKV struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSKV creates a bucket-backed store.
func NewGCSKV(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCSKV, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs store: bucket name is required")
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs store: create storage client: %w", err)
	}
	return &GCSKV{client: client, bucket: bucket, prefix: prefix}, nil
}

// Get implements the KV interface.
func (g *GCSKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	rc, err := g.client.Bucket(g.bucket).Object(g.object(key)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("gcs store: reading object %s: %w", g.object(key), err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, fmt.Errorf("gcs store: reading bytes for %s: %w", g.object(key), err)
	}
	return raw, true, nil
}

// Set implements the KV interface.
func (g *GCSKV) Set(ctx context.Context, key string, value []byte) error {
	w := g.client.Bucket(g.bucket).Object(g.object(key)).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(value); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs store: writing object %s: %w", g.object(key), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs store: finalize object %s: %w", g.object(key), err)
	}
	return nil
}

// Delete implements the KV interface.
func (g *GCSKV) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(g.object(key)).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs store: deleting object %s: %w", g.object(key), err)
	}
	return nil
}

// Close releases the underlying storage client.
func (g *GCSKV) Close() error {
	return g.client.Close()
}

func (g *GCSKV) object(key string) string {
	if g.prefix == "" {
		return key + ".json"
	}
	return g.prefix + "/" + key + ".json"
}

// Ensure GCSKV implements the KV interface.
var _ KV = (*GCSKV)(nil)
