package cache

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
)

// BlobStore is a byte-oriented cache shared by the in-process and Redis
// backends.
type BlobStore interface {
	GetBlob(ctx context.Context, key string) ([]byte, bool, error)
	SetBlob(ctx context.Context, key string, value []byte) error
	DeleteBlob(ctx context.Context, key string) error
}

// JSONLoader stores loader results as JSON in a BlobStore. Cache faults are
// logged and fall through to the loader.
type JSONLoader struct {
	blobs  BlobStore
	flight singleflight.Group
	logger *logging.Logger
}

func NewJSONLoader(blobs BlobStore, logger *logging.Logger) *JSONLoader {
	if logger == nil {
		logger = logging.Default()
	}
	return &JSONLoader{blobs: blobs, logger: logger}
}

func (l *JSONLoader) Invalidate(ctx context.Context, key string) error {
	if err := l.blobs.DeleteBlob(ctx, key); err != nil {
		return fmt.Errorf("delete cache key %s: %w", key, err)
	}
	return nil
}

func LoadJSON[T any](ctx context.Context, l *JSONLoader, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if l == nil || l.blobs == nil {
		return load(ctx)
	}

	if value, ok := readJSON[T](ctx, l, key); ok {
		return value, nil
	}

	value, err, _ := l.flight.Do(key, func() (any, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}

		raw, err := sonic.Marshal(loaded)
		if err != nil {
			l.logger.WarnContext(ctx, "encode cache value failed", "key", key, "error", err)
			return loaded, nil
		}
		if err := l.blobs.SetBlob(ctx, key, raw); err != nil {
			l.logger.WarnContext(ctx, "write cache value failed", "key", key, "error", err)
		}
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	return value.(T), nil
}

func readJSON[T any](ctx context.Context, l *JSONLoader, key string) (T, bool) {
	var out T
	raw, ok, err := l.blobs.GetBlob(ctx, key)
	if err != nil {
		l.logger.WarnContext(ctx, "read cache value failed", "key", key, "error", err)
		return out, false
	}
	if !ok {
		return out, false
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		l.logger.WarnContext(ctx, "decode cache value failed", "key", key, "error", err)
		return out, false
	}
	return out, true
}
