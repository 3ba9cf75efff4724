package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. It backs TECHRADAR_CACHE=none and --no-cache, and
// is what a Runner falls back to without a cache, so every analysis runs
// against the working tree.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache {
	return &NullCache{}
}

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
