// Package cache stores serialized analysis results.
//
// # Backends
//
//   - [FileCache]: entries as JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers
//   - [NullCache]: stores nothing, for disabled caching and tests
//
// [Scoped] namespaces the keys of any backend with a prefix.
//
// # Keys
//
// [AnalysisKey] derives the key of an analysis from everything its result
// depends on: the repository HEAD, the manifest files that were analyzed,
// the mapping table fingerprint and the analysis options. A change to any of
// them produces a different key, so entries are never invalidated explicitly.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long analysis results stay cached.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key-value store with per-entry expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the data stored under key. A missing or expired entry is
	// reported as a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

type scoped struct {
	inner  Cache
	prefix string
}

// Scoped returns a Cache that prepends prefix to every key before
// delegating to inner.
func Scoped(inner Cache, prefix string) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &scoped{inner: inner, prefix: prefix}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *scoped) Close() error { return s.inner.Close() }
