// Package cache provides pluggable result caching for the placement
// pipeline.
//
// Two stages are worth caching: solved placements (a solve burns a
// multi-second search budget) and rendered artifacts (external
// converters). Keys for both are produced by a Keyer so that every
// backend stores under identical keys.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented store with per-entry expiry.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was
	// present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero or negative ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLs applied by the pipeline per key type.
const (
	// TTLPlacement keeps solved placements. Only explicitly seeded runs
	// are cached, and those replay identically, so entries stay valid
	// for as long as anyone cares to keep them.
	TTLPlacement = 7 * 24 * time.Hour

	// TTLArtifact keeps rendered artifacts, which are cheap to rebuild.
	TTLArtifact = 24 * time.Hour
)
