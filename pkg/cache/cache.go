// Package cache stores rendered artifacts between runs.
//
// Three backends implement [Cache]: [FileCache] for the CLI's user cache
// directory, [RedisCache] for a shared cache across machines, and
// [NullCache] when caching is disabled. Keys are derived by a [Keyer] from
// the hash of the input network and the render options.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// TTLArtifact is the default lifetime of a rendered artifact.
const TTLArtifact = 7 * 24 * time.Hour
