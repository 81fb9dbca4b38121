// Package cache stores compiled grids between runs.
//
// Entries are opaque byte slices addressed by string keys. Three backends
// share the [Cache] interface:
//
//   - [FileCache]: one file per entry under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance (for `gridgen serve` fleets)
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys come from a [Keyer] so that every caller derives the same key for
// the same compile options. Values are usually msgpack, see [Encode].
package cache

import (
	"context"
	"time"
)

// TTLOutput is how long a compiled output stays cached.
const TTLOutput = 7 * 24 * time.Hour

// Cache is a key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// NullCache is a Cache that never stores anything.
type NullCache struct{}

// NewNullCache returns a cache for which every Get misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
