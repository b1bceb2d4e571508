// Package cache stores rendered artifacts so that re-rendering an unchanged
// layout does not pay for format conversion again.
//
// Keys are derived from the content hash of a layout plus the render
// options (see [ArtifactKey]); equal layouts rendered the same way share an
// entry. Only encoded output is cached. Histograms and sessions are never
// stored.
//
// Three backends are provided:
//   - [MemoryCache]: process-local, used by the HTTP UI
//   - [FileCache]: a directory on disk, used by the CLI when a cache
//     directory is configured
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is the interface of artifact storage backends.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
