// Package cache stores rendered output so that unchanged decks are not
// evaluated and rendered again.
//
// Entries are keyed by [OutputKey], a hash of the layer names and the output
// format, so editing any layer name invalidates the entry. Two
// implementations are provided: [FileCache] for the CLI and [NullCache]
// for when caching is disabled.
package cache

import (
	"context"
	"time"
)

// TTLOutput is how long rendered output stays cached.
const TTLOutput = 7 * 24 * time.Hour

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the data stored under key. hit is false when there is no
	// live entry, which is not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}

// OutputKey returns the cache key for a deck's layer names rendered in
// format. Deck names are not part of the key as they do not change the
// evaluation, but they do appear in some formats, so callers include them
// in format when needed.
func OutputKey(format string, layerNames []string) string {
	return hashKey("output", format, layerNames)
}
