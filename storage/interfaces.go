package storage

import (
	"context"
	"time"

	"github.com/poiesic/readmore/core"
)

// ResponseCache stores encoded query responses with a time to live.
// Implementations must be thread-safe and support concurrent access.
type ResponseCache interface {
	// Get retrieves an entry by key.
	// Returns ErrNotFound if the entry doesn't exist or has expired.
	Get(ctx context.Context, key core.ID) (*core.CacheEntry, error)

	// Put stores an entry that expires after ttl.
	// Sets StoredAt if not already set.
	// Returns ErrInvalidTTL if ttl is not positive.
	Put(ctx context.Context, entry *core.CacheEntry, ttl time.Duration) error

	// Purge removes all entries and returns how many were removed.
	Purge(ctx context.Context) (int, error)

	// Close releases resources held by the cache.
	Close() error
}
