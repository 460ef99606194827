package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/readmore/core"
	"github.com/poiesic/readmore/storage"
)

// ResponseCache implements storage.ResponseCache on top of BadgerDB.
// Expiry is delegated to Badger's per-entry TTL.
type ResponseCache struct {
	backend *Backend
}

var _ storage.ResponseCache = (*ResponseCache)(nil)

// newResponseCache is an internal constructor that returns the concrete type.
func newResponseCache(backend *Backend) *ResponseCache {
	return &ResponseCache{backend: backend}
}

// NewResponseCache creates a response cache stored in backend.
// The caller keeps ownership of backend.
func NewResponseCache(backend *Backend) (storage.ResponseCache, error) {
	if backend == nil || backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	return newResponseCache(backend), nil
}

// Get retrieves a live entry by key.
func (c *ResponseCache) Get(ctx context.Context, key core.ID) (*core.CacheEntry, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var entry *core.CacheEntry
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeResponseKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			entry, unmarshalErr = storage.UnmarshalCacheEntry(val)
			return unmarshalErr
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Put stores entry with the given time to live.
func (c *ResponseCache) Put(ctx context.Context, entry *core.CacheEntry, ttl time.Duration) error {
	if ttl <= 0 {
		return storage.ErrInvalidTTL
	}
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now().UTC()
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		e := badger.NewEntry(makeResponseKey(entry.Key), storage.MarshalCacheEntry(entry)).WithTTL(ttl)
		if err := tx.SetEntry(e); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Purge removes all cached responses.
func (c *ResponseCache) Purge(ctx context.Context) (int, error) {
	if c.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	prefix := []byte(responseCachePrefix)
	count, err := c.backend.CountPrefix(prefix)
	if err != nil {
		return 0, err
	}
	if err := c.backend.DropPrefix(prefix); err != nil {
		return 0, err
	}
	c.backend.logger.Debug("purged response cache", "entries", count)
	return count, nil
}

// Close is a no-op; the backend is owned by the caller.
func (c *ResponseCache) Close() error {
	return nil
}
