package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/poiesic/readmore/core"
	"github.com/poiesic/readmore/storage"
)

// CachedClient serves repeated cacheable queries from a ResponseCache.
// A query is cacheable when it carries a positive "maxage" parameter, in
// seconds; the response is kept for that long. Other queries always go to
// the wrapped client.
type CachedClient struct {
	inner  QueryClient
	cache  storage.ResponseCache
	logger *slog.Logger
}

var _ QueryClient = (*CachedClient)(nil)

// CacheOption configures a CachedClient.
type CacheOption func(*CachedClient) error

// WithCacheLogger sets a custom logger.
// Default is slog.Default().
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CachedClient) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCachedClient wraps inner with a response cache.
func NewCachedClient(inner QueryClient, cache storage.ResponseCache, opts ...CacheOption) (*CachedClient, error) {
	if inner == nil {
		return nil, ErrQueryClientRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}

	c := &CachedClient{
		inner:  inner,
		cache:  cache,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Get returns a cached response when one is live, otherwise queries the
// wrapped client and caches successful responses. Cache failures are logged
// and never fail the query.
func (c *CachedClient) Get(ctx context.Context, params Params) (*Response, error) {
	ttl, ok := cacheTTL(params)
	if !ok {
		return c.inner.Get(ctx, params)
	}

	key := core.IDFromContent(params.Encode())
	if resp, ok := c.lookup(ctx, key); ok {
		return resp, nil
	}

	resp, err := c.inner.Get(ctx, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return resp, nil
	}

	body, err := json.Marshal(resp)
	if err != nil {
		c.logger.Warn("error encoding response for cache", "err", err)
		return resp, nil
	}
	if err := c.cache.Put(ctx, &core.CacheEntry{Key: key, Body: body}, ttl); err != nil {
		c.logger.Warn("error caching response", "key", key, "err", err)
	}
	return resp, nil
}

func (c *CachedClient) lookup(ctx context.Context, key core.ID) (*Response, bool) {
	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("error reading response cache", "key", key, "err", err)
		}
		return nil, false
	}

	var resp Response
	if err := json.Unmarshal(entry.Body, &resp); err != nil {
		c.logger.Warn("discarding undecodable cached response", "key", key, "err", err)
		return nil, false
	}
	c.logger.Debug("response cache hit", "key", key, "age", time.Since(entry.StoredAt))
	return &resp, true
}

// cacheTTL reads the maxage parameter.
func cacheTTL(params Params) (time.Duration, bool) {
	raw, ok := params["maxage"]
	if !ok {
		return 0, false
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}
