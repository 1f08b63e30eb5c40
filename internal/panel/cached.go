package panel

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/vmunix/ampanel/internal/backend"
)

// Cache stores raw metadata responses. GetCache returns nil, nil on a miss.
type Cache interface {
	GetCache(ctx context.Context, key string) ([]byte, error)
	SetCache(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// CachedAPI serves metadata previews from a cache and passes everything else through.
type CachedAPI struct {
	API
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedAPI wraps api with a metadata cache.
func NewCachedAPI(api API, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedAPI{
		API:    api,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// AlbumMeta implements API.
func (c *CachedAPI) AlbumMeta(ctx context.Context, albumURL string) (*backend.AlbumMeta, error) {
	return cachedFetch(ctx, c, "meta:album:"+albumURL, func() (*backend.AlbumMeta, error) {
		return c.API.AlbumMeta(ctx, albumURL)
	})
}

// ArtistMeta implements API.
func (c *CachedAPI) ArtistMeta(ctx context.Context, artistURL string) (*backend.ArtistMeta, error) {
	return cachedFetch(ctx, c, "meta:artist:"+artistURL, func() (*backend.ArtistMeta, error) {
		return c.API.ArtistMeta(ctx, artistURL)
	})
}

func cachedFetch[T any](ctx context.Context, c *CachedAPI, key string, fetch func() (*T, error)) (*T, error) {
	data, err := c.cache.GetCache(ctx, key)
	if err != nil {
		c.logger.Warn("metadata cache read failed", "key", key, "error", err)
	}
	if data != nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			c.logger.Debug("metadata cache hit", "key", key)
			return &v, nil
		}
	}

	v, err := fetch()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(v); err == nil {
		if err := c.cache.SetCache(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("metadata cache write failed", "key", key, "error", err)
		}
	}
	return v, nil
}
