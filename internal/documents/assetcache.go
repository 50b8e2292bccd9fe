package documents

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cotizaplus/cotiza-backend/pkg/logger"
	redisclient "github.com/cotizaplus/cotiza-backend/pkg/redis"
)

// assetStore is the slice of the redis client the cache needs.
type assetStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	AssetKey(url string) string
}

// AssetCache fetches remote images (company logos) and keeps them in redis so
// repeated PDF renders do not refetch the same bytes.
type AssetCache struct {
	store    assetStore
	http     *http.Client
	ttl      time.Duration
	maxBytes int64
	logg     *logger.Logger
}

func NewAssetCache(store assetStore, httpClient *http.Client, ttl time.Duration, maxBytes int64, logg *logger.Logger) *AssetCache {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &AssetCache{
		store:    store,
		http:     httpClient,
		ttl:      ttl,
		maxBytes: maxBytes,
		logg:     logg,
	}
}

// Fetch returns the asset bytes, preferring the cache. A cache failure is
// logged and falls through to the origin fetch.
func (c *AssetCache) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, nil
	}

	var key string
	if c.store != nil {
		key = c.store.AssetKey(url)
		cached, err := c.store.Get(ctx, key)
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil && !redisclient.IsMiss(err) && c.logg != nil {
			c.logg.Warn(ctx, "asset cache read failed")
		}
	}

	payload, err := c.download(ctx, url)
	if err != nil {
		return nil, err
	}

	if c.store != nil && len(payload) > 0 {
		if err := c.store.Set(ctx, key, payload, c.ttl); err != nil && c.logg != nil {
			c.logg.Warn(ctx, "asset cache write failed")
		}
	}

	return payload, nil
}

func (c *AssetCache) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building asset request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching asset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching asset: unexpected status %s", resp.Status)
	}

	reader := io.Reader(resp.Body)
	if c.maxBytes > 0 {
		reader = io.LimitReader(resp.Body, c.maxBytes+1)
	}
	payload, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading asset body: %w", err)
	}
	if c.maxBytes > 0 && int64(len(payload)) > c.maxBytes {
		return nil, fmt.Errorf("asset exceeds %d bytes", c.maxBytes)
	}
	return payload, nil
}
