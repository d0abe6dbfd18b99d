package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ItemCache is a best-effort read-through cache for rendered item detail
// responses keyed by slug. A nil *ItemCache or a nil client is a no-op, so
// callers never have to branch on whether caching is enabled.
type ItemCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewItemCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ItemCache {
	return &ItemCache{client: client, ttl: ttl, logger: logger}
}

func (c *ItemCache) key(kind, slug string) string {
	return "coindex:" + kind + ":" + slug
}

// Get unmarshals the cached response into dest and reports whether it was
// found. Cache errors are logged and treated as misses.
func (c *ItemCache) Get(ctx context.Context, kind, slug string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, c.key(kind, slug)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", "kind", kind, "slug", slug, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("cache entry corrupt, dropping", "kind", kind, "slug", slug, "error", err)
		c.client.Del(ctx, c.key(kind, slug))
		return false
	}
	return true
}

// Set stores the response under the slug key. Failures are logged only.
func (c *ItemCache) Set(ctx context.Context, kind, slug string, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache marshal failed", "kind", kind, "slug", slug, "error", err)
		return
	}
	if err := c.client.Set(ctx, c.key(kind, slug), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", "kind", kind, "slug", slug, "error", err)
	}
}

// Invalidate drops the entry for a slug, called after admin mutations.
func (c *ItemCache) Invalidate(ctx context.Context, kind, slug string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(kind, slug)).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", "kind", kind, "slug", slug, "error", err)
	}
}
