package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fdciabdul/go-safelink/pkg/safelink/models"
)

const linkTTL = 10 * time.Minute

// LinkCache is an optional Redis cache for link rows on the redirect hot
// path. A nil client disables it; every method degrades to a miss or no-op
// so callers never branch on whether Redis is configured.
type LinkCache struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func New(rdb *redis.Client, logger *slog.Logger) *LinkCache {
	return &LinkCache{rdb: rdb, logger: logger}
}

func linkKey(slug string) string {
	return "link:" + slug
}

// Get returns the cached row for slug, or a miss.
func (c *LinkCache) Get(ctx context.Context, slug string) (*models.Link, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, linkKey(slug)).Result()
	if err != nil {
		return nil, false
	}
	var link models.Link
	if err := json.Unmarshal([]byte(val), &link); err != nil {
		return nil, false
	}
	return &link, true
}

// Set stores the row under its slug.
func (c *LinkCache) Set(ctx context.Context, link *models.Link) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(link)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, linkKey(link.Slug), data, linkTTL).Err(); err != nil {
		c.logger.Warn("link cache set failed", "slug", link.Slug, "error", err)
	}
}

// Invalidate drops cached rows. It must run before an update or delete
// returns, so the next resolution sees current data.
func (c *LinkCache) Invalidate(ctx context.Context, slugs ...string) {
	if c == nil || c.rdb == nil || len(slugs) == 0 {
		return
	}
	keys := make([]string, len(slugs))
	for i, slug := range slugs {
		keys[i] = linkKey(slug)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("link cache invalidation failed", "error", err)
	}
}
