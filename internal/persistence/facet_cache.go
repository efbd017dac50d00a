package persistence

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const facetCacheKey = "problems:filter-options"

// FacetCache stores the serialized filter-options payload in Redis with a
// short TTL. The query engine itself stays cache-free; this sits at the
// transport boundary and degrades to a miss whenever Redis is unavailable.
type FacetCache struct {
	redis  *Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewFacetCache builds the cache. A nil redis wrapper disables caching.
func NewFacetCache(redis *Redis, ttl time.Duration, logger *zap.Logger) *FacetCache {
	return &FacetCache{redis: redis, ttl: ttl, logger: logger}
}

// Get loads a cached payload into dest, reporting whether a hit occurred.
func (c *FacetCache) Get(ctx context.Context, dest any) bool {
	if c == nil || c.redis == nil || c.redis.Client == nil || c.ttl <= 0 {
		return false
	}
	data, err := c.redis.Client.Get(ctx, facetCacheKey).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("discarding malformed facet cache entry", zap.Error(err))
		return false
	}
	return true
}

// Set stores the payload, logging and ignoring failures.
func (c *FacetCache) Set(ctx context.Context, payload any) {
	if c == nil || c.redis == nil || c.redis.Client == nil || c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, facetCacheKey, data, c.ttl).Err(); err != nil {
		c.logger.Debug("facet cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached payload after a mutation.
func (c *FacetCache) Invalidate(ctx context.Context) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	_ = c.redis.Client.Del(ctx, facetCacheKey).Err()
}
