// Package cache holds the Redis-backed like-count cache. Counts are
// advisory display values, so a stale or missing entry is never an error:
// every method on a nil cache is a no-op and reads fall back to the store.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const likeCountTTL = 10 * time.Minute

func likeCountKey(sessionID string) string {
	return "like:count:session:" + sessionID
}

type LikeCountCache struct {
	rdb *redis.Client
}

// NewLikeCountCache returns nil when no address is configured; callers
// treat a nil cache as disabled.
func NewLikeCountCache(addr, password string) *LikeCountCache {
	if addr == "" {
		return nil
	}

	return &LikeCountCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

// GetCount returns the cached count, or ok=false on miss, disabled cache
// or any Redis failure.
func (c *LikeCountCache) GetCount(ctx context.Context, sessionID string) (int, bool) {
	if c == nil {
		return 0, false
	}

	value, err := c.rdb.Get(ctx, likeCountKey(sessionID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("like count cache read failed", zap.Error(err))
		}
		return 0, false
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}

	return count, true
}

// SetCount stores an authoritative count, best-effort.
func (c *LikeCountCache) SetCount(ctx context.Context, sessionID string, count int) {
	if c == nil {
		return
	}

	if err := c.rdb.Set(ctx, likeCountKey(sessionID), count, likeCountTTL).Err(); err != nil {
		zap.L().Warn("like count cache write failed", zap.Error(err))
	}
}

// Invalidate drops a cached count, best-effort.
func (c *LikeCountCache) Invalidate(ctx context.Context, sessionID string) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, likeCountKey(sessionID)).Err(); err != nil {
		zap.L().Warn("like count cache invalidation failed", zap.Error(err))
	}
}
