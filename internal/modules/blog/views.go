package blog

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewDeduper remembers which viewer keys have already been counted inside
// the dedup window.
type ViewDeduper interface {
	// MarkViewed records the key and reports whether this was its first
	// sighting within the window.
	MarkViewed(ctx context.Context, key string, window time.Duration) (bool, error)
}

type redisViewDeduper struct {
	rdb *redis.Client
}

// NewViewDeduper backs the dedup window with one redis SETNX key per viewer.
func NewViewDeduper(rdb *redis.Client) ViewDeduper {
	return &redisViewDeduper{rdb: rdb}
}

func (d *redisViewDeduper) MarkViewed(ctx context.Context, key string, window time.Duration) (bool, error) {
	return d.rdb.SetNX(ctx, key, 1, window).Result()
}
