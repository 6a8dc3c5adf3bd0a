package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bridge:event:"

// redisWindow remembers processed event ids in Redis with a TTL, so the
// window survives restarts and is shared across replicas.
type redisWindow struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisWindow(client *redis.Client, ttl time.Duration) Window {
	return &redisWindow{client: client, ttl: ttl}
}

func (w *redisWindow) Seen(ctx context.Context, eventID string) (bool, error) {
	created, err := w.client.SetNX(ctx, keyPrefix+eventID, 1, w.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("recording event id: %w", err)
	}
	return !created, nil
}
