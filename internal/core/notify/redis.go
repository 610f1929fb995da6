package notify

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher appends the person id to a list consumers pop from.
type RedisPublisher struct {
	rdb   redis.Cmdable
	queue string
}

func NewRedisPublisher(rdb redis.Cmdable, queue string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, queue: queue}
}

func (p *RedisPublisher) Publish(ctx context.Context, id string) error {
	if err := p.rdb.RPush(ctx, p.queue, id).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", p.queue, err)
	}
	return nil
}

// Close leaves the client open; it is shared with the cache.
func (p *RedisPublisher) Close() error { return nil }
