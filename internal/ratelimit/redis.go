package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares timestamps between instances. Keys expire after TTL so a
// quiet client leaves nothing behind.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisStore stores keys as prefix+key with the given expiry.
func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) Last(ctx context.Context, key string) (time.Time, bool, error) {
	ms, err := r.client.Get(ctx, r.prefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(ms), true, nil
}

func (r *RedisStore) Record(ctx context.Context, key string, at time.Time) error {
	return r.client.Set(ctx, r.prefix+key, at.UnixMilli(), r.ttl).Err()
}
