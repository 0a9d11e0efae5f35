package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewCache(client redis.UniversalClient, prefix string) *Cache {
	return &Cache{
		rdb:    client,
		prefix: prefix,
	}
}

func InitCache(ctx context.Context, options *redis.Options, prefix string) (*Cache, error) {
	const op = "cache.redis.InitCache"

	redisClient := redis.NewClient(options)

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrap(err, op)
	}

	return NewCache(redisClient, prefix), nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const op = "cache.redis.Get"

	val, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, op)
	}

	slog.Debug("redis cache hit", "key", key)

	return val, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	const op = "cache.redis.Set"

	if err := c.rdb.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}
