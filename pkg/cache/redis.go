package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wyattowalsh/skillsight/pkg/defaults"
	"github.com/wyattowalsh/skillsight/pkg/errors"
)

// RedisConfig holds connection settings for the shared edge cache.
type RedisConfig struct {
	Addr     string
	DB       int
	Password string
}

// Redis is the shared edge cache backed by a Redis instance colocated
// with the edge deployment.
type Redis struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewRedis creates an edge cache client. The connection is lazy; use
// Ping to verify reachability at startup.
func NewRedis(cfg RedisConfig, log *slog.Logger) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})
	return &Redis{rdb: rdb, log: log}
}

// Ping verifies the cache is reachable.
func (c *Redis) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.EdgeCacheOpTimeout)
	defer cancel()

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, "pinging edge cache", err)
	}
	return nil
}

// Close releases the client connections.
func (c *Redis) Close() error {
	return c.rdb.Close()
}

// Get implements EdgeCache. Timeouts and transport errors are logged
// and degraded to a miss.
func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, defaults.EdgeCacheOpTimeout)
	defer cancel()

	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		edgeMissesTotal.Inc()
		return nil, false
	}
	if err != nil {
		edgeErrorsTotal.Inc()
		c.log.Warn("edge cache get failed", "key", key, "error", err)
		return nil, false
	}
	edgeHitsTotal.Inc()
	return b, true
}

// Set implements EdgeCache. Failures are logged and ignored.
func (c *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, defaults.EdgeCacheOpTimeout)
	defer cancel()

	if err := c.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		edgeErrorsTotal.Inc()
		c.log.Warn("edge cache set failed", "key", key, "error", err)
	}
}

// Del implements EdgeCache. Failures are logged and ignored.
func (c *Redis) Del(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(ctx, defaults.EdgeCacheOpTimeout)
	defer cancel()

	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		edgeErrorsTotal.Inc()
		c.log.Warn("edge cache del failed", "key", key, "error", err)
	}
}
