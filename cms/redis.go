package cms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces cached responses in a shared redis.
const DefaultRedisPrefix = "techpulse:cms:"

// RedisConfig configures a RedisCache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	Logger   *log.Logger
}

// RedisCache is a ResponseCache shared between instances through redis.
type RedisCache struct {
	client *redis.Client
	prefix string
	log    *log.Logger
}

// NewRedisCache connects to redis and verifies connectivity.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cms: connect to redis at %s: %w", cfg.Addr, err)
	}
	return newRedisCache(client, cfg), nil
}

func newRedisCache(client *redis.Client, cfg RedisConfig) *RedisCache {
	rc := &RedisCache{client: client, prefix: cfg.Prefix, log: cfg.Logger}
	if rc.prefix == "" {
		rc.prefix = DefaultRedisPrefix
	}
	if rc.log == nil {
		rc.log = log.New("cms")
	}
	return rc
}

// Get returns the cached body for key. Redis errors are logged and reported as misses.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warnf("redis get %s: %v", key, err)
		}
		return nil, false
	}
	return b, true
}

// Set stores body under key with the given expiry.
func (r *RedisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.client.Set(ctx, r.prefix+key, body, ttl).Err(); err != nil {
		r.log.Warnf("redis set %s: %v", key, err)
	}
}

// Invalidate deletes every key under the cache prefix.
func (r *RedisCache) Invalidate(ctx context.Context) {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.log.Warnf("redis scan: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warnf("redis del: %v", err)
	}
}

// Close closes the underlying redis client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
