package cms

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewRedisCacheUnreachable(t *testing.T) {
	if _, err := NewRedisCache(RedisConfig{Addr: "127.0.0.1:1", Logger: quietLogger()}); err == nil {
		t.Fatal("expected an error for an unreachable redis")
	}
}

func TestRedisCacheDegradesToMisses(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	rc := newRedisCache(client, RedisConfig{Logger: quietLogger()})
	defer rc.Close()
	ctx := context.Background()

	rc.Set(ctx, "k", []byte("v"), time.Minute)
	if _, ok := rc.Get(ctx, "k"); ok {
		t.Error("Get should miss when redis is down")
	}
	rc.Invalidate(ctx)

	if rc.prefix != DefaultRedisPrefix {
		t.Errorf("prefix = %q, want %q", rc.prefix, DefaultRedisPrefix)
	}
}

// TestRedisCacheRoundTrip runs against a real server when TECHPULSE_TEST_REDIS
// names its address.
func TestRedisCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TECHPULSE_TEST_REDIS")
	if addr == "" {
		t.Skip("TECHPULSE_TEST_REDIS not set")
	}
	rc, err := NewRedisCache(RedisConfig{Addr: addr, Prefix: "techpulse:test:", Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer rc.Close()
	ctx := context.Background()
	rc.Invalidate(ctx)

	rc.Set(ctx, "/articles/posts", []byte(`{"articles":[]}`), time.Minute)
	if b, ok := rc.Get(ctx, "/articles/posts"); !ok || string(b) != `{"articles":[]}` {
		t.Fatalf("Get = %q, %v", b, ok)
	}

	rc.Set(ctx, "ignored", []byte("x"), 0)
	if _, ok := rc.Get(ctx, "ignored"); ok {
		t.Error("non-positive ttl should not be stored")
	}

	rc.Invalidate(ctx)
	if _, ok := rc.Get(ctx, "/articles/posts"); ok {
		t.Error("Invalidate should remove cached entries")
	}
}
