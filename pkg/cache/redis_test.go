package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func redisCache(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("VNAV_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("VNAV_TEST_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), addr)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c := redisCache(t)
	key := "vnav:test:" + Hash([]byte(t.Name()))

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get(missing) = %v, %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	n, err := c.Clear(ctx, "vnav:test:*")
	if err != nil || n < 1 {
		t.Errorf("Clear = %d, %v", n, err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("hit after Clear")
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := NewRedisCache(ctx, "127.0.0.1:1"); err == nil {
		t.Error("NewRedisCache succeeded against a closed port")
	}
}
