package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	mc := NewMemoryCache(10, time.Minute)
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got map[string]int
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["a"] != 1 {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache(10, time.Minute)
	defer mc.Close()

	var got string
	err := mc.Get(context.Background(), "absent", &got)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("want ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheEvictionPrefersExpiringEntries(t *testing.T) {
	mc := NewMemoryCache(2, time.Minute)
	defer mc.Close()
	ctx := context.Background()

	// "pinned" has no expiry and must survive eviction while an
	// expiring entry is available.
	if err := mc.Set(ctx, "pinned", "v", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := mc.Set(ctx, "soon", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := mc.Set(ctx, "fresh", "v", time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got string
	if err := mc.Get(ctx, "pinned", &got); err != nil {
		t.Fatalf("pinned entry evicted: %v", err)
	}
	if err := mc.Get(ctx, "soon", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("want soonest-expiring entry evicted, got %v", err)
	}
	if err := mc.Get(ctx, "fresh", &got); err != nil {
		t.Fatalf("fresh entry evicted: %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache(10, time.Minute)
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var got string
	if err := mc.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("want expiry miss, got %v", err)
	}
}
