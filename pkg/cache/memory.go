package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryItem struct {
	body     []byte
	expireAt time.Time
}

func (m *memoryItem) expired() bool {
	return !m.expireAt.IsZero() && time.Now().After(m.expireAt)
}

// MemoryCache implements Service with an in-process map.
type MemoryCache struct {
	mu      sync.RWMutex
	data    map[string]*memoryItem
	maxSize int
	stop    chan struct{}
}

// NewMemoryCache creates an in-memory cache with periodic expiry sweeps.
func NewMemoryCache(maxSize int, cleanupInterval time.Duration) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	mc := &MemoryCache{
		data:    make(map[string]*memoryItem),
		maxSize: maxSize,
		stop:    make(chan struct{}),
	}
	go mc.sweep(cleanupInterval)
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var expireAt time.Time
	if ttl > 0 {
		expireAt = time.Now().Add(ttl)
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()
	if len(mc.data) >= mc.maxSize {
		mc.evictOldest()
	}
	mc.data[key] = &memoryItem{body: b, expireAt: expireAt}
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mu.RLock()
	item, ok := mc.data[key]
	mc.mu.RUnlock()
	if !ok || item.expired() {
		if ok {
			mc.mu.Lock()
			delete(mc.data, key)
			mc.mu.Unlock()
		}
		return ErrCacheMiss
	}
	return json.Unmarshal(item.body, dest)
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	for _, k := range keys {
		delete(mc.data, k)
	}
	return nil
}

func (mc *MemoryCache) Close() error {
	close(mc.stop)
	return nil
}

// evictOldest drops the entry closest to expiry. Entries without an
// expiry are evicted only when nothing else is expiring. Called with
// lock held.
func (mc *MemoryCache) evictOldest() {
	var victim string
	var victimExp time.Time
	for k, item := range mc.data {
		switch {
		case victim == "":
			victim, victimExp = k, item.expireAt
		case victimExp.IsZero() && !item.expireAt.IsZero():
			victim, victimExp = k, item.expireAt
		case !item.expireAt.IsZero() && item.expireAt.Before(victimExp):
			victim, victimExp = k, item.expireAt
		}
	}
	if victim != "" {
		delete(mc.data, victim)
	}
}

func (mc *MemoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-mc.stop:
			return
		case <-ticker.C:
			mc.mu.Lock()
			for k, item := range mc.data {
				if item.expired() {
					delete(mc.data, k)
				}
			}
			mc.mu.Unlock()
		}
	}
}
