package cache

import (
	"context"
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

func (i item[V]) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// MemoryCache is a process-local cache. Expired entries are dropped lazily
// on read.
type MemoryCache[V any] struct {
	mu    sync.RWMutex
	items map[string]item[V]
	now   func() time.Time
}

func NewMemoryCache[V any]() *MemoryCache[V] {
	return &MemoryCache[V]{items: make(map[string]item[V]), now: time.Now}
}

func (mc *MemoryCache[V]) Get(_ context.Context, key string) (V, error) {
	var zero V

	mc.mu.RLock()
	itm, ok := mc.items[key]
	mc.mu.RUnlock()

	if !ok {
		return zero, ErrCacheMiss
	}
	if itm.expired(mc.now()) {
		mc.mu.Lock()
		if cur, still := mc.items[key]; still && cur.expired(mc.now()) {
			delete(mc.items, key)
		}
		mc.mu.Unlock()
		return zero, ErrCacheMiss
	}
	return itm.value, nil
}

func (mc *MemoryCache[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	itm := item[V]{value: value}
	if ttl > 0 {
		itm.expiresAt = mc.now().Add(ttl)
	}

	mc.mu.Lock()
	mc.items[key] = itm
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache[V]) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	for _, k := range keys {
		delete(mc.items, k)
	}
	mc.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (mc *MemoryCache[V]) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.items)
}
