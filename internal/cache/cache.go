package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a small LRU with per-entry TTLs, for response caching and other
// best-effort lookups. It is safe for concurrent use.
type Cache[V any] struct {
	lru *lru.Cache[string, entry[V]]
}

func New[V any](size int) (*Cache[V], error) {
	l, err := lru.New[string, entry[V]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lru: l}, nil
}

func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.lru.Add(key, entry[V]{value: value, expiresAt: time.Now().Add(ttl)})
}

// Get returns the cached value, evicting it if the TTL has passed.
func (c *Cache[V]) Get(key string) (V, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) Delete(key string) {
	c.lru.Remove(key)
}
