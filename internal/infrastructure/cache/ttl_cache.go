// Package cache provides a process-local TTL read cache for catalog lookups.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/magazyn-erp/magazyn-api/internal/application/catalog"
)

var _ catalog.Cache = (*TTLCache)(nil)

// TTLCache wraps an expirable LRU. Entries age out on their own; writes to
// the underlying data purge the whole cache, which is cheap and avoids
// tracking which keys a write invalidates.
type TTLCache struct {
	lru *expirable.LRU[string, any]
}

// New builds the cache. size bounds the entry count, ttl the staleness.
func New(size int, ttl time.Duration) *TTLCache {
	if size <= 0 {
		size = 1024
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &TTLCache{lru: expirable.NewLRU[string, any](size, nil, ttl)}
}

// Get returns the cached value for key if present and not expired.
func (c *TTLCache) Get(key string) (any, bool) {
	return c.lru.Get(key)
}

// Set stores value under key.
func (c *TTLCache) Set(key string, value any) {
	c.lru.Add(key, value)
}

// Purge drops every entry.
func (c *TTLCache) Purge() {
	c.lru.Purge()
}
