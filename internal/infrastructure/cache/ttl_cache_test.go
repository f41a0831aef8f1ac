package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magazyn-erp/magazyn-api/internal/infrastructure/cache"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := cache.New(16, time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("item:1", "kabel")
	v, ok := c.Get("item:1")
	require.True(t, ok)
	assert.Equal(t, "kabel", v)
}

func TestTTLCache_Purge(t *testing.T) {
	c := cache.New(16, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Purge()

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestTTLCache_Expiry(t *testing.T) {
	c := cache.New(16, 20*time.Millisecond)
	c.Set("item:1", "kabel")

	_, ok := c.Get("item:1")
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = c.Get("item:1")
	assert.False(t, ok, "entry must age out after the ttl")
}

func TestTTLCache_SizeEviction(t *testing.T) {
	c := cache.New(2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry evicted at capacity")
	_, ok = c.Get("c")
	assert.True(t, ok)
}
