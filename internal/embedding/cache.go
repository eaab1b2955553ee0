package embedding

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultCacheTTL bounds how long a cached vector stays valid.
	DefaultCacheTTL = 15 * time.Minute
	// DefaultCacheSize bounds the number of cached vectors.
	DefaultCacheSize = 2048
)

type cacheEntry struct {
	vector   []float32
	storedAt time.Time
}

// Cache wraps a Provider with an in-memory TTL cache keyed by normalized
// text, so identical job or profile texts within a request window do not
// recompute embeddings.
type Cache struct {
	inner      Provider
	ttl        time.Duration
	maxEntries int

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCache creates a caching wrapper around inner. Zero ttl or maxEntries
// select the defaults.
func NewCache(inner Provider, ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultCacheSize
	}
	return &Cache{
		inner:      inner,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]cacheEntry),
	}
}

// cacheKey collapses whitespace and case so trivially different renderings
// of the same text share a cache slot.
func cacheKey(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Embed returns a cached vector when fresh, delegating to the wrapped
// provider otherwise. Provider failures are never cached.
func (c *Cache) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		if time.Since(entry.storedAt) < c.ttl {
			c.mu.Unlock()
			return entry.vector, nil
		}
		delete(c.entries, key)
	}
	c.mu.Unlock()

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[key] = cacheEntry{vector: vec, storedAt: time.Now()}
	c.mu.Unlock()

	return vec, nil
}

// evictLocked drops expired entries, then the oldest entry if the cache is
// still full. Callers must hold c.mu.
func (c *Cache) evictLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.Sub(entry.storedAt) >= c.ttl {
			delete(c.entries, key)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Name identifies the cache wrapper for logging.
func (c *Cache) Name() string { return c.inner.Name() }

// Len reports the number of cached vectors. Used in tests.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
