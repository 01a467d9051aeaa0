package rrule

import (
	"fmt"
	"sync"
	"time"

	"github.com/samber/mo"

	"github.com/maktabah/hijrule/hijri"
)

// CacheConfig holds configuration for the per-rule result cache.
type CacheConfig struct {
	Enabled    bool
	MaxEntries int // entries beyond this are evicted, least recently read first
}

// DefaultCacheConfig provides sensible defaults for production use.
var DefaultCacheConfig = CacheConfig{
	Enabled:    true,
	MaxEntries: 1000,
}

// HighPerformanceCacheConfig keeps more query results resident.
var HighPerformanceCacheConfig = CacheConfig{
	Enabled:    true,
	MaxEntries: 5000,
}

// LowMemoryCacheConfig is for memory-constrained environments.
var LowMemoryCacheConfig = CacheConfig{
	Enabled:    true,
	MaxEntries: 100,
}

// DisabledCacheConfig turns off memoization entirely.
var DisabledCacheConfig = CacheConfig{
	Enabled: false,
}

type cacheEntry struct {
	dates      []hijri.Date
	single     mo.Option[hijri.Date]
	accessedAt time.Time
}

// resultCache memoizes query results for a rule or rule set. Keys are
// canonical day-granularity strings of the query inputs.
type resultCache struct {
	mu         sync.RWMutex
	entries    map[string]*cacheEntry
	maxEntries int
	disabled   bool
}

func newResultCache(config CacheConfig) *resultCache {
	return &resultCache{
		entries:    make(map[string]*cacheEntry),
		maxEntries: config.MaxEntries,
		disabled:   !config.Enabled,
	}
}

func sequenceKey(op string, args ...string) string {
	key := op
	for _, a := range args {
		key += ":" + a
	}
	return key
}

func dateKey(d hijri.Date) string {
	return d.Token()
}

func boolKey(b bool) string {
	return fmt.Sprintf("%t", b)
}

func (c *resultCache) getDates(key string) ([]hijri.Date, bool) {
	if c.disabled {
		return nil, false
	}
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()
	if !exists {
		return nil, false
	}
	c.mu.Lock()
	entry.accessedAt = time.Now()
	c.mu.Unlock()
	return entry.dates, true
}

func (c *resultCache) getSingle(key string) (mo.Option[hijri.Date], bool) {
	if c.disabled {
		return mo.None[hijri.Date](), false
	}
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()
	if !exists {
		return mo.None[hijri.Date](), false
	}
	c.mu.Lock()
	entry.accessedAt = time.Now()
	c.mu.Unlock()
	return entry.single, true
}

func (c *resultCache) setDates(key string, dates []hijri.Date) {
	c.set(key, &cacheEntry{dates: dates, accessedAt: time.Now()})
}

func (c *resultCache) setSingle(key string, d mo.Option[hijri.Date]) {
	c.set(key, &cacheEntry{single: d, accessedAt: time.Now()})
}

func (c *resultCache) set(key string, entry *cacheEntry) {
	if c.disabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
	if c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		c.evict()
	}
}

// evict removes least recently accessed entries until under the limit.
// Caller holds the write lock.
func (c *resultCache) evict() {
	for len(c.entries) > c.maxEntries {
		var oldestKey string
		var oldest time.Time
		for key, entry := range c.entries {
			if oldestKey == "" || entry.accessedAt.Before(oldest) {
				oldestKey = key
				oldest = entry.accessedAt
			}
		}
		delete(c.entries, oldestKey)
	}
}

// clear drops every entry; called whenever the owning collection mutates.
func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func (c *resultCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
