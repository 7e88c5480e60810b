// Package cache implements the small in-process read cache that sits in
// front of the store. Entries expire after a TTL, the globally oldest
// entry is evicted when the cache is over capacity, and any write to the
// store clears the whole cache.
package cache

import (
	"strings"
	"sync"
	"time"
)

// entry pairs a cached value with its insertion time.
type entry struct {
	value    any
	inserted time.Time
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
}

// HitRate returns hits as a percentage of lookups, 0 when there were none.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Cache is a mutex-guarded map with TTL expiry and oldest-first capacity
// eviction. Invalidation is coarse: Clear drops everything.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	maxSize int
	stats   Stats

	// now is swapped out in tests.
	now func() time.Time

	// onHit, onMiss and onEvict are optional counters (Prometheus).
	onHit, onMiss, onEvict func()
}

// Option configures a Cache.
type Option func(*Cache)

// WithCounters attaches hit/miss/eviction callbacks, typically Prometheus
// counter Inc methods. Any of them may be nil.
func WithCounters(onHit, onMiss, onEvict func()) Option {
	return func(c *Cache) {
		c.onHit, c.onMiss, c.onEvict = onHit, onMiss, onEvict
	}
}

// New creates a cache holding at most maxSize entries, each valid for ttl.
// maxSize <= 0 means unbounded; ttl <= 0 means entries never expire.
func New(maxSize int, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds a cache key from the operation name and its arguments.
func Key(op string, args ...string) string {
	if len(args) == 0 {
		return op
	}
	return op + ":" + strings.Join(args, ":")
}

// Get returns the cached value for key. Expired entries count as misses
// and are removed.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok && c.ttl > 0 && c.now().Sub(e.inserted) > c.ttl {
		delete(c.entries, key)
		ok = false
	}
	if !ok {
		c.stats.Misses++
		if c.onMiss != nil {
			c.onMiss()
		}
		return nil, false
	}
	c.stats.Hits++
	if c.onHit != nil {
		c.onHit()
	}
	return e.value, true
}

// Set stores value under key, evicting the oldest entry first if the
// cache is at capacity.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = entry{value: value, inserted: c.now()}
}

// evictOldest removes the entry with the earliest insertion time.
// Linear scan; the cache is small. Caller holds the lock.
func (c *Cache) evictOldest() {
	var (
		oldestKey  string
		oldestTime time.Time
		found      bool
	)
	for k, e := range c.entries {
		if !found || e.inserted.Before(oldestTime) {
			oldestKey, oldestTime, found = k, e.inserted, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
		c.stats.Evictions++
		if c.onEvict != nil {
			c.onEvict()
		}
	}
}

// Clear drops every entry. Called on any store mutation.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of entries, including any not yet expired-out.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Size = len(c.entries)
	return s
}
