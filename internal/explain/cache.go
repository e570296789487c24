// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explain

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// defaultTTL is how long a cached provider response stays fresh.
const defaultTTL = time.Hour

// Cache is a TTL cache for provider responses, keyed on the profile and a
// content hash of the input. It is a cost control, not a correctness
// layer: concurrent callers on the same key may each compute the value,
// and only within-TTL reuse is guaranteed.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration

	// now is the clock, overridable in tests.
	now func() time.Time
}

type cacheEntry struct {
	value    string
	storedAt time.Time
}

// NewCache returns a cache with the given TTL; zero means one hour.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key derives the cache key for a (profile, input) pair.
func Key(profile Profile, input string) string {
	return fmt.Sprintf("%s:%x", profile, sha256.Sum256([]byte(input)))
}

// Get returns the cached value for key if it is still fresh.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

// Put stores value under key, resetting its TTL.
func (c *Cache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, storedAt: c.now()}
}
