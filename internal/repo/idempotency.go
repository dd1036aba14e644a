// Package repo implements the persistence layer for the catalogue. This file
// provides the replay cache backing the Idempotency-Key middleware.
//
// The cache is deliberately in-memory: the catalogue itself is authoritative
// only for the process lifetime, so replay records that outlive the process
// would protect nothing. Entries expire after a TTL and are pruned
// opportunistically on writes.
package repo

import (
	"sync"
	"time"
)

// ReplayCache remembers completed unsafe requests by (scope, key) so retries
// carrying the same Idempotency-Key can be acknowledged without re-executing
// side effects. Safe for concurrent use.
type ReplayCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[replayKey]time.Time // value: expiry
	writes  int
}

type replayKey struct {
	scope string
	key   string
}

// NewReplayCache constructs a cache whose entries live for ttl.
// Non-positive TTLs are coerced to one hour.
func NewReplayCache(ttl time.Duration) *ReplayCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ReplayCache{
		ttl:     ttl,
		entries: make(map[replayKey]time.Time),
	}
}

// Seen reports whether an unexpired entry exists for (scope, key) at now.
func (c *ReplayCache) Seen(scope, key string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp, ok := c.entries[replayKey{scope, key}]
	if !ok {
		return false
	}
	if now.After(exp) {
		delete(c.entries, replayKey{scope, key})
		return false
	}
	return true
}

// Remember records a completed request for (scope, key), valid until now+TTL.
// Every few thousand writes the cache sweeps out expired entries to keep
// memory bounded.
func (c *ReplayCache) Remember(scope, key string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writes++
	if c.writes >= 4096 {
		for k, exp := range c.entries {
			if now.After(exp) {
				delete(c.entries, k)
			}
		}
		c.writes = 0
	}
	c.entries[replayKey{scope, key}] = now.Add(c.ttl)
}

// Len returns the current number of cached entries (expired or not).
func (c *ReplayCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
