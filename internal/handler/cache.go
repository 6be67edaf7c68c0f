package handler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/event"
)

// SnapshotCacheVersion is the current version of the cached snapshot schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const SnapshotCacheVersion = "1.0"

// Snapshot cache defaults. The TTL is deliberately short: dashboard reads
// tolerate a couple of seconds of staleness, and ledger events evict entries
// the moment a business mutates anyway.
const (
	DefaultSnapshotCacheSize = 512
	DefaultSnapshotCacheTTL  = 2 * time.Second
)

// cachedSnapshotEntry wraps a business snapshot with version metadata
type cachedSnapshotEntry struct {
	Version  string                `json:"version"`
	State    *domain.BusinessState `json:"state"`
	CachedAt time.Time             `json:"cached_at"`
}

// CacheStats reports hit/miss counters for monitoring
type CacheStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Size   int    `json:"size"`
}

// SnapshotCache is a short-TTL LRU cache over business snapshots, serving
// repeated dashboard GETs without a round trip to the store.
type SnapshotCache struct {
	lru    *expirable.LRU[string, *cachedSnapshotEntry]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewSnapshotCache creates a snapshot cache with the specified size and TTL
func NewSnapshotCache(size int, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		lru: expirable.NewLRU[string, *cachedSnapshotEntry](size, nil, ttl),
	}
}

// Get retrieves a snapshot from the cache.
// Returns (nil, false) if not cached, expired, or the schema version changed.
func (c *SnapshotCache) Get(businessID string) (*domain.BusinessState, bool) {
	entry, found := c.lru.Get(businessID)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	if entry.Version != SnapshotCacheVersion {
		c.lru.Remove(businessID)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return entry.State, true
}

// Set stores a snapshot in the cache with the current schema version
func (c *SnapshotCache) Set(businessID string, state *domain.BusinessState) {
	c.lru.Add(businessID, &cachedSnapshotEntry{
		Version:  SnapshotCacheVersion,
		State:    state,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a business from the cache. Called whenever a ledger
// delta lands so reads never serve a pre-mutation snapshot past the event.
func (c *SnapshotCache) Invalidate(businessID string) {
	c.lru.Remove(businessID)
}

// Clear removes all entries from the cache
func (c *SnapshotCache) Clear() {
	c.lru.Purge()
}

// SubscribeInvalidation evicts a business whenever a ledger delta is applied
// to it, so every mutation is visible on the next read
func (c *SnapshotCache) SubscribeInvalidation(bus event.Bus) {
	bus.Subscribe(event.LedgerApplied, func(_ context.Context, evt event.Event) error {
		if p, ok := evt.Payload.(event.LedgerAppliedPayloadV1); ok {
			c.Invalidate(p.BusinessID)
		}
		return nil
	})
}

// Stats returns current hit/miss counters
func (c *SnapshotCache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
