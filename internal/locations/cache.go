// Package locations cross-checks submitted location ids against a cached
// copy of the external ledger. The cache is process-local and best-effort:
// it serves stale data when a refresh fails and disables the existence
// check entirely while empty, so ledger outages never reject submissions.
package locations

import (
	"context"
	"sync"
	"time"

	"satspots.org/internal/obs"
)

// DefaultMaxAge is how long a fetched id set is considered fresh.
const DefaultMaxAge = 5 * time.Minute

// FetchFunc retrieves the current set of valid location ids from the ledger.
type FetchFunc func(ctx context.Context) (map[string]struct{}, error)

// Cache holds the valid id set and refreshes it lazily.
type Cache struct {
	mu          sync.RWMutex
	valid       map[string]struct{}
	lastRefresh time.Time

	maxAge time.Duration
	now    func() time.Time
	fetch  FetchFunc
}

// NewCache creates a cache around fetch with the default freshness window.
func NewCache(fetch FetchFunc) *Cache {
	return &Cache{
		valid:  map[string]struct{}{},
		maxAge: DefaultMaxAge,
		now:    time.Now,
		fetch:  fetch,
	}
}

// SetClock overrides the cache clock; test use only.
func (c *Cache) SetClock(now func() time.Time) { c.now = now }

// Valid reports whether id exists in the ledger. An empty cache (before the
// first successful fetch, or when the ledger has no rows) disables the check
// and accepts every id.
func (c *Cache) Valid(ctx context.Context, id string) bool {
	c.refreshIfStale(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.valid) == 0 {
		return true
	}
	_, ok := c.valid[id]
	return ok
}

// refreshIfStale refetches the id set when the cache is older than maxAge.
// Concurrent refreshes may race; last writer wins, which is fine because the
// fetch is idempotent. On failure the stale set stays in place.
func (c *Cache) refreshIfStale(ctx context.Context) {
	c.mu.RLock()
	stale := c.now().Sub(c.lastRefresh) > c.maxAge
	c.mu.RUnlock()
	if !stale {
		return
	}

	fetched, err := c.fetch(ctx)
	if err != nil {
		obs.LogWarn("location ledger refresh failed, serving stale set", map[string]any{"err": err.Error()})
		return
	}

	c.mu.Lock()
	c.valid = fetched
	c.lastRefresh = c.now()
	c.mu.Unlock()
}

// Size returns the number of cached ids; used for readiness reporting.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.valid)
}
