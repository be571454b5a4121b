package inventory

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/lunefall/rewardengine/internal/metrics"
)

// cachedViewEntry wraps an inventory view with the time it was built.
// Entries are short-lived; any committed grant invalidates the user's entry
// explicitly, the TTL only covers writers outside this process.
type cachedViewEntry struct {
	Views    []ItemView
	CachedAt time.Time
}

// viewCache provides an in-memory LRU cache for per-user inventory views.
type viewCache struct {
	lru *expirable.LRU[string, *cachedViewEntry]
}

func newViewCache(size int, ttl time.Duration) *viewCache {
	return &viewCache{
		lru: expirable.NewLRU[string, *cachedViewEntry](size, nil, ttl),
	}
}

// Get retrieves a cached view. Returns (views, true) on a fresh hit.
func (c *viewCache) Get(userID string) ([]ItemView, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		metrics.CacheMisses.WithLabelValues(ViewCacheName).Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues(ViewCacheName).Inc()
	return entry.Views, true
}

// Set stores a freshly built view.
func (c *viewCache) Set(userID string, views []ItemView) {
	c.lru.Add(userID, &cachedViewEntry{Views: views, CachedAt: time.Now()})
}

// Invalidate removes a user's entry after a committed mutation.
func (c *viewCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}
