package core

import (
	"context"
	"sync"
	"time"
)

// LabelLoader fetches the full category-label map from the store.
type LabelLoader func(ctx context.Context) (map[string]string, error)

// LabelCache caches the category-label map with a TTL. The clock is
// injected so tests can expire the cache deterministically. One instance
// is owned by the catalog service; there is no package-level state.
type LabelCache struct {
	mu      sync.Mutex
	loader  LabelLoader
	ttl     time.Duration
	now     func() time.Time
	labels  map[string]string
	loaded  time.Time
	hasData bool
}

// NewLabelCache creates a LabelCache. A nil now falls back to time.Now.
func NewLabelCache(loader LabelLoader, ttl time.Duration, now func() time.Time) *LabelCache {
	if now == nil {
		now = time.Now
	}
	return &LabelCache{loader: loader, ttl: ttl, now: now}
}

// Labels returns the cached map, reloading it when the TTL has elapsed.
// A failed reload falls back to the previous snapshot when one exists, so
// a transient store error does not blank out category labels.
func (c *LabelCache) Labels(ctx context.Context) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hasData && c.now().Sub(c.loaded) < c.ttl {
		return c.labels, nil
	}

	fresh, err := c.loader(ctx)
	if err != nil {
		if c.hasData {
			return c.labels, nil
		}
		return nil, err
	}

	c.labels = fresh
	c.loaded = c.now()
	c.hasData = true
	return c.labels, nil
}

// Invalidate drops the cached snapshot so the next Labels call reloads.
func (c *LabelCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasData = false
	c.labels = nil
}
