package service

import (
	"sync"
	"time"

	"github.com/greenheaven/storefront-api/internal/core/domain"
)

// ProductCache holds a single cached catalog listing with its population time.
// It is the only shared mutable state in the system: reads and the
// clear-on-write invalidation may race, costing at worst one extra store
// round-trip or one stale read within the TTL.
type ProductCache struct {
	mu          sync.RWMutex
	items       []domain.Product
	populatedAt time.Time
	ttl         time.Duration
	now         func() time.Time
}

// NewProductCache creates an empty cache with the given freshness window.
func NewProductCache(ttl time.Duration) *ProductCache {
	return &ProductCache{ttl: ttl, now: time.Now}
}

// Get returns the cached listing when it is still within the TTL.
func (c *ProductCache) Get() ([]domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.items == nil || c.now().Sub(c.populatedAt) >= c.ttl {
		return nil, false
	}
	return c.items, true
}

// GetStale returns whatever listing is held, regardless of age. Used as the
// availability fallback when the catalog store misses its deadline.
func (c *ProductCache) GetStale() ([]domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.items == nil {
		return nil, false
	}
	return c.items, true
}

// Set replaces the cached listing and restarts the freshness window.
func (c *ProductCache) Set(items []domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.populatedAt = c.now()
}

// Clear drops the cached listing. Called after every successful catalog write.
func (c *ProductCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.populatedAt = time.Time{}
}
