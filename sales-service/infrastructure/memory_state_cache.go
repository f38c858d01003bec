package infrastructure

import (
	"context"
	"sync"
	"time"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/models"
)

// MemoryStateCache is an in-process StateCache used in tests and local runs
type MemoryStateCache struct {
	mu      sync.RWMutex
	entries map[models.ID]memoryCacheEntry
}

type memoryCacheEntry struct {
	result    *domain.FulfillmentResult
	expiresAt time.Time
}

// NewMemoryStateCache creates an empty in-memory cache
func NewMemoryStateCache() *MemoryStateCache {
	return &MemoryStateCache{entries: make(map[models.ID]memoryCacheEntry)}
}

// Put stores the aggregate with the given TTL
func (c *MemoryStateCache) Put(_ context.Context, orderID models.ID, result *domain.FulfillmentResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[orderID] = memoryCacheEntry{result: result, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get returns the cached aggregate, nil, nil when absent or expired
func (c *MemoryStateCache) Get(_ context.Context, orderID models.ID) (*domain.FulfillmentResult, error) {
	c.mu.RLock()
	entry, ok := c.entries[orderID]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.result, nil
}

// Delete removes an entry, used by tests to simulate expiry
func (c *MemoryStateCache) Delete(orderID models.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, orderID)
}
