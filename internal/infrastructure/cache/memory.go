package cache

import (
	"context"
	"sync"
	"time"

	"github.com/feirapp/backend/internal/domain"
)

// entry is one cached result set with its expiration
type entry struct {
	results    []domain.Product
	expiration time.Time
}

// Memory is a thread-safe in-memory cache for ranked search results, keyed
// by normalized query.
type Memory struct {
	data  map[string]entry
	mutex sync.RWMutex
}

// NewMemory creates a new memory cache and starts a janitor goroutine that
// evicts expired entries every 10 minutes.
func NewMemory() *Memory {
	cache := &Memory{
		data: make(map[string]entry),
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves the cached result set for key, or domain.ErrCacheMiss.
func (c *Memory) Get(ctx context.Context, key string) ([]domain.Product, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}

	results := make([]domain.Product, len(item.results))
	copy(results, item.results)
	return results, nil
}

// Set stores a result set under key with the given TTL.
func (c *Memory) Set(ctx context.Context, key string, results []domain.Product, ttl time.Duration) error {
	copied := make([]domain.Product, len(results))
	copy(copied, results)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = entry{
		results:    copied,
		expiration: time.Now().Add(ttl),
	}
	return nil
}

// Flush drops every entry. Called when the catalog is replaced so stale
// rankings never outlive the rows they were computed from.
func (c *Memory) Flush(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]entry)
	return nil
}

// Size returns the current number of cached result sets (for debugging)
func (c *Memory) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// cleanupExpired periodically removes expired entries
func (c *Memory) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mutex.Lock()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}
