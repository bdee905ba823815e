package catalog

import (
	"strings"
	"sync"
	"time"

	"github.com/feirapp/backend/internal/domain"
)

// Store holds the in-memory product catalog. It is replace-only: each feed
// load swaps the whole product slice, rows are never mutated in place. The
// read lock exists for concurrent HTTP readers, not for incremental writers.
type Store struct {
	mutex    sync.RWMutex
	products []domain.Product
	loadedAt time.Time
}

// NewStore creates an empty store. An empty store is a valid serving state:
// every lookup misses until the first feed load completes.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps the catalog contents wholesale and stamps the load time.
func (s *Store) Replace(products []domain.Product) {
	copied := make([]domain.Product, len(products))
	copy(copied, products)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.products = copied
	s.loadedAt = time.Now()
}

// Products returns a copy of the catalog in feed order.
func (s *Store) Products() []domain.Product {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	copied := make([]domain.Product, len(s.products))
	copy(copied, s.products)
	return copied
}

// Len returns the number of catalog entries.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.products)
}

// LoadedAt returns when the catalog was last replaced; zero before the
// first load.
func (s *Store) LoadedAt() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.loadedAt
}

// CheapestMatch returns the lowest-priced product whose name equals name
// case-insensitively. When several entries share the minimum price the first
// one in catalog order wins, which keeps the lookup deterministic across
// identical feeds.
func (s *Store) CheapestMatch(name string) (domain.Product, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var best domain.Product
	found := false
	for _, product := range s.products {
		if !strings.EqualFold(product.Name, name) {
			continue
		}
		if !found || product.Price < best.Price {
			best = product
			found = true
		}
	}
	return best, found
}
