package usecase

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/feirapp/backend/internal/domain"
)

// SearchConfig holds configuration for the search service
type SearchConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// SearchService ranks catalog products against free-text queries.
type SearchService struct {
	catalog            domain.CatalogRepository
	cache              domain.SearchCache
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewSearchService creates a search service over the given catalog. cache
// may be nil to disable result memoization.
func NewSearchService(catalog domain.CatalogRepository, cache domain.SearchCache, config SearchConfig) *SearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}

	return &SearchService{
		catalog:            catalog,
		cache:              cache,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Search returns every product whose name contains the trimmed query,
// case-insensitively, ranked in two tiers: names that start with the query
// first, other substring hits after, never interleaved. Within a tier,
// products sort by the second word of the lower-cased name (a missing second
// word sorts first), then by ascending price; deeper ties keep catalog
// order. An empty or whitespace-only query means "no search performed" and
// yields no results regardless of catalog contents.
func (s *SearchService) Search(ctx context.Context, query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, q); err == nil {
			if s.enableDebugLogging {
				log.Printf("[SEARCH] cache hit for %q (%d results)", q, len(cached))
			}
			return cached
		}
	}

	var prefixMatches, substringMatches []domain.Product
	for _, product := range s.catalog.Products() {
		name := strings.ToLower(product.Name)
		if !strings.Contains(name, q) {
			continue
		}
		if strings.HasPrefix(name, q) {
			prefixMatches = append(prefixMatches, product)
		} else {
			substringMatches = append(substringMatches, product)
		}
	}

	sortTier(prefixMatches)
	sortTier(substringMatches)

	results := make([]domain.Product, 0, len(prefixMatches)+len(substringMatches))
	results = append(results, prefixMatches...)
	results = append(results, substringMatches...)

	if s.enableDebugLogging {
		log.Printf("[SEARCH] %q matched %d products (%d prefix, %d substring)",
			q, len(results), len(prefixMatches), len(substringMatches))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, q, results, s.cacheTTL); err != nil && s.enableDebugLogging {
			log.Printf("[SEARCH] cache store failed for %q: %v", q, err)
		}
	}

	return results
}

// sortTier orders one ranking tier in place: second-word key ascending, then
// price ascending. The sort must be stable so equal keys keep catalog order.
func sortTier(products []domain.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		keyI := secondWord(products[i].Name)
		keyJ := secondWord(products[j].Name)
		if keyI != keyJ {
			return keyI < keyJ
		}
		return products[i].Price < products[j].Price
	})
}

// secondWord extracts the tier sort key: the second whitespace-delimited
// word of the lower-cased name, or "" when the name has fewer than two
// words. Grouping by second word clusters variants of the same product
// family ("Leite Agros", "Leite Mimosa") ahead of the price ordering.
func secondWord(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}
