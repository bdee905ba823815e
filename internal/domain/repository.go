package domain

import (
	"context"
	"time"
)

// CatalogRepository is the read surface of the in-memory price catalog.
// An empty catalog is a valid state: every lookup simply misses until the
// first feed load completes.
type CatalogRepository interface {
	// Products returns the catalog in feed order.
	Products() []Product

	// CheapestMatch returns the lowest-priced product whose name equals the
	// argument case-insensitively, or ok=false when nothing matches. Ties on
	// price resolve to the first entry in catalog order.
	CheapestMatch(name string) (Product, bool)

	Len() int
	LoadedAt() time.Time
}

// CatalogWriter is the replace-only write surface of the catalog. The
// catalog is never mutated incrementally; a feed load swaps it wholesale.
type CatalogWriter interface {
	Replace(products []Product)
}

// FeedClient fetches raw delimited records from the external price feed.
// The header row is already discarded; only data rows are returned.
type FeedClient interface {
	FetchRecords(ctx context.Context) ([][]string, error)
}

// SearchCache memoizes ranked search results per normalized query.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]Product, error)
	Set(ctx context.Context, key string, results []Product, ttl time.Duration) error
	Flush(ctx context.Context) error
}
