package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/feirapp/backend/internal/domain"
	"github.com/feirapp/backend/internal/infrastructure/feed"
)

// CatalogLoader performs a feed load: fetch, parse, wholesale replace. It
// runs once at startup and again behind the manual reload endpoint.
type CatalogLoader struct {
	feedClient domain.FeedClient
	store      domain.CatalogWriter
	cache      domain.SearchCache
}

// NewCatalogLoader creates a loader. cache may be nil when search
// memoization is disabled.
func NewCatalogLoader(feedClient domain.FeedClient, store domain.CatalogWriter, cache domain.SearchCache) *CatalogLoader {
	return &CatalogLoader{
		feedClient: feedClient,
		store:      store,
		cache:      cache,
	}
}

// Reload fetches the feed and replaces the catalog, returning the new
// catalog size. On failure the current catalog (possibly empty) stays in
// place and keeps serving lookups.
func (l *CatalogLoader) Reload(ctx context.Context) (int, error) {
	records, err := l.feedClient.FetchRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching price feed: %w", err)
	}

	products := feed.ParseRecords(records)
	l.store.Replace(products)

	if l.cache != nil {
		if err := l.cache.Flush(ctx); err != nil {
			log.Printf("[FEED] search cache flush failed: %v", err)
		}
	}

	log.Printf("[FEED] catalog replaced: %d products", len(products))
	return len(products), nil
}
