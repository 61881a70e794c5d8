package compro

import (
	"context"
	"sync"
	"time"
)

// SiteCache holds the published content the sitemap and status page read on
// every hit, refreshed from the store at most once per TTL. Writes through
// the API call Invalidate so the next read refreshes immediately.
type SiteCache struct {
	mu        sync.RWMutex
	store     Store
	ttl       time.Duration
	cachedAt  time.Time
	pages     []Page
	portfolio []PortfolioItem
}

func NewSiteCache(store Store, ttl time.Duration) *SiteCache {
	return &SiteCache{store: store, ttl: ttl}
}

// Content returns the cached published pages and portfolio items,
// refreshing from the store when the cache is stale.
func (sc *SiteCache) Content(ctx context.Context) ([]Page, []PortfolioItem, error) {
	sc.mu.RLock()
	if time.Since(sc.cachedAt) < sc.ttl {
		pages, portfolio := sc.pages, sc.portfolio
		sc.mu.RUnlock()
		return pages, portfolio, nil
	}
	sc.mu.RUnlock()

	sc.mu.Lock()
	defer sc.mu.Unlock()
	// Another goroutine may have refreshed while we waited for the lock.
	if time.Since(sc.cachedAt) < sc.ttl {
		return sc.pages, sc.portfolio, nil
	}

	pages, _, err := sc.store.ListPages(ctx, PageFilter{Status: PageStatusPublished}, 0)
	if err != nil {
		return nil, nil, err
	}
	portfolio, _, err := sc.store.ListPortfolio(ctx, 0)
	if err != nil {
		return nil, nil, err
	}

	sc.pages = pages
	sc.portfolio = portfolio
	sc.cachedAt = time.Now()
	return pages, portfolio, nil
}

// Invalidate marks the cache stale.
func (sc *SiteCache) Invalidate() {
	sc.mu.Lock()
	sc.cachedAt = time.Time{}
	sc.mu.Unlock()
}
