package imagesource

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"puzzleassets/pkg/models"
)

// CachedSearcher memoizes non-empty search results in an LRU keyed by
// (provider, query, count). Empty results are not cached so a failed
// provider is asked again next time.
type CachedSearcher struct {
	inner ImageSearcher
	cache *lru.Cache[string, []models.ImageRecord]
}

func NewCachedSearcher(inner ImageSearcher, size int) (*CachedSearcher, error) {
	if size <= 0 {
		size = 256
	}
	cache, err := lru.New[string, []models.ImageRecord](size)
	if err != nil {
		return nil, fmt.Errorf("new lru: %w", err)
	}
	return &CachedSearcher{inner: inner, cache: cache}, nil
}

func (c *CachedSearcher) Name() string { return c.inner.Name() }

func (c *CachedSearcher) Search(ctx context.Context, query string, count int) []models.ImageRecord {
	key := fmt.Sprintf("%s|%s|%d", c.inner.Name(), query, count)
	if recs, ok := c.cache.Get(key); ok {
		return append([]models.ImageRecord(nil), recs...)
	}
	recs := c.inner.Search(ctx, query, count)
	if len(recs) > 0 {
		c.cache.Add(key, append([]models.ImageRecord(nil), recs...))
	}
	return recs
}
