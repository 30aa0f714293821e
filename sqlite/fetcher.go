package sqlite

import (
	"context"
	"time"

	amazonapi "github.com/belo-research/amazon-product-api"
)

// Compile-time interface verification.
var _ amazonapi.DocumentFetcher = (*CachingFetcher)(nil)

// CachingFetcher wraps a DocumentFetcher with the on-disk document
// cache: hits are served from SQLite, misses go to the inner fetcher and
// are stored on the way back. A failed cache write does not fail the
// fetch.
type CachingFetcher struct {
	inner  amazonapi.DocumentFetcher
	cache  *DocumentCache
	maxAge time.Duration
}

// NewCachingFetcher creates a read-through fetcher. maxAge of 0 means
// cached documents never expire.
func NewCachingFetcher(inner amazonapi.DocumentFetcher, cache *DocumentCache, maxAge time.Duration) *CachingFetcher {
	return &CachingFetcher{inner: inner, cache: cache, maxAge: maxAge}
}

// FetchDocument serves the page from cache when possible, falling back
// to the inner fetcher.
func (f *CachingFetcher) FetchDocument(ctx context.Context, req amazonapi.PageRequest) (string, error) {
	doc, err := f.cache.Get(ctx, req, f.maxAge)
	if err == nil {
		return doc.Content, nil
	}
	if amazonapi.ErrorCode(err) != amazonapi.ENOTFOUND {
		return "", err
	}

	body, err := f.inner.FetchDocument(ctx, req)
	if err != nil {
		return "", err
	}
	_ = f.cache.Put(ctx, req, body)
	return body, nil
}

// Close closes the inner fetcher. The cache's database is owned by the
// caller.
func (f *CachingFetcher) Close() error {
	return f.inner.Close()
}
