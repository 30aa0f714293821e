package amazonapi

import (
	"context"
	"fmt"
)

// PageRequest identifies one document to retrieve: a results page for a
// keyword, a review page for an item, or an item's detail page.
type PageRequest struct {
	Kind     Kind
	Keyword  string
	ASIN     string
	Category string
	Page     int
	Reviews  ReviewFilter
}

// Key returns a canonical identity string for the page, used as a cache
// key by fetcher implementations.
func (r PageRequest) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%d|%t|%s|%s|%s|%d",
		r.Kind, r.Keyword, r.ASIN, r.Category, r.Page,
		r.Reviews.VerifiedOnly, r.Reviews.FilterByStar, r.Reviews.SortBy,
		r.Reviews.FormatType, r.Reviews.Page)
}

// DocumentFetcher retrieves the raw document for a page request.
// Implementations own every transport concern: caching, timeouts, pacing,
// user-agent selection. Extraction never sees anything but the body text.
type DocumentFetcher interface {
	// FetchDocument returns the raw document body for the request.
	// The context controls timeout and cancellation.
	FetchDocument(ctx context.Context, req PageRequest) (string, error)

	// Close releases any resources held by the fetcher.
	Close() error
}
