package amazonapi

// ListingsPage is the result of extracting one search-results document.
// RawCount is the number of raw candidate entries found in the markup
// before filtering; a count below the page size signals the last page.
// TotalItems is the marketplace's own total-result figure, when present.
type ListingsPage struct {
	Records    []*ListingRecord
	RawCount   int
	TotalItems int
}

// ReviewsPage is the result of extracting one review-list document.
type ReviewsPage struct {
	Records []*ReviewRecord
	Stats   ReviewStats
}

// ExtractionEngine converts raw documents into typed records. Field-level
// failures never surface as errors: every field falls back through its
// strategy chain and lands on its documented default. The only hard error
// a document can produce is a missing identifying field on a detail page.
type ExtractionEngine interface {
	// Listings extracts zero or more listing records from a
	// search-results document. page is the 1-based page number the
	// document was fetched as.
	Listings(body string, page int) (*ListingsPage, error)

	// Reviews extracts review records and the page's aggregate stats.
	// asin is the item the review list belongs to.
	Reviews(body string, asin string) (*ReviewsPage, error)

	// Detail extracts the single detail record of an item page.
	// Returns an EEXTRACT error when no item identifier can be
	// established.
	Detail(body string, asin string) (*DetailRecord, error)
}
