package amazonapi

import "math"

// Kind selects what a run scrapes.
type Kind string

// Scrape kinds.
const (
	KindListings Kind = "listings"
	KindReviews  Kind = "reviews"
	KindDetail   Kind = "detail"
)

// Per-kind quantity caps and page sizes. Page sizes reflect how many
// candidates the marketplace serves per results page.
const (
	MaxListingQuantity = 500
	MaxReviewQuantity  = 1000

	ListingPageSize = 15
	ReviewPageSize  = 10
)

// ReviewFilter narrows a review scrape. Zero values mean "no filter".
type ReviewFilter struct {
	VerifiedOnly bool   `json:"verifiedPurchaseOnly"`
	FilterByStar string `json:"filterByStar"` // e.g. "5_stars", "positive", "critical"
	SortBy       string `json:"sortBy"`       // "recent" or "helpful"
	FormatType   string `json:"formatType"`   // "all_formats" or "current_format"
	Page         int    `json:"pageNumber"`
}

// Request describes one scrape run. It is validated before any fetch is
// issued; an invalid request never starts a run.
type Request struct {
	Kind     Kind   `json:"kind"`
	Keyword  string `json:"keyword"`
	ASIN     string `json:"asin"`
	Category string `json:"category"`

	Quantity    int  `json:"quantity"`
	Page        int  `json:"page"`
	Bulk        bool `json:"bulk"`
	Concurrency int  `json:"concurrency"`

	SortByScore    bool `json:"sort"`
	DiscountedOnly bool `json:"discountedOnly"`
	SponsoredOnly  bool `json:"sponsoredOnly"`

	MinRating float64 `json:"minRating"`
	MaxRating float64 `json:"maxRating"`

	Reviews ReviewFilter `json:"reviewFilter"`
}

// PageSize returns the number of raw candidates one results page carries
// for the request's kind.
func (r *Request) PageSize() int {
	switch r.Kind {
	case KindReviews:
		return ReviewPageSize
	default:
		return ListingPageSize
	}
}

// Pages returns how many pages must be fetched to satisfy Quantity.
// Detail scrapes always take exactly one page, as do non-bulk runs.
func (r *Request) Pages() int {
	if r.Kind == KindDetail || !r.Bulk {
		return 1
	}
	pages := int(math.Ceil(float64(r.Quantity) / float64(r.PageSize())))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Validate checks the request before a run starts.
func (r *Request) Validate() error {
	switch r.Kind {
	case KindListings:
		if r.Keyword == "" {
			return Errorf(EINVALID, "keyword is required for listing scrapes")
		}
		if r.Quantity <= 0 {
			return Errorf(EINVALID, "quantity must be positive")
		}
		if r.Quantity > MaxListingQuantity {
			return Errorf(EINVALID, "quantity %d exceeds the listing maximum of %d", r.Quantity, MaxListingQuantity)
		}
	case KindReviews:
		if r.ASIN == "" {
			return Errorf(EINVALID, "ASIN is required for review scrapes")
		}
		if r.Quantity <= 0 {
			return Errorf(EINVALID, "quantity must be positive")
		}
		if r.Quantity > MaxReviewQuantity {
			return Errorf(EINVALID, "quantity %d exceeds the review maximum of %d", r.Quantity, MaxReviewQuantity)
		}
	case KindDetail:
		if r.ASIN == "" {
			return Errorf(EINVALID, "ASIN is required for detail scrapes")
		}
	default:
		return Errorf(EINVALID, "unknown scrape kind %q", r.Kind)
	}

	if r.MinRating > r.MaxRating {
		return Errorf(EINVALID, "min rating %.1f cannot exceed max rating %.1f", r.MinRating, r.MaxRating)
	}
	if r.MinRating < 0 || r.MaxRating > 5 {
		return Errorf(EINVALID, "rating range must fall within [0,5]")
	}
	if r.Concurrency < 0 {
		return Errorf(EINVALID, "concurrency cannot be negative")
	}
	if r.Page < 0 {
		return Errorf(EINVALID, "page cannot be negative")
	}
	return nil
}
