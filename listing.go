package amazonapi

// Position locates a listing within the paginated search results.
// GlobalPosition is derived from the page number and in-page index at
// extraction time and is rewritten exactly once by the normalizer after the
// final stable sort; nothing else mutates it.
type Position struct {
	Page           int `json:"page"`
	Position       int `json:"position"`
	GlobalPosition int `json:"global_position"`
}

// ListingPrice holds the price block of a search-results entry.
// Discounted is true only when BeforePrice is strictly greater than
// CurrentPrice; otherwise the discount fields are zeroed.
type ListingPrice struct {
	Symbol         string  `json:"symbol"`
	Currency       string  `json:"currency"`
	CurrentPrice   float64 `json:"current_price"`
	Discounted     bool    `json:"discounted"`
	BeforePrice    float64 `json:"before_price"`
	SavingsAmount  float64 `json:"savings_amount"`
	SavingsPercent float64 `json:"savings_percent"`
}

// ReviewSummary is the rating aggregate attached to listings and cross-sell
// cards. Both fields default to zero when the markup carries no rating.
type ReviewSummary struct {
	TotalReviews int     `json:"total_reviews"`
	Rating       float64 `json:"rating"`
}

// ListingRecord is one product as it appears on a search-results page.
// Records are immutable after extraction except for
// Position.GlobalPosition (see Position).
type ListingRecord struct {
	ASIN         string        `json:"asin"`
	Position     Position      `json:"position"`
	Price        ListingPrice  `json:"price"`
	Reviews      ReviewSummary `json:"reviews"`
	Title        string        `json:"title"`
	Thumbnail    string        `json:"thumbnail"`
	URL          string        `json:"url"`
	Sponsored    bool          `json:"sponsored"`
	AmazonChoice bool          `json:"amazonChoice"`
	BestSeller   bool          `json:"bestSeller"`
	AmazonPrime  bool          `json:"amazonPrime"`

	// Score is rating × total reviews, used only by the optional
	// popularity re-sort.
	Score float64 `json:"score"`
}

// Key returns the deduplication key for the accumulator.
func (r *ListingRecord) Key() string { return r.ASIN }

// Validate returns an error if the record lacks its identifying field.
func (r *ListingRecord) Validate() error {
	if r.ASIN == "" {
		return Errorf(EINVALID, "listing record ASIN required")
	}
	return nil
}
