package amazonapi

// ReviewASIN attributes a review to the scraped item and, when the review
// was written for a sibling variant, to that variant's ASIN.
type ReviewASIN struct {
	Original string `json:"original"`
	Variant  string `json:"variant"`
}

// ReviewRecord is a single customer review. Records are immutable once
// extracted.
type ReviewRecord struct {
	ID               string     `json:"id"`
	ASIN             ReviewASIN `json:"asin"`
	Name             string     `json:"name"`
	Rating           float64    `json:"rating"`
	Title            string     `json:"title"`
	Review           string     `json:"review"`
	VerifiedPurchase bool       `json:"verified_purchase"`

	// RawDate is the date text exactly as it appeared in the document;
	// Date is the geo-normalized form (YYYY-MM-DD).
	RawDate string `json:"review_data"`
	Date    string `json:"date"`
}

// Key returns the deduplication key for the accumulator.
func (r *ReviewRecord) Key() string { return r.ID }

// Validate returns an error if the record lacks its identifying field.
func (r *ReviewRecord) Validate() error {
	if r.ID == "" {
		return Errorf(EINVALID, "review record ID required")
	}
	return nil
}

// ReviewStats summarizes the review list page header: the total review
// count and the star histogram. Histogram values are the percentage text as
// displayed (e.g. "64%"), keyed by star value 1..5.
type ReviewStats struct {
	TotalReviews int            `json:"total_reviews"`
	StarsStat    map[int]string `json:"stars_stat"`
}
