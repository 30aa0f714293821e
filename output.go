package amazonapi

// ListingsOutput is the envelope returned by a listings run.
type ListingsOutput struct {
	TotalItems int              `json:"totalItemCount"`
	Category   string           `json:"category,omitempty"`
	Result     []*ListingRecord `json:"result"`
}

// ReviewsOutput is the envelope returned by a reviews run.
type ReviewsOutput struct {
	TotalReviews  int             `json:"totalReviews"`
	StarHistogram map[int]string  `json:"starHistogram"`
	Result        []*ReviewRecord `json:"result"`
}

// DetailOutput is the envelope returned by a detail run.
type DetailOutput struct {
	Result []*DetailRecord `json:"result"`
}
