package amazonapi

// RankEntry is one bestseller rank: a category plus the numeric position
// the item holds within it.
type RankEntry struct {
	Rank     int    `json:"rank"`
	Category string `json:"category"`
	URL      string `json:"link,omitempty"`
}

// Category is one element of the breadcrumb path on a detail page.
type Category struct {
	Category string `json:"category"`
	URL      string `json:"url"`
}

// Variant is an alternate purchasable version (color, size, style) of the
// detail page's item.
type Variant struct {
	ASIN      string   `json:"asin"`
	Title     string   `json:"title"`
	Images    []string `json:"images"`
	URL       string   `json:"link"`
	IsCurrent bool     `json:"is_current_product"`
	Price     string   `json:"price"`
}

// CardPrice is the reduced price block carried by cross-sell cards and
// other-seller rows.
type CardPrice struct {
	Symbol       string  `json:"symbol"`
	Currency     string  `json:"currency"`
	CurrentPrice float64 `json:"current_price"`
}

// CardBadges are the badge flags a cross-sell card can carry.
type CardBadges struct {
	AmazonPrime bool   `json:"amazon_prime"`
	All         string `json:"all"`
}

// CardItem is a light record for an item referenced from a cross-sell
// section (sponsored, also-bought, frequently-bought-together, related).
type CardItem struct {
	ASIN        string        `json:"asin"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Image       []string      `json:"image,omitempty"`
	URL         string        `json:"url"`
	Reviews     ReviewSummary `json:"reviews"`
	Price       CardPrice     `json:"price"`
	Badges      CardBadges    `json:"badges"`
}

// OtherSeller is one row of the "other sellers" buying options box.
type OtherSeller struct {
	Position int       `json:"position"`
	Seller   string    `json:"seller"`
	URL      string    `json:"url"`
	Price    CardPrice `json:"price"`
}

// Author is a byline contributor on book detail pages.
type Author struct {
	Author string `json:"author"`
	Role   string `json:"role"`
	URL    string `json:"url"`
}

// SeriesEntry is one element of the book-series carousel. The first entry
// describes the series itself (SeriesName set, Title empty).
type SeriesEntry struct {
	SeriesName string        `json:"series_name,omitempty"`
	Serie      string        `json:"serie,omitempty"`
	Title      string        `json:"title,omitempty"`
	Images     []string      `json:"images"`
	URL        string        `json:"url"`
	Reviews    ReviewSummary `json:"reviews,omitempty"`
	Price      CardPrice     `json:"price,omitempty"`
}

// Coupon is the clipped-coupon box on a detail page, parsed from the
// display text.
type Coupon struct {
	Text   string `json:"text"`
	Terms  string `json:"terms"`
	Amount string `json:"amount"`
}

// DetailPrice is the full price block of a detail page.
type DetailPrice struct {
	Symbol         string  `json:"symbol"`
	Currency       string  `json:"currency"`
	CurrentPrice   float64 `json:"current_price"`
	Discounted     bool    `json:"discounted"`
	BeforePrice    float64 `json:"before_price"`
	Savings        string  `json:"savings"`
	SavingsAmount  float64 `json:"savings_amount"`
	SavingsPercent float64 `json:"savings_percent"`
	Coupon         Coupon  `json:"coupon"`
}

// DetailReviews is the review aggregate shown at the top of a detail page.
type DetailReviews struct {
	TotalReviews      int     `json:"total_reviews"`
	Rating            float64 `json:"rating"`
	AnsweredQuestions int     `json:"answered_questions"`
}

// MerchantInfo is the seller/fulfillment block plus assorted product
// information fields.
type MerchantInfo struct {
	SoldBy      string `json:"sold_by"`
	FulfilledBy string `json:"fulfilled_by"`
	Brand       string `json:"brand"`
	StoreID     string `json:"store_id"`
	QtyPerOrder int    `json:"qty_per_order"`
}

// Badges aggregates the badge state of a detail page.
type Badges struct {
	AmazonChoice bool   `json:"amazon_choice"`
	AmazonPrime  bool   `json:"amazon_prime"`
	All          string `json:"all"`
}

// DetailRecord is the superset record produced from one item detail page.
// Every sub-extraction is independently optional: a missing section leaves
// its field at the zero value and never invalidates the rest of the record.
type DetailRecord struct {
	ASIN                string `json:"asin"`
	URL                 string `json:"url"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	DescriptionMarkdown string `json:"description_markdown,omitempty"`

	FeatureBullets  []string    `json:"feature_bullets"`
	Variants        []Variant   `json:"variants"`
	Categories      []Category  `json:"categories"`
	BestsellersRank []RankEntry `json:"bestsellers_rank"`

	Reviews DetailReviews `json:"reviews"`
	Price   DetailPrice   `json:"price"`

	MainImage   string   `json:"main_image"`
	TotalImages int      `json:"total_images"`
	Images      []string `json:"images"`

	ItemAvailable   string       `json:"item_available"`
	DeliveryMessage string       `json:"delivery_message"`
	Merchant        MerchantInfo `json:"product_information"`
	Badges          Badges       `json:"badges"`

	SponsoredProducts        []CardItem    `json:"sponsored_products"`
	AlsoBought               []CardItem    `json:"also_bought"`
	FrequentlyBoughtTogether []CardItem    `json:"frequently_bought_together"`
	RelatedProducts          []CardItem    `json:"related_products"`
	OtherSellers             []OtherSeller `json:"other_sellers"`

	Authors      []Author      `json:"authors,omitempty"`
	BookInSeries []SeriesEntry `json:"book_in_series,omitempty"`
}

// Key returns the deduplication key for the accumulator.
func (r *DetailRecord) Key() string { return r.ASIN }

// Validate returns an error if the record lacks its identifying field.
// The ASIN is the only hard requirement a detail extraction has.
func (r *DetailRecord) Validate() error {
	if r.ASIN == "" {
		return Errorf(EEXTRACT, "detail record ASIN required")
	}
	return nil
}
