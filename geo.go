package amazonapi

// GeoProfile is the locale-specific parsing capability injected into the
// extraction engine. Prices, bestseller rank text, and review dates are
// formatted differently per marketplace locale, so the engine never parses
// them inline.
type GeoProfile interface {
	// Host is the marketplace host, e.g. "www.amazon.com".
	Host() string

	// Symbol is the currency symbol, e.g. "$".
	Symbol() string

	// Currency is the ISO currency code, e.g. "USD".
	Currency() string

	// Price converts a raw price string into a numeric price.
	// Returns 0 when the text carries no parseable price.
	Price(raw string) float64

	// BestSeller parses a rank text such as "#1,234 in Widgets" into a
	// structured entry. The bool is false when the text is not a rank.
	BestSeller(raw string) (RankEntry, bool)

	// ReviewDate normalizes a review date text to YYYY-MM-DD.
	// The bool is false when no date could be recognized.
	ReviewDate(raw string) (string, bool)
}
