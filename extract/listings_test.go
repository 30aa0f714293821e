package extract_test

import (
	"testing"

	amazonapi "github.com/belo-research/amazon-product-api"
	"github.com/belo-research/amazon-product-api/extract"
	"github.com/belo-research/amazon-product-api/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingsPage = `<html><body>
<script>var meta = {"totalResultCount":2000,"page":1};</script>
<div data-index="0" data-asin="B08N5WRWNW">
	<img data-image-source-density="1" alt="Echo Dot (4th Gen)" src="https://m.media-amazon.com/images/I/abc._AC_UL320_.jpg">
	<span data-a-size="l"><span>$49.99</span></span>
	<span data-a-strike="true"><span>$59.99</span></span>
	<div><div><div><i class="a-icon-star-small"><span class="a-icon-alt">4.7 out of 5 stars</span></i></div></div></div>
	<span aria-label="872,373"></span>
	<span id="B08N5WRWNW-amazons-choice">Amazon's Choice</span>
	<i class="s-prime"></i>
</div>
<div data-index="1" data-asin="B07FZ8S74R">
	<img data-image-source-density="1" alt="Echo Show 8" src="https://m.media-amazon.com/images/I/def._AC_UL320_.jpg">
	<span data-a-size="m"><span>$109.99</span></span>
	<span data-a-strike="true"><span>$109.99</span></span>
	<span class="a-size-base s-underline-text">14,203</span>
	<span id="B07FZ8S74R-best-seller">Best Seller</span>
	<span class="puis-sponsored-label-text">Sponsored</span>
</div>
<div data-index="2"></div>
</body></html>`

func TestListings(t *testing.T) {
	t.Parallel()

	e := extract.NewEngine(geo.NewUSProfile())
	page, err := e.Listings(listingsPage, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, page.RawCount)
	assert.Equal(t, 2000, page.TotalItems)
	require.Len(t, page.Records, 2)

	t.Run("discounted record", func(t *testing.T) {
		rec := page.Records[0]
		assert.Equal(t, "B08N5WRWNW", rec.ASIN)
		assert.Equal(t, "Echo Dot (4th Gen)", rec.Title)
		assert.Equal(t, "https://www.amazon.com/dp/B08N5WRWNW", rec.URL)
		assert.Equal(t, 2, rec.Position.Page)
		assert.Equal(t, 1, rec.Position.Position)
		assert.Equal(t, 2000, rec.Position.GlobalPosition)

		assert.Equal(t, 49.99, rec.Price.CurrentPrice)
		assert.True(t, rec.Price.Discounted)
		assert.Equal(t, 59.99, rec.Price.BeforePrice)
		assert.Equal(t, 10.0, rec.Price.SavingsAmount)
		assert.Equal(t, 16.67, rec.Price.SavingsPercent)

		assert.Equal(t, 4.7, rec.Reviews.Rating)
		assert.Equal(t, 872373, rec.Reviews.TotalReviews)
		assert.Equal(t, 4100153.1, rec.Score)

		assert.True(t, rec.AmazonChoice)
		assert.True(t, rec.AmazonPrime)
		assert.False(t, rec.BestSeller)
		assert.False(t, rec.Sponsored)
	})

	t.Run("stale strike price is not a discount", func(t *testing.T) {
		rec := page.Records[1]
		assert.Equal(t, "B07FZ8S74R", rec.ASIN)
		assert.Equal(t, 109.99, rec.Price.CurrentPrice)
		assert.False(t, rec.Price.Discounted)
		assert.Zero(t, rec.Price.BeforePrice)
		assert.Zero(t, rec.Price.SavingsAmount)

		assert.Equal(t, 14203, rec.Reviews.TotalReviews)
		assert.Zero(t, rec.Reviews.Rating)
		assert.Zero(t, rec.Score)

		assert.True(t, rec.BestSeller)
		assert.True(t, rec.Sponsored)
		assert.False(t, rec.AmazonPrime)
	})

	t.Run("second position keeps page-relative numbering", func(t *testing.T) {
		rec := page.Records[1]
		assert.Equal(t, 2, rec.Position.Position)
		assert.Equal(t, 2001, rec.Position.GlobalPosition)
	})
}

func TestListings_Empty(t *testing.T) {
	t.Parallel()

	e := extract.NewEngine(geo.NewUSProfile())
	page, err := e.Listings("<html><body><p>No results</p></body></html>", 1)
	require.NoError(t, err)
	assert.Zero(t, page.RawCount)
	assert.Empty(t, page.Records)
}

var _ amazonapi.ExtractionEngine = (*extract.Engine)(nil)
