package extract_test

import (
	"testing"

	"github.com/belo-research/amazon-product-api/extract"
	"github.com/belo-research/amazon-product-api/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewsPage = `<html><body>
<span data-hook="total-review-count">88,172 global ratings</span>
<table id="histogramTable"><tbody>
<tr><td>5 star</td><td><div></div></td><td>68%</td></tr>
<tr><td>4 star</td><td><div></div></td><td>17%</td></tr>
<tr><td>3 star</td><td><div></div></td><td>7%</td></tr>
<tr><td>2 star</td><td><div></div></td><td>3%</td></tr>
<tr><td>1 star</td><td><div></div></td><td>5%</td></tr>
</tbody></table>
<div id="cm_cr-review_list">
<div id="R1AAAA1111BBBB" data-hook="review">
	<span class="a-profile-name">Jordan</span>
	<i data-hook="review-star-rating"><span>5.0 out of 5 stars</span></i>
	<a data-hook="review-title"><span>Excellent sound</span></a>
	<span data-hook="review-date">Reviewed in the United States on March 2, 2021</span>
	<div class="a-row a-spacing-mini review-data review-format-strip">
		<a href="/product-reviews/B07XJ8C8F5/ref=cm_cr_arp_d_rvw_txt?ie=UTF8">Color: Black</a>
	</div>
	<span data-hook="avp-badge">Verified Purchase</span>
	<span data-hook="review-body"><span>Great little speaker for the price.</span></span>
</div>
<div id="R2CCCC2222DDDD" data-hook="review">
	<span class="a-profile-name">Casey</span>
	<i data-hook="cmps-review-star-rating"><span>3.0 out of 5 stars</span></i>
	<a data-hook="review-title"><span>Average</span></a>
	<span data-hook="review-date">Reviewed in the United States on January 14, 2020</span>
	<span data-hook="review-body"><span>Does the job.</span></span>
</div>
</div>
</body></html>`

func TestReviews(t *testing.T) {
	t.Parallel()

	e := extract.NewEngine(geo.NewUSProfile())
	page, err := e.Reviews(reviewsPage, "B08N5WRWNW")
	require.NoError(t, err)

	t.Run("stats", func(t *testing.T) {
		assert.Equal(t, 88172, page.Stats.TotalReviews)
		assert.Equal(t, map[int]string{5: "68%", 4: "17%", 3: "7%", 2: "3%", 1: "5%"}, page.Stats.StarsStat)
	})

	require.Len(t, page.Records, 2)

	t.Run("verified review on a variant", func(t *testing.T) {
		rec := page.Records[0]
		assert.Equal(t, "R1AAAA1111BBBB", rec.ID)
		assert.Equal(t, "B08N5WRWNW", rec.ASIN.Original)
		assert.Equal(t, "B07XJ8C8F5", rec.ASIN.Variant)
		assert.Equal(t, "Jordan", rec.Name)
		assert.Equal(t, 5.0, rec.Rating)
		assert.Equal(t, "Excellent sound", rec.Title)
		assert.Equal(t, "Great little speaker for the price.", rec.Review)
		assert.True(t, rec.VerifiedPurchase)
		assert.Equal(t, "Reviewed in the United States on March 2, 2021", rec.RawDate)
		assert.Equal(t, "2021-03-02", rec.Date)
	})

	t.Run("unverified review keeps the requested item id", func(t *testing.T) {
		rec := page.Records[1]
		assert.Equal(t, "R2CCCC2222DDDD", rec.ID)
		assert.Equal(t, "B08N5WRWNW", rec.ASIN.Variant)
		assert.Equal(t, "Casey", rec.Name)
		assert.Equal(t, 3.0, rec.Rating)
		assert.False(t, rec.VerifiedPurchase)
		assert.Equal(t, "2020-01-14", rec.Date)
	})
}

func TestReviews_NoHistogram(t *testing.T) {
	t.Parallel()

	e := extract.NewEngine(geo.NewUSProfile())
	page, err := e.Reviews("<html><body></body></html>", "B08N5WRWNW")
	require.NoError(t, err)
	assert.Empty(t, page.Records)
	assert.Empty(t, page.Stats.StarsStat)
	assert.Zero(t, page.Stats.TotalReviews)
}
