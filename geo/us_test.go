package geo_test

import (
	"testing"

	"github.com/belo-research/amazon-product-api/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUSProfile_Price(t *testing.T) {
	t.Parallel()

	p := geo.NewUSProfile()

	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain price", "$19.99", 19.99},
		{"thousands separator", "$1,299.00", 1299.00},
		{"range takes the lower bound", "$10.99 - $12.99", 10.99},
		{"surrounding text", "List Price: $24.95 Details", 24.95},
		{"no price", "Currently unavailable", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, p.Price(tt.raw), 0.001)
		})
	}
}

func TestUSProfile_BestSeller(t *testing.T) {
	t.Parallel()

	p := geo.NewUSProfile()

	t.Run("parses rank and category", func(t *testing.T) {
		t.Parallel()
		entry, ok := p.BestSeller("#2,345 in Kitchen & Dining (See Top 100 in Kitchen & Dining)")
		require.True(t, ok)
		assert.Equal(t, 2345, entry.Rank)
		assert.Equal(t, "Kitchen & Dining", entry.Category)
	})

	t.Run("accepts rank without hash mark", func(t *testing.T) {
		t.Parallel()
		entry, ok := p.BestSeller("12 in Books")
		require.True(t, ok)
		assert.Equal(t, 12, entry.Rank)
		assert.Equal(t, "Books", entry.Category)
	})

	t.Run("rejects text without a rank", func(t *testing.T) {
		t.Parallel()
		_, ok := p.BestSeller("Best Sellers Rank:")
		assert.False(t, ok)
	})
}

func TestUSProfile_ReviewDate(t *testing.T) {
	t.Parallel()

	p := geo.NewUSProfile()

	t.Run("normalizes full review date text", func(t *testing.T) {
		t.Parallel()
		date, ok := p.ReviewDate("Reviewed in the United States on June 13, 2020")
		require.True(t, ok)
		assert.Equal(t, "2020-06-13", date)
	})

	t.Run("accepts a bare date", func(t *testing.T) {
		t.Parallel()
		date, ok := p.ReviewDate("January 2, 2021")
		require.True(t, ok)
		assert.Equal(t, "2021-01-02", date)
	})

	t.Run("rejects non-dates", func(t *testing.T) {
		t.Parallel()
		_, ok := p.ReviewDate("Verified Purchase")
		assert.False(t, ok)
	})
}
