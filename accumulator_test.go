package amazonapi_test

import (
	"testing"

	amazonapi "github.com/belo-research/amazon-product-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulator_Put(t *testing.T) {
	t.Parallel()

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()

		acc := amazonapi.NewAccumulator()
		acc.Put(&amazonapi.ListingRecord{ASIN: "A"})
		acc.Put(&amazonapi.ListingRecord{ASIN: "B"})
		acc.Put(&amazonapi.ListingRecord{ASIN: "C"})

		records := acc.Records()
		require.Len(t, records, 3)
		assert.Equal(t, "A", records[0].Key())
		assert.Equal(t, "B", records[1].Key())
		assert.Equal(t, "C", records[2].Key())
	})

	t.Run("duplicate key wins last and keeps its original slot", func(t *testing.T) {
		t.Parallel()

		acc := amazonapi.NewAccumulator()
		acc.Put(&amazonapi.ListingRecord{ASIN: "A", Title: "first"})
		acc.Put(&amazonapi.ListingRecord{ASIN: "B"})
		replaced := acc.Put(&amazonapi.ListingRecord{ASIN: "A", Title: "second"})

		assert.True(t, replaced)
		assert.Equal(t, 2, acc.Len())

		records := acc.Records()
		first, ok := records[0].(*amazonapi.ListingRecord)
		require.True(t, ok)
		assert.Equal(t, "A", first.ASIN)
		assert.Equal(t, "second", first.Title)
	})

	t.Run("ignores records without a key", func(t *testing.T) {
		t.Parallel()

		acc := amazonapi.NewAccumulator()
		acc.Put(&amazonapi.ListingRecord{})
		assert.Equal(t, 0, acc.Len())
	})
}
