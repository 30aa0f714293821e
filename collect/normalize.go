package collect

import (
	"sort"

	amazonapi "github.com/belo-research/amazon-product-api"
)

// Normalization reduces the accumulated set to the final output: stable
// ordering by collection position, contiguous re-ranking, the optional
// popularity re-sort, and the configured filters. Filters run after
// sorting; ranks are renumbered again at the end so the returned
// sequence always carries positions 1..N.

// Listings drains the accumulator's listing records in insertion order.
func Listings(acc *amazonapi.Accumulator) []*amazonapi.ListingRecord {
	var out []*amazonapi.ListingRecord
	for _, rec := range acc.Records() {
		if lr, ok := rec.(*amazonapi.ListingRecord); ok {
			out = append(out, lr)
		}
	}
	return out
}

// Reviews drains the accumulator's review records in insertion order.
func Reviews(acc *amazonapi.Accumulator) []*amazonapi.ReviewRecord {
	var out []*amazonapi.ReviewRecord
	for _, rec := range acc.Records() {
		if rr, ok := rec.(*amazonapi.ReviewRecord); ok {
			out = append(out, rr)
		}
	}
	return out
}

// Details drains the accumulator's detail records in insertion order.
func Details(acc *amazonapi.Accumulator) []*amazonapi.DetailRecord {
	var out []*amazonapi.DetailRecord
	for _, rec := range acc.Records() {
		if dr, ok := rec.(*amazonapi.DetailRecord); ok {
			out = append(out, dr)
		}
	}
	return out
}

// FinalizeListings produces the final listing sequence for a run.
func FinalizeListings(records []*amazonapi.ListingRecord, req *amazonapi.Request) []*amazonapi.ListingRecord {
	out := make([]*amazonapi.ListingRecord, len(records))
	copy(out, records)

	// Fetch completion order is nondeterministic; the page-scoped
	// position embedded at extraction time imposes the real order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position.GlobalPosition < out[j].Position.GlobalPosition
	})
	if req.Quantity > 0 && len(out) > req.Quantity {
		out = out[:req.Quantity]
	}
	renumberListings(out)

	if req.SortByScore {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Score > out[j].Score
		})
	}
	if req.DiscountedOnly {
		out = filterListings(out, func(r *amazonapi.ListingRecord) bool {
			return r.Price.Discounted
		})
	}
	if req.SponsoredOnly {
		out = filterListings(out, func(r *amazonapi.ListingRecord) bool {
			return r.Sponsored
		})
	}
	if req.MaxRating > 0 {
		out = filterListings(out, func(r *amazonapi.ListingRecord) bool {
			return r.Reviews.Rating >= req.MinRating && r.Reviews.Rating <= req.MaxRating
		})
	}

	renumberListings(out)
	return out
}

// FinalizeReviews produces the final review sequence for a run.
func FinalizeReviews(records []*amazonapi.ReviewRecord, req *amazonapi.Request) []*amazonapi.ReviewRecord {
	out := make([]*amazonapi.ReviewRecord, len(records))
	copy(out, records)

	if req.Quantity > 0 && len(out) > req.Quantity {
		out = out[:req.Quantity]
	}
	if req.SortByScore {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	}
	if req.MaxRating > 0 {
		filtered := out[:0:0]
		for _, r := range out {
			if r.Rating >= req.MinRating && r.Rating <= req.MaxRating {
				filtered = append(filtered, r)
			}
		}
		out = filtered
	}
	return out
}

func renumberListings(records []*amazonapi.ListingRecord) {
	for i, rec := range records {
		rec.Position.GlobalPosition = i + 1
	}
}

func filterListings(records []*amazonapi.ListingRecord, keep func(*amazonapi.ListingRecord) bool) []*amazonapi.ListingRecord {
	out := records[:0:0]
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}
