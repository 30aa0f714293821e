package http

import (
	"fmt"
	"net/url"
	"strconv"

	amazonapi "github.com/belo-research/amazon-product-api"
)

// PageURL builds the marketplace URL for one page request.
func PageURL(base string, req amazonapi.PageRequest) string {
	switch req.Kind {
	case amazonapi.KindReviews:
		return reviewsURL(base, req)
	case amazonapi.KindDetail:
		return base + "/dp/" + req.ASIN + "?th=1&psc=1"
	default:
		return listingsURL(base, req)
	}
}

func listingsURL(base string, req amazonapi.PageRequest) string {
	q := url.Values{}
	q.Set("k", req.Keyword)
	if req.Category != "" {
		q.Set("i", req.Category)
	}
	if req.Page > 1 {
		q.Set("page", strconv.Itoa(req.Page))
		q.Set("ref", fmt.Sprintf("sr_pg_%d", req.Page))
	}
	return base + "/s?" + q.Encode()
}

func reviewsURL(base string, req amazonapi.PageRequest) string {
	q := url.Values{}
	q.Set("ie", "UTF8")
	q.Set("pageNumber", strconv.Itoa(max(req.Reviews.Page, 1)))

	reviewerType := "all_reviews"
	if req.Reviews.VerifiedOnly {
		reviewerType = "avp_only_reviews"
	}
	q.Set("reviewerType", reviewerType)

	if req.Reviews.SortBy != "" {
		q.Set("sortBy", req.Reviews.SortBy)
	}
	if req.Reviews.FilterByStar != "" {
		q.Set("filterByStar", req.Reviews.FilterByStar)
	}
	if req.Reviews.FormatType != "" {
		q.Set("formatType", req.Reviews.FormatType)
	}
	return base + "/product-reviews/" + req.ASIN + "/ref=cm_cr_arp_d_viewopt_srt?" + q.Encode()
}
