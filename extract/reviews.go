package extract

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	amazonapi "github.com/belo-research/amazon-product-api"
)

var variantASINRe = regexp.MustCompile(`product-reviews/(\w+)/`)

// Reviews extracts the review list and the page-level rating statistics
// from a single reviews page. asin is the identifier the page was
// requested for; per-review variant identifiers are read from the page
// itself.
func (e *Engine) Reviews(body string, asin string) (*amazonapi.ReviewsPage, error) {
	doc, err := e.parse(body)
	if err != nil {
		return nil, err
	}

	out := &amazonapi.ReviewsPage{
		Stats: amazonapi.ReviewStats{StarsStat: map[int]string{}},
	}

	doc.Find("#histogramTable tbody tr, #histogramTable tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		star := digits(cells.First().Text())
		if star < 1 || star > 5 {
			return
		}
		pct := cleanText(cells.Last().Text())
		if cells.Length() > 2 {
			pct = cleanText(cells.Eq(2).Text())
		}
		if _, seen := out.Stats.StarsStat[star]; !seen && pct != "" {
			out.Stats.StarsStat[star] = pct
		}
	})

	if raw, ok := first(
		Strategy[string]{Name: "global rating count", Fn: func() (string, bool) {
			return textOK(doc.Find(`[data-hook="total-review-count"]`).First().Text())
		}},
		Strategy[string]{Name: "numerical star rating", Fn: func() (string, bool) {
			return textOK(doc.Find(".averageStarRatingNumerical").First().Text())
		}},
	); ok {
		out.Stats.TotalReviews = digits(raw)
	}

	doc.Find(`#cm_cr-review_list div[data-hook="review"]`).Each(func(_ int, s *goquery.Selection) {
		id := s.AttrOr("id", "")
		if id == "" {
			return
		}
		out.Records = append(out.Records, e.reviewRecord(s, id, asin))
	})

	return out, nil
}

func (e *Engine) reviewRecord(s *goquery.Selection, id, asin string) *amazonapi.ReviewRecord {
	rec := &amazonapi.ReviewRecord{
		ID:   id,
		ASIN: amazonapi.ReviewASIN{Original: asin, Variant: asin},
		Name: cleanText(s.Find(".a-profile-name").First().Text()),
	}

	rec.RawDate = cleanText(s.Find(`[data-hook="review-date"]`).First().Text())
	if date, ok := e.Geo.ReviewDate(rec.RawDate); ok {
		rec.Date = date
	}

	// Reviews posted against a different variant of the item link to
	// that variant's review page.
	if href, ok := s.Find("div.review-data.review-format-strip a").First().Attr("href"); ok {
		if m := variantASINRe.FindStringSubmatch(href); m != nil {
			rec.ASIN.Variant = m[1]
		}
	}

	if raw, ok := first(
		Strategy[string]{Name: "star rating hook", Fn: func() (string, bool) {
			return textOK(s.Find(`[data-hook="review-star-rating"]`).First().Text())
		}},
		Strategy[string]{Name: "compact star rating hook", Fn: func() (string, bool) {
			return textOK(s.Find(`[data-hook="cmps-review-star-rating"]`).First().Text())
		}},
	); ok {
		rec.Rating = leadingFloat(raw)
	}

	rec.Title = cleanText(s.Find(`[data-hook="review-title"]`).First().Text())
	rec.Review = cleanText(s.Find(`[data-hook="review-body"]`).First().Text())
	rec.VerifiedPurchase = s.Find(`[data-reftag="cm_cr_arp_d_rvw_rvwer"]`).Length() > 0 ||
		s.Find(`[data-hook="avp-badge"]`).Length() > 0

	return rec
}
