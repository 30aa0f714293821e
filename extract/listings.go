package extract

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	amazonapi "github.com/belo-research/amazon-product-api"
)

// Listings extracts search-result records from a single results page.
// RawCount reports how many result slots the page carried before
// filtering, which lets callers detect a short final page.
func (e *Engine) Listings(body string, page int) (*amazonapi.ListingsPage, error) {
	doc, err := e.parse(body)
	if err != nil {
		return nil, err
	}

	out := &amazonapi.ListingsPage{
		TotalItems: totalResultCount(body),
	}

	slots := doc.Find("div[data-index]")
	out.RawCount = slots.Length()

	position := 0
	slots.Each(func(i int, s *goquery.Selection) {
		asin := s.AttrOr("data-asin", "")
		if asin == "" {
			return
		}
		position++
		rec := e.listingRecord(s, asin, page, position, i)
		out.Records = append(out.Records, rec)
	})

	return out, nil
}

func (e *Engine) listingRecord(s *goquery.Selection, asin string, page, position, index int) *amazonapi.ListingRecord {
	rec := &amazonapi.ListingRecord{
		ASIN: asin,
		URL:  e.host() + "/dp/" + asin,
		Position: amazonapi.Position{
			Page:           page,
			Position:       position,
			GlobalPosition: page*1000 + index,
		},
		Price: amazonapi.ListingPrice{
			Symbol:   e.Geo.Symbol(),
			Currency: e.Geo.Currency(),
		},
	}

	if title, ok := first(
		Strategy[string]{Name: "image alt", Fn: func() (string, bool) {
			return textOK(s.Find(`[data-image-source-density="1"]`).First().AttrOr("alt", ""))
		}},
		Strategy[string]{Name: "title heading", Fn: func() (string, bool) {
			return textOK(s.Find("h2 span").First().Text())
		}},
	); ok {
		rec.Title = title
	}
	rec.Thumbnail = s.Find(`[data-image-source-density="1"]`).First().AttrOr("src", "")

	if raw, ok := first(
		Strategy[string]{Name: "large price", Fn: func() (string, bool) {
			return textOK(s.Find(`span[data-a-size="l"] > span`).First().Text())
		}},
		Strategy[string]{Name: "medium price", Fn: func() (string, bool) {
			return textOK(s.Find(`span[data-a-size="m"] > span`).First().Text())
		}},
	); ok {
		rec.Price.CurrentPrice = e.Geo.Price(raw)
	}

	if raw, ok := textOK(s.Find(`span[data-a-strike="true"] > span`).First().Text()); ok {
		rec.Price.BeforePrice = e.Geo.Price(raw)
		rec.Price.Discounted = true
	}
	// A strike price at or below the current price is stale markup, not
	// a discount.
	if rec.Price.Discounted && rec.Price.BeforePrice > rec.Price.CurrentPrice {
		rec.Price.SavingsAmount = round2(rec.Price.BeforePrice - rec.Price.CurrentPrice)
		rec.Price.SavingsPercent = round2(rec.Price.SavingsAmount / rec.Price.BeforePrice * 100)
	} else if rec.Price.Discounted {
		rec.Price.Discounted = false
		rec.Price.BeforePrice = 0
	}

	star := s.Find(".a-icon-star-small").First()
	if raw, ok := first(
		Strategy[string]{Name: "star alt text", Fn: func() (string, bool) {
			return textOK(star.Find(".a-icon-alt").First().Text())
		}},
		Strategy[string]{Name: "star inner span", Fn: func() (string, bool) {
			return textOK(star.Find("span").First().Text())
		}},
	); ok {
		rec.Reviews.Rating = leadingFloat(raw)
	}

	if raw, ok := first(
		Strategy[string]{Name: "star sibling aria label", Fn: func() (string, bool) {
			label := star.Parent().Parent().Parent().Next().AttrOr("aria-label", "")
			if digits(label) == 0 {
				return "", false
			}
			return label, true
		}},
		Strategy[string]{Name: "underlined count", Fn: func() (string, bool) {
			raw, ok := textOK(s.Find("span.a-size-base.s-underline-text").First().Text())
			if !ok || digits(raw) == 0 {
				return "", false
			}
			return raw, true
		}},
	); ok {
		rec.Reviews.TotalReviews = digits(raw)
	}
	rec.Score = round2(rec.Reviews.Rating * float64(rec.Reviews.TotalReviews))

	rec.AmazonChoice = cleanText(s.Find(fmt.Sprintf("span[id=%q]", asin+"-amazons-choice")).Text()) != ""
	rec.BestSeller = cleanText(s.Find(fmt.Sprintf("span[id=%q]", asin+"-best-seller")).Text()) != ""
	rec.AmazonPrime = s.Find(".s-prime").Length() > 0
	rec.Sponsored = s.Find(`[data-component-type="s-sponsored-result"]`).Length() > 0 ||
		cleanText(s.Find(".puis-sponsored-label-text").Text()) != ""

	return rec
}

// totalResultCount reads the result total the page embeds in its search
// metadata blob. Zero means the page did not carry one.
func totalResultCount(body string) int {
	m := totalCountRe.FindStringSubmatch(body)
	if m == nil {
		return 0
	}
	return digits(m[1])
}
