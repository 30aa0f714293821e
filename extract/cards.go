package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	amazonapi "github.com/belo-research/amazon-product-api"
)

// Cross-sell sections reference other items with a reduced record: the
// extraction here is best-effort per card, and a card without an
// identifier is dropped.

func (e *Engine) newCard(asin string) amazonapi.CardItem {
	return amazonapi.CardItem{
		ASIN: asin,
		URL:  e.host() + "/dp/" + asin,
		Price: amazonapi.CardPrice{
			Symbol:   e.Geo.Symbol(),
			Currency: e.Geo.Currency(),
		},
	}
}

func (e *Engine) extractSponsoredCards(doc *goquery.Document) []amazonapi.CardItem {
	var out []amazonapi.CardItem
	seen := map[string]bool{}
	doc.Find(`#sp_detail-none [data-asin], div[id^="sp_detail"] [data-asin]`).Each(func(_ int, s *goquery.Selection) {
		asin := s.AttrOr("data-asin", "")
		if asin == "" || seen[asin] {
			return
		}
		seen[asin] = true

		card := e.newCard(asin)
		img := s.Find("a img").First()
		card.Title = cleanText(img.AttrOr("alt", ""))
		if src, ok := img.Attr("src"); ok {
			card.Image = []string{hiResThumb(src)}
		}
		card.Reviews = cardReviews(s)
		if raw, ok := textOK(s.Find("span.a-price span.a-offscreen").First().Text()); ok {
			card.Price.CurrentPrice = e.Geo.Price(raw)
		}
		card.Badges.AmazonPrime = s.Find(".a-icon-prime").Length() > 0
		out = append(out, card)
	})
	return out
}

func (e *Engine) extractAlsoBought(doc *goquery.Document) []amazonapi.CardItem {
	var out []amazonapi.CardItem
	doc.Find(`div[id^="desktop-dp-sims_purchase-similarities"] li.a-carousel-card`).Each(func(_ int, s *goquery.Selection) {
		asin := carouselASIN(s)
		if asin == "" {
			return
		}
		card := e.newCard(asin)
		img := s.Find("img").First()
		card.Title = cleanText(img.AttrOr("alt", ""))
		if src, ok := img.Attr("src"); ok {
			card.Image = []string{hiResThumb(src)}
		}
		card.Reviews = cardReviews(s)
		if raw, ok := textOK(s.Find("span.a-price span.a-offscreen, span.p13n-sc-price").Last().Text()); ok {
			card.Price.CurrentPrice = e.Geo.Price(raw)
		}
		out = append(out, card)
	})
	return out
}

func (e *Engine) extractBoughtTogether(doc *goquery.Document) []amazonapi.CardItem {
	section := doc.Find(".cardRoot").FilterFunction(func(_ int, s *goquery.Selection) bool {
		heading := s.Find("h2").Text()
		return strings.Contains(heading, "Frequently bought together") || strings.Contains(heading, "Buy it with")
	})
	var out []amazonapi.CardItem
	seen := map[string]bool{}
	section.Find("a").Each(func(_ int, a *goquery.Selection) {
		img := a.Find("img").First()
		if img.Length() == 0 {
			return
		}
		asin := asinFromHref(a.AttrOr("href", ""))
		if asin == "" || seen[asin] {
			return
		}
		seen[asin] = true
		card := e.newCard(asin)
		card.Title = cleanText(img.AttrOr("alt", ""))
		if src, ok := img.Attr("src"); ok {
			card.Image = []string{hiResThumb(src)}
		}
		out = append(out, card)
	})
	return out
}

func (e *Engine) extractRelated(doc *goquery.Document) []amazonapi.CardItem {
	var out []amazonapi.CardItem
	doc.Find(".sp_offerVertical").Each(func(_ int, s *goquery.Selection) {
		asin := s.AttrOr("data-asin", "")
		if asin == "" {
			return
		}
		card := e.newCard(asin)
		if text := cleanText(s.Text()); text != "" {
			card.Description, _, _ = strings.Cut(text, "...")
		}
		img := s.Find("img").First()
		card.Title = cleanText(img.AttrOr("alt", ""))
		if src, ok := img.Attr("src"); ok {
			card.Image = []string{hiResThumb(src)}
		}
		out = append(out, card)
	})
	if len(out) > 0 {
		return out
	}

	// Mobile pages render the section as a plain carousel.
	seen := map[string]bool{}
	doc.Find(`div[id^="sims-consolidated"] li.a-carousel-card a`).Each(func(_ int, a *goquery.Selection) {
		asin := asinFromHref(a.AttrOr("href", ""))
		if asin == "" || seen[asin] {
			return
		}
		seen[asin] = true
		card := e.newCard(asin)
		card.Title = cleanText(a.Find("img").First().AttrOr("alt", ""))
		out = append(out, card)
	})
	return out
}

// carouselASIN reads the identifier a carousel card embeds in its
// p13n metadata attribute.
func carouselASIN(s *goquery.Selection) string {
	meta := s.Find("div[data-p13n-asin-metadata]").First().AttrOr("data-p13n-asin-metadata", "")
	if meta != "" {
		var parsed struct {
			ASIN string `json:"asin"`
		}
		if err := json.Unmarshal([]byte(meta), &parsed); err == nil && parsed.ASIN != "" {
			return parsed.ASIN
		}
	}
	return asinFromHref(s.Find("a").First().AttrOr("href", ""))
}

// cardReviews builds the rating summary for a cross-sell card from its
// star icon class and adjacent review count.
func cardReviews(s *goquery.Selection) amazonapi.ReviewSummary {
	var out amazonapi.ReviewSummary
	if class, ok := s.Find("i.a-icon-star, i.a-icon-star-small").First().Attr("class"); ok {
		out.Rating = starFromClass(class)
	}
	if raw, ok := textOK(s.Find("i.a-icon-star, i.a-icon-star-small").First().Parent().Next().Text()); ok {
		out.TotalReviews = digits(raw)
	} else if raw, ok := textOK(s.Find("span.a-size-small").Last().Text()); ok {
		out.TotalReviews = digits(raw)
	}
	return out
}
