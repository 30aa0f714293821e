package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	amazonapi "github.com/belo-research/amazon-product-api"
)

func (e *Engine) extractAuthors(doc *goquery.Document) []amazonapi.Author {
	var out []amazonapi.Author
	doc.Find("#bylineInfo span.author").Each(func(_ int, s *goquery.Selection) {
		a := s.Find("a.contributorNameID").First()
		if a.Length() == 0 {
			a = s.Find("a").First()
		}
		name := cleanText(a.Text())
		if name == "" {
			return
		}
		role := cleanText(s.Find("span.contribution").Text())
		role = strings.Trim(role, "() ,")

		author := amazonapi.Author{Author: name, Role: role}
		if href := a.AttrOr("href", ""); href != "" && href != "#" {
			author.URL = e.absoluteURL(href)
		}
		out = append(out, author)
	})
	return out
}

func (e *Engine) extractOtherSellers(doc *goquery.Document) []amazonapi.OtherSeller {
	var out []amazonapi.OtherSeller
	doc.Find("#mbc div.a-box.mbc-offer-row").Each(func(i int, row *goquery.Selection) {
		seller := amazonapi.OtherSeller{
			Position: i + 1,
			Seller:   cleanText(row.Find(".mbcMerchantName").First().Text()),
			Price: amazonapi.CardPrice{
				Symbol:   e.Geo.Symbol(),
				Currency: e.Geo.Currency(),
			},
		}
		if raw, ok := first(
			Strategy[string]{Name: "declarative price", Fn: func() (string, bool) {
				return textOK(row.Find("span.a-declarative div div").First().Text())
			}},
			Strategy[string]{Name: "offscreen price", Fn: func() (string, bool) {
				return textOK(row.Find("span.a-price span.a-offscreen").First().Text())
			}},
		); ok {
			seller.Price.CurrentPrice = e.Geo.Price(raw)
		}
		if href, ok := row.Find(`a[id^="mbc-buybutton-addtocart"]`).First().Attr("href"); ok {
			seller.URL = e.absoluteURL(href)
		}
		if seller.Seller == "" && seller.URL == "" {
			return
		}
		out = append(out, seller)
	})
	return out
}

// extractBookSeries reads the series carousel on book pages. The first
// returned entry names the series itself; the rest are the books.
func (e *Engine) extractBookSeries(doc *goquery.Document) []amazonapi.SeriesEntry {
	var out []amazonapi.SeriesEntry

	header := doc.Find("div.shoveler-cell").Eq(1)
	if name, ok := textOK(header.Find("a").Last().Text()); ok {
		entry := amazonapi.SeriesEntry{SeriesName: name}
		if href, found := header.Find("a").First().Attr("href"); found {
			entry.URL = e.absoluteURL(href)
		}
		if src, found := header.Find("img.product-image").First().Attr("src"); found {
			entry.Images = []string{hiResThumb(src)}
		}
		out = append(out, entry)
	}

	doc.Find("#seriesAsinList li.a-carousel-card, div.series-shoveler li.a-carousel-card").Each(
		func(_ int, card *goquery.Selection) {
			a := card.Find("a").First()
			entry := amazonapi.SeriesEntry{
				Serie: cleanText(card.Find("div.a-size-small").First().Text()),
				Title: cleanText(card.Find("a span").First().Text()),
				URL:   e.absoluteURL(a.AttrOr("href", "")),
				Price: amazonapi.CardPrice{
					Symbol:   e.Geo.Symbol(),
					Currency: e.Geo.Currency(),
				},
			}
			if src, found := card.Find("img").First().Attr("src"); found {
				entry.Images = []string{hiResThumb(src)}
			}
			entry.Reviews = cardReviews(card)
			if raw, ok := textOK(card.Find("span.a-price span.a-offscreen, span.a-color-price").Last().Text()); ok {
				entry.Price.CurrentPrice = e.Geo.Price(raw)
			}
			if entry.Title == "" && entry.URL == "" {
				return
			}
			out = append(out, entry)
		})

	return out
}
