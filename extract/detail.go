package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	amazonapi "github.com/belo-research/amazon-product-api"
)

var couponAmountRe = regexp.MustCompile(`\d+(?:\.\d+)?%?`)

// Detail extracts the full detail record from an item page. asin may be
// empty, in which case it is read from the page; a page yielding no
// identifier is the one condition that fails the whole extraction.
func (e *Engine) Detail(body string, asin string) (*amazonapi.DetailRecord, error) {
	doc, err := e.parse(body)
	if err != nil {
		return nil, err
	}

	if asin == "" {
		asin, _ = first(
			Strategy[string]{Name: "hidden ASIN input", Fn: func() (string, bool) {
				return textOK(doc.Find("input#ASIN").First().AttrOr("value", ""))
			}},
			Strategy[string]{Name: "canonical link", Fn: func() (string, bool) {
				href := doc.Find(`link[rel="canonical"]`).First().AttrOr("href", "")
				return textOK(asinFromHref(href))
			}},
		)
	}

	rec := &amazonapi.DetailRecord{
		ASIN: asin,
		URL:  e.host() + "/dp/" + asin,
		Price: amazonapi.DetailPrice{
			Symbol:   e.Geo.Symbol(),
			Currency: e.Geo.Currency(),
		},
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if title, ok := first(
		Strategy[string]{Name: "product title", Fn: func() (string, bool) {
			return textOK(doc.Find("span#productTitle").First().Text())
		}},
		Strategy[string]{Name: "qa title", Fn: func() (string, bool) {
			return textOK(doc.Find(".qa-title-text").First().Text())
		}},
		Strategy[string]{Name: "generic title span", Fn: func() (string, bool) {
			return textOK(doc.Find("span#title").First().Text())
		}},
	); ok {
		rec.Title = title
	}

	e.extractDescription(doc, rec)
	rec.FeatureBullets = e.extractFeatureBullets(doc)
	rec.BestsellersRank = e.extractBestsellersRank(doc)
	rec.Categories = e.extractCategories(doc)
	e.extractDetailPrice(doc, rec)
	e.extractDetailReviews(doc, rec)
	rec.Variants = e.extractVariants(doc, body, asin)
	e.extractImages(doc, body, rec)
	e.extractMerchant(doc, rec)
	e.extractBadges(doc, rec)
	rec.Authors = e.extractAuthors(doc)
	rec.OtherSellers = e.extractOtherSellers(doc)
	rec.BookInSeries = e.extractBookSeries(doc)
	rec.SponsoredProducts = e.extractSponsoredCards(doc)
	rec.AlsoBought = e.extractAlsoBought(doc)
	rec.FrequentlyBoughtTogether = e.extractBoughtTogether(doc)
	rec.RelatedProducts = e.extractRelated(doc)

	rec.ItemAvailable = cleanText(doc.Find("#availability").First().Text())
	rec.DeliveryMessage = cleanText(doc.Find("#deliveryMessageMirId").First().Text())

	return rec, nil
}

func (e *Engine) extractDescription(doc *goquery.Document, rec *amazonapi.DetailRecord) {
	sel := doc.Find("#productDescription").First()
	if sel.Length() == 0 {
		sel = doc.Find("#bookDescription_feature_div").First()
	}
	if sel.Length() == 0 {
		return
	}
	rec.Description = cleanText(sel.Text())
	if e.Converter == nil {
		return
	}
	html, err := sel.Html()
	if err != nil {
		return
	}
	if md, err := e.Converter.Convert(html); err == nil {
		rec.DescriptionMarkdown = strings.TrimSpace(md)
	}
}

func (e *Engine) extractFeatureBullets(doc *goquery.Document) []string {
	var bullets []string
	collect := func(sel *goquery.Selection) {
		sel.Each(func(_ int, li *goquery.Selection) {
			if text := cleanText(li.Text()); text != "" {
				bullets = append(bullets, text)
			}
		})
	}
	collect(doc.Find("#feature-bullets ul li:not(.aok-hidden) span.a-list-item"))
	// Some layouts hide the tail of the list behind an expander.
	collect(doc.Find("#featurebullets_feature_div ul.a-unordered-list.a-vertical.a-spacing-mini li span.a-list-item").FilterFunction(
		func(_ int, s *goquery.Selection) bool {
			return !containsText(bullets, cleanText(s.Text()))
		}))
	return bullets
}

func containsText(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (e *Engine) extractDetailReviews(doc *goquery.Document, rec *amazonapi.DetailRecord) {
	if raw, ok := first(
		Strategy[string]{Name: "review count link", Fn: func() (string, bool) {
			return textOK(doc.Find("span#acrCustomerReviewText").First().Text())
		}},
		Strategy[string]{Name: "compact review count", Fn: func() (string, bool) {
			return textOK(doc.Find("span.cm-cr-review-stars-text-sm").First().Text())
		}},
	); ok {
		rec.Reviews.TotalReviews = digits(raw)
	}

	if raw, ok := first(
		Strategy[string]{Name: "histogram popover", Fn: func() (string, bool) {
			return textOK(doc.Find("span.reviewCountTextLinkedHistogram.noUnderline").First().AttrOr("title", ""))
		}},
		Strategy[string]{Name: "mini star icon", Fn: func() (string, bool) {
			return textOK(doc.Find("i.a-icon-star-mini span").First().Text())
		}},
		Strategy[string]{Name: "byline star icon", Fn: func() (string, bool) {
			return textOK(doc.Find("#acrPopover span.a-icon-alt").First().Text())
		}},
	); ok {
		rec.Reviews.Rating = leadingFloat(raw)
	}

	rec.Reviews.AnsweredQuestions = digits(cleanText(doc.Find("a#askATFLink").First().Text()))
}

func (e *Engine) extractDetailPrice(doc *goquery.Document, rec *amazonapi.DetailRecord) {
	if raw, ok := first(
		Strategy[string]{Name: "price block", Fn: func() (string, bool) {
			return textOK(doc.Find("#priceblock_ourprice").First().Text())
		}},
		Strategy[string]{Name: "apex price", Fn: func() (string, bool) {
			return textOK(doc.Find(".apexPriceToPay span.a-offscreen").First().Text())
		}},
		Strategy[string]{Name: "generic price span", Fn: func() (string, bool) {
			return textOK(doc.Find("#corePrice_feature_div span.a-price span.a-offscreen").First().Text())
		}},
		Strategy[string]{Name: "core price display", Fn: func() (string, bool) {
			return textOK(doc.Find("#corePriceDisplay_desktop_feature_div span.a-price span.a-offscreen").First().Text())
		}},
	); ok {
		rec.Price.CurrentPrice = e.Geo.Price(raw)
	}

	if raw, ok := first(
		Strategy[string]{Name: "strike price string", Fn: func() (string, bool) {
			return textOK(doc.Find("span.priceBlockStrikePriceString.a-text-strike").First().Text())
		}},
		Strategy[string]{Name: "strike price attribute", Fn: func() (string, bool) {
			return textOK(doc.Find(`span[data-a-strike="true"] span.a-offscreen`).First().Text())
		}},
	); ok {
		rec.Price.BeforePrice = e.Geo.Price(raw)
		rec.Price.Discounted = true
	}

	if rec.Price.Discounted && rec.Price.BeforePrice > rec.Price.CurrentPrice {
		rec.Price.SavingsAmount = round2(rec.Price.BeforePrice - rec.Price.CurrentPrice)
		rec.Price.SavingsPercent = round2(rec.Price.SavingsAmount / rec.Price.BeforePrice * 100)
	} else if rec.Price.Discounted {
		rec.Price.Discounted = false
		rec.Price.BeforePrice = 0
	}

	if block := cleanText(doc.Find("#corePrice_desktop").Text()); strings.Contains(block, "You Save:") {
		after := strings.SplitN(block, "You Save:", 2)[1]
		if i := strings.Index(after, e.Geo.Symbol()); i >= 0 {
			savings := after[i+len(e.Geo.Symbol()):]
			if j := strings.IndexByte(savings, ' '); j >= 0 {
				savings = savings[:j]
			}
			rec.Price.Savings = cleanText(savings)
		}
	}

	e.extractCoupon(doc, rec)
}

func (e *Engine) extractCoupon(doc *goquery.Document, rec *amazonapi.DetailRecord) {
	raw := cleanText(doc.Find(`div[data-csa-c-coupon="true"]`).First().Text())
	if raw == "" {
		return
	}
	parts := strings.SplitN(raw, ".", 2)
	rec.Price.Coupon.Text = cleanText(strings.TrimPrefix(parts[0], "Coupon:"))
	if len(parts) > 1 {
		terms := cleanText(parts[1])
		terms = strings.TrimPrefix(terms, "Terms ")
		terms = strings.TrimSuffix(terms, " Terms")
		rec.Price.Coupon.Terms = cleanText(terms)
	}
	rec.Price.Coupon.Amount = couponAmountRe.FindString(raw)
}

func (e *Engine) extractMerchant(doc *goquery.Document, rec *amazonapi.DetailRecord) {
	info := cleanText(doc.Find("div#merchant-info").Text())
	switch {
	case strings.Contains(info, "Ships from and sold by "):
		seller := strings.TrimSuffix(cleanText(strings.SplitN(info, "Ships from and sold by ", 2)[1]), ".")
		rec.Merchant.SoldBy = seller
		rec.Merchant.FulfilledBy = seller
	case strings.Contains(info, "Sold by "):
		rest := strings.SplitN(info, "Sold by ", 2)[1]
		parts := strings.SplitN(rest, " and ", 2)
		rec.Merchant.SoldBy = strings.TrimSuffix(cleanText(parts[0]), ".")
		if len(parts) > 1 {
			rec.Merchant.FulfilledBy = strings.TrimSuffix(cleanText(strings.TrimPrefix(parts[1], "Fulfilled by ")), ".")
		}
	}

	rec.Merchant.Brand = cleanText(doc.Find("a#bylineInfo").First().Text())
	rec.Merchant.StoreID = doc.Find("input#storeID").First().AttrOr("value", "")
	rec.Merchant.QtyPerOrder = doc.Find("select#quantity option").Length()
}

func (e *Engine) extractBadges(doc *goquery.Document, rec *amazonapi.DetailRecord) {
	rec.Badges.AmazonChoice = doc.Find("div.ac-badge-wrapper").Length() > 0
	rec.Badges.AmazonPrime = doc.Find("span#priceBadging_feature_div").Length() > 0 ||
		doc.Find("#primeExclusiveBadge_feature_div .a-icon-prime").Length() > 0

	var all []string
	doc.Find("div.ac-badge-wrapper, span.badge-wrapper").Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			all = append(all, text)
		}
	})
	if climate := cleanText(doc.Find("#climatePledgeFriendlyBadge").Text()); climate != "" {
		all = append(all, climate)
	}
	rec.Badges.All = strings.Join(all, "; ")
}

func (e *Engine) extractCategories(doc *goquery.Document) []amazonapi.Category {
	var out []amazonapi.Category
	doc.Find("#wayfinding-breadcrumbs_feature_div ul li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a").First()
		name := cleanText(a.Text())
		if name == "" {
			return
		}
		out = append(out, amazonapi.Category{
			Category: name,
			URL:      e.absoluteURL(a.AttrOr("href", "")),
		})
	})
	return out
}
