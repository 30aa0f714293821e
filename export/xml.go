package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	amazonapi "github.com/belo-research/amazon-product-api"
)

// WriteListingsXML writes a listings envelope as an XML tree.
func WriteListingsXML(w io.Writer, out *amazonapi.ListingsOutput) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("listings")
	root.CreateAttr("totalItemCount", strconv.Itoa(out.TotalItems))
	if out.Category != "" {
		root.CreateAttr("category", out.Category)
	}

	for _, rec := range out.Result {
		item := root.CreateElement("item")
		item.CreateAttr("asin", rec.ASIN)
		item.CreateElement("title").SetText(rec.Title)
		item.CreateElement("url").SetText(rec.URL)
		item.CreateElement("thumbnail").SetText(rec.Thumbnail)

		pos := item.CreateElement("position")
		pos.CreateAttr("page", strconv.Itoa(rec.Position.Page))
		pos.CreateAttr("position", strconv.Itoa(rec.Position.Position))
		pos.CreateAttr("global_position", strconv.Itoa(rec.Position.GlobalPosition))

		price := item.CreateElement("price")
		price.CreateAttr("currency", rec.Price.Currency)
		price.CreateAttr("discounted", strconv.FormatBool(rec.Price.Discounted))
		price.CreateElement("current_price").SetText(formatFloat(rec.Price.CurrentPrice))
		price.CreateElement("before_price").SetText(formatFloat(rec.Price.BeforePrice))

		reviews := item.CreateElement("reviews")
		reviews.CreateAttr("rating", formatFloat(rec.Reviews.Rating))
		reviews.CreateAttr("total_reviews", strconv.Itoa(rec.Reviews.TotalReviews))

		badges := item.CreateElement("badges")
		badges.CreateAttr("sponsored", strconv.FormatBool(rec.Sponsored))
		badges.CreateAttr("amazon_choice", strconv.FormatBool(rec.AmazonChoice))
		badges.CreateAttr("best_seller", strconv.FormatBool(rec.BestSeller))
		badges.CreateAttr("amazon_prime", strconv.FormatBool(rec.AmazonPrime))
	}

	return writeDoc(w, doc)
}

// WriteReviewsXML writes a reviews envelope as an XML tree.
func WriteReviewsXML(w io.Writer, out *amazonapi.ReviewsOutput) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("reviews")
	root.CreateAttr("totalReviews", strconv.Itoa(out.TotalReviews))

	if len(out.StarHistogram) > 0 {
		hist := root.CreateElement("starHistogram")
		for star := 5; star >= 1; star-- {
			pct, ok := out.StarHistogram[star]
			if !ok {
				continue
			}
			entry := hist.CreateElement("stars")
			entry.CreateAttr("value", strconv.Itoa(star))
			entry.SetText(pct)
		}
	}

	for _, rec := range out.Result {
		item := root.CreateElement("review")
		item.CreateAttr("id", rec.ID)
		item.CreateAttr("asin", rec.ASIN.Original)
		if rec.ASIN.Variant != rec.ASIN.Original {
			item.CreateAttr("variant_asin", rec.ASIN.Variant)
		}
		item.CreateElement("name").SetText(rec.Name)
		item.CreateElement("rating").SetText(formatFloat(rec.Rating))
		item.CreateElement("title").SetText(rec.Title)
		item.CreateElement("body").SetText(rec.Review)
		item.CreateElement("verified_purchase").SetText(strconv.FormatBool(rec.VerifiedPurchase))
		item.CreateElement("date").SetText(rec.Date)
	}

	return writeDoc(w, doc)
}

// WriteDetailXML writes a detail envelope as an XML tree.
func WriteDetailXML(w io.Writer, out *amazonapi.DetailOutput) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("details")
	for _, rec := range out.Result {
		item := root.CreateElement("product")
		item.CreateAttr("asin", rec.ASIN)
		item.CreateElement("title").SetText(rec.Title)
		item.CreateElement("url").SetText(rec.URL)
		item.CreateElement("description").SetText(rec.Description)

		price := item.CreateElement("price")
		price.CreateAttr("currency", rec.Price.Currency)
		price.CreateAttr("discounted", strconv.FormatBool(rec.Price.Discounted))
		price.CreateElement("current_price").SetText(formatFloat(rec.Price.CurrentPrice))
		price.CreateElement("before_price").SetText(formatFloat(rec.Price.BeforePrice))

		reviews := item.CreateElement("reviews")
		reviews.CreateAttr("rating", formatFloat(rec.Reviews.Rating))
		reviews.CreateAttr("total_reviews", strconv.Itoa(rec.Reviews.TotalReviews))

		bullets := item.CreateElement("feature_bullets")
		for _, b := range rec.FeatureBullets {
			bullets.CreateElement("bullet").SetText(b)
		}

		cats := item.CreateElement("categories")
		for _, c := range rec.Categories {
			cat := cats.CreateElement("category")
			cat.CreateAttr("url", c.URL)
			cat.SetText(c.Category)
		}

		ranks := item.CreateElement("bestsellers_rank")
		for _, r := range rec.BestsellersRank {
			entry := ranks.CreateElement("rank")
			entry.CreateAttr("rank", strconv.Itoa(r.Rank))
			entry.CreateAttr("url", r.URL)
			entry.SetText(r.Category)
		}

		variants := item.CreateElement("variants")
		for _, v := range rec.Variants {
			entry := variants.CreateElement("variant")
			entry.CreateAttr("asin", v.ASIN)
			entry.CreateAttr("is_current", strconv.FormatBool(v.IsCurrent))
			entry.SetText(v.Title)
		}

		images := item.CreateElement("images")
		for _, img := range rec.Images {
			images.CreateElement("image").SetText(img)
		}
	}

	return writeDoc(w, doc)
}

func writeDoc(w io.Writer, doc *etree.Document) error {
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write xml document: %w", err)
	}
	return nil
}
