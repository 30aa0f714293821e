package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"

	amazonapi "github.com/belo-research/amazon-product-api"
)

// CSVWriter writes records in row-flattened tabular form. Nested record
// fields are flattened into scalar columns; list-valued detail fields
// are reduced to counts.
type CSVWriter struct {
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter initialises a CSV writer on w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{writer: csv.NewWriter(w)}
}

// WriteListings writes the header row followed by one row per listing.
func (cw *CSVWriter) WriteListings(records []*amazonapi.ListingRecord) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	header := []string{
		"asin", "title", "url", "thumbnail",
		"page", "position", "global_position",
		"price", "before_price", "discounted", "savings_amount", "savings_percent", "currency",
		"rating", "total_reviews", "score",
		"sponsored", "amazon_choice", "best_seller", "amazon_prime",
	}
	if err := cw.writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.ASIN,
			rec.Title,
			rec.URL,
			rec.Thumbnail,
			strconv.Itoa(rec.Position.Page),
			strconv.Itoa(rec.Position.Position),
			strconv.Itoa(rec.Position.GlobalPosition),
			formatFloat(rec.Price.CurrentPrice),
			formatFloat(rec.Price.BeforePrice),
			strconv.FormatBool(rec.Price.Discounted),
			formatFloat(rec.Price.SavingsAmount),
			formatFloat(rec.Price.SavingsPercent),
			rec.Price.Currency,
			formatFloat(rec.Reviews.Rating),
			strconv.Itoa(rec.Reviews.TotalReviews),
			formatFloat(rec.Score),
			strconv.FormatBool(rec.Sponsored),
			strconv.FormatBool(rec.AmazonChoice),
			strconv.FormatBool(rec.BestSeller),
			strconv.FormatBool(rec.AmazonPrime),
		}
		if err := cw.writer.Write(row); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return fmt.Errorf("flush csv records: %w", err)
	}
	return nil
}

// WriteReviews writes the header row followed by one row per review.
func (cw *CSVWriter) WriteReviews(records []*amazonapi.ReviewRecord) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	header := []string{
		"id", "asin", "variant_asin", "name", "rating",
		"title", "review", "verified_purchase", "date",
	}
	if err := cw.writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.ASIN.Original,
			rec.ASIN.Variant,
			rec.Name,
			formatFloat(rec.Rating),
			rec.Title,
			rec.Review,
			strconv.FormatBool(rec.VerifiedPurchase),
			rec.Date,
		}
		if err := cw.writer.Write(row); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return fmt.Errorf("flush csv records: %w", err)
	}
	return nil
}

// WriteDetails writes the header row followed by one row per detail
// record.
func (cw *CSVWriter) WriteDetails(records []*amazonapi.DetailRecord) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	header := []string{
		"asin", "title", "url", "price", "before_price", "discounted",
		"rating", "total_reviews", "answered_questions",
		"sold_by", "fulfilled_by", "brand", "item_available",
		"variants", "images", "categories", "feature_bullets",
	}
	if err := cw.writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.ASIN,
			rec.Title,
			rec.URL,
			formatFloat(rec.Price.CurrentPrice),
			formatFloat(rec.Price.BeforePrice),
			strconv.FormatBool(rec.Price.Discounted),
			formatFloat(rec.Reviews.Rating),
			strconv.Itoa(rec.Reviews.TotalReviews),
			strconv.Itoa(rec.Reviews.AnsweredQuestions),
			rec.Merchant.SoldBy,
			rec.Merchant.FulfilledBy,
			rec.Merchant.Brand,
			rec.ItemAvailable,
			strconv.Itoa(len(rec.Variants)),
			strconv.Itoa(len(rec.Images)),
			strconv.Itoa(len(rec.Categories)),
			strconv.Itoa(len(rec.FeatureBullets)),
		}
		if err := cw.writer.Write(row); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return fmt.Errorf("flush csv records: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
