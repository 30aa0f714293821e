package slog

import (
	"log/slog"
	"time"

	amazonapi "github.com/belo-research/amazon-product-api"
)

// Ensure LoggingEngine implements amazonapi.ExtractionEngine.
var _ amazonapi.ExtractionEngine = (*LoggingEngine)(nil)

// LoggingEngine wraps an ExtractionEngine with per-document logging.
type LoggingEngine struct {
	next   amazonapi.ExtractionEngine
	logger *slog.Logger
}

// NewLoggingEngine creates a new LoggingEngine.
func NewLoggingEngine(next amazonapi.ExtractionEngine, logger *slog.Logger) *LoggingEngine {
	return &LoggingEngine{next: next, logger: logger}
}

// Listings delegates to the wrapped engine and logs the operation.
func (e *LoggingEngine) Listings(body string, page int) (res *amazonapi.ListingsPage, err error) {
	defer func(begin time.Time) {
		records := 0
		raw := 0
		if res != nil {
			records = len(res.Records)
			raw = res.RawCount
		}
		e.logger.Info("extract listings",
			"page", page,
			"raw", raw,
			"records", records,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Listings(body, page)
}

// Reviews delegates to the wrapped engine and logs the operation.
func (e *LoggingEngine) Reviews(body string, asin string) (res *amazonapi.ReviewsPage, err error) {
	defer func(begin time.Time) {
		records := 0
		if res != nil {
			records = len(res.Records)
		}
		e.logger.Info("extract reviews",
			"asin", asin,
			"records", records,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Reviews(body, asin)
}

// Detail delegates to the wrapped engine and logs the operation.
func (e *LoggingEngine) Detail(body string, asin string) (rec *amazonapi.DetailRecord, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract detail",
			"asin", asin,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Detail(body, asin)
}
