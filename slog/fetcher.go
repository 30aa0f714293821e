// Package slog provides logging decorators for the scraper's
// collaborator interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	amazonapi "github.com/belo-research/amazon-product-api"
)

// Ensure LoggingFetcher implements amazonapi.DocumentFetcher.
var _ amazonapi.DocumentFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a DocumentFetcher with per-page logging.
type LoggingFetcher struct {
	next   amazonapi.DocumentFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next amazonapi.DocumentFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchDocument delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) FetchDocument(ctx context.Context, req amazonapi.PageRequest) (body string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch document",
			"kind", string(req.Kind),
			"page", req.Page,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchDocument(ctx, req)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
