// Package collect drives the pagination loop of a scrape run. It owns
// the per-run accumulator, schedules page work over a bounded pool, and
// decides when to stop fetching further pages.
package collect

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	amazonapi "github.com/belo-research/amazon-product-api"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the worker pool when a request does not set
// its own limit.
const DefaultConcurrency = 5

// Signal tells the scheduler whether to keep dispatching pages. It is a
// control value, never an error: a run that stops early still returns
// its accumulated records.
type Signal int

const (
	SignalContinue Signal = iota
	SignalStop
)

// RunStats carries the run-level aggregates that live outside individual
// records: the marketplace's own total-result figure for listings and
// the review histogram for review runs.
type RunStats struct {
	TotalItems int
	Reviews    amazonapi.ReviewStats
}

// Orchestrator coordinates one scrape run: fetch pages, extract records,
// merge them into the accumulator, stop early when a page signals the
// end. Metrics and Logger are optional.
type Orchestrator struct {
	Fetcher amazonapi.DocumentFetcher
	Engine  amazonapi.ExtractionEngine
	Logger  *slog.Logger
	Metrics *Metrics
}

// NewOrchestrator creates an Orchestrator with the given collaborators.
func NewOrchestrator(fetcher amazonapi.DocumentFetcher, engine amazonapi.ExtractionEngine) *Orchestrator {
	return &Orchestrator{Fetcher: fetcher, Engine: engine}
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Run executes the request and returns the accumulated records. Any
// fetch or extraction error aborts the whole run; early termination is
// not an error and returns what was collected so far.
func (o *Orchestrator) Run(ctx context.Context, req *amazonapi.Request) (*amazonapi.Accumulator, RunStats, error) {
	if err := req.Validate(); err != nil {
		return nil, RunStats{}, err
	}

	start := time.Now()
	acc := amazonapi.NewAccumulator()
	stats := &runState{}

	startPage := req.Page
	if startPage < 1 {
		startPage = 1
	}
	pages := req.Pages()

	limit := req.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var stop atomic.Bool
	for page := startPage; page < startPage+pages; page++ {
		// Checked between dispatch iterations: pages not yet started
		// are abandoned once a worker signals the end.
		if stop.Load() {
			break
		}
		g.Go(func() error {
			if stop.Load() {
				return nil
			}
			sig, err := o.processPage(ctx, req, page, acc, stats)
			if err != nil {
				return err
			}
			if sig == SignalStop {
				stop.Store(true)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if o.Metrics != nil {
			o.Metrics.RunsFailed.WithLabelValues(string(req.Kind)).Inc()
		}
		return nil, RunStats{}, err
	}

	if o.Metrics != nil {
		o.Metrics.RunDuration.WithLabelValues(string(req.Kind)).Observe(time.Since(start).Seconds())
	}
	o.logger().Debug("run complete",
		slog.String("kind", string(req.Kind)),
		slog.Int("records", acc.Len()),
		slog.Duration("duration", time.Since(start)),
	)
	return acc, stats.snapshot(), nil
}

// runState is the mutable run-level aggregate shared by workers.
type runState struct {
	mu         sync.Mutex
	totalItems int
	reviews    amazonapi.ReviewStats
}

func (s *runState) snapshot() RunStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RunStats{TotalItems: s.totalItems, Reviews: s.reviews}
}

func (o *Orchestrator) processPage(ctx context.Context, req *amazonapi.Request, page int, acc *amazonapi.Accumulator, stats *runState) (Signal, error) {
	body, err := o.Fetcher.FetchDocument(ctx, pageRequest(req, page))
	if err != nil {
		return SignalStop, err
	}
	if o.Metrics != nil {
		o.Metrics.PagesFetched.WithLabelValues(string(req.Kind)).Inc()
	}

	switch req.Kind {
	case amazonapi.KindListings:
		return o.mergeListings(req, page, body, acc, stats)
	case amazonapi.KindReviews:
		return o.mergeReviews(req, body, acc, stats)
	default:
		return o.mergeDetail(req, body, acc)
	}
}

func (o *Orchestrator) mergeListings(req *amazonapi.Request, page int, body string, acc *amazonapi.Accumulator, stats *runState) (Signal, error) {
	res, err := o.Engine.Listings(body, page)
	if err != nil {
		return SignalStop, err
	}

	for _, rec := range res.Records {
		acc.Put(rec)
	}
	if o.Metrics != nil {
		o.Metrics.RecordsExtracted.WithLabelValues(string(req.Kind)).Add(float64(len(res.Records)))
	}

	stats.mu.Lock()
	if res.TotalItems > stats.totalItems {
		stats.totalItems = res.TotalItems
	}
	stats.mu.Unlock()

	o.logger().Debug("listings page merged",
		slog.Int("page", page),
		slog.Int("raw", res.RawCount),
		slog.Int("records", len(res.Records)),
	)

	// A short page is the last page of results.
	if res.RawCount < req.PageSize() {
		return SignalStop, nil
	}
	if req.Bulk && acc.Len() >= req.Quantity {
		return SignalStop, nil
	}
	return SignalContinue, nil
}

func (o *Orchestrator) mergeReviews(req *amazonapi.Request, body string, acc *amazonapi.Accumulator, stats *runState) (Signal, error) {
	res, err := o.Engine.Reviews(body, req.ASIN)
	if err != nil {
		return SignalStop, err
	}

	for _, rec := range res.Records {
		acc.Put(rec)
	}
	if o.Metrics != nil {
		o.Metrics.RecordsExtracted.WithLabelValues(string(req.Kind)).Add(float64(len(res.Records)))
	}

	stats.mu.Lock()
	if res.Stats.TotalReviews > stats.reviews.TotalReviews {
		stats.reviews.TotalReviews = res.Stats.TotalReviews
	}
	if stats.reviews.StarsStat == nil && len(res.Stats.StarsStat) > 0 {
		stats.reviews.StarsStat = res.Stats.StarsStat
	}
	stats.mu.Unlock()

	if len(res.Records) == 0 {
		return SignalStop, nil
	}
	if req.Bulk && acc.Len() >= req.Quantity {
		return SignalStop, nil
	}
	return SignalContinue, nil
}

func (o *Orchestrator) mergeDetail(req *amazonapi.Request, body string, acc *amazonapi.Accumulator) (Signal, error) {
	rec, err := o.Engine.Detail(body, req.ASIN)
	if err != nil {
		return SignalStop, err
	}
	acc.Put(rec)
	if o.Metrics != nil {
		o.Metrics.RecordsExtracted.WithLabelValues(string(req.Kind)).Inc()
	}
	// A detail run is always exactly one page.
	return SignalStop, nil
}

// pageRequest maps a run request plus a page number onto one fetchable
// page.
func pageRequest(req *amazonapi.Request, page int) amazonapi.PageRequest {
	pr := amazonapi.PageRequest{
		Kind:     req.Kind,
		Keyword:  req.Keyword,
		ASIN:     req.ASIN,
		Category: req.Category,
		Page:     page,
		Reviews:  req.Reviews,
	}
	pr.Reviews.Page = page
	return pr
}
