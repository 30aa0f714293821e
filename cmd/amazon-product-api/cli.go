package main

import (
	"context"
	"fmt"
	"io"
	"time"

	amazonapi "github.com/belo-research/amazon-product-api"
	"github.com/belo-research/amazon-product-api/collect"
	"github.com/belo-research/amazon-product-api/export"
	"github.com/belo-research/amazon-product-api/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	DB           *sqlite.DB
	Cache        *sqlite.DocumentCache
	Orchestrator *collect.Orchestrator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Products   ProductsCmd   `cmd:"" help:"Scrape search results for a keyword"`
	Reviews    ReviewsCmd    `cmd:"" help:"Scrape reviews for a product"`
	Detail     DetailCmd     `cmd:"" help:"Scrape a single product detail page"`
	PurgeCache PurgeCacheCmd `cmd:"" name:"purge-cache" help:"Remove cached pages older than a cutoff"`

	Verbose  bool          `short:"v" help:"Enable debug logging"`
	Rate     float64       `default:"1" help:"Requests per second against the marketplace"`
	CacheTTL time.Duration `name:"cache-ttl" default:"24h" help:"Serve pages from the local cache for this long"`
}

// OutputFlags are shared by all scrape commands.
type OutputFlags struct {
	Format string `short:"F" enum:"json,jsonl,csv,xml" default:"json" help:"Output format (json, jsonl, csv, xml)"`
	Output string `short:"o" help:"Output file; '-' or empty writes to stdout, 'auto' derives a name from the run"`
}

// RatingFlags are shared by listing and review commands.
type RatingFlags struct {
	MinRating float64 `default:"0" help:"Keep only records rated at or above this"`
	MaxRating float64 `default:"0" help:"Keep only records rated at or below this (0 disables)"`
}

// ProductsCmd is the "products" subcommand.
type ProductsCmd struct {
	Keyword string `arg:"" help:"Search keyword"`

	Number      int    `short:"n" default:"15" help:"Number of listings to collect"`
	Page        int    `short:"p" default:"0" help:"Start page (single page unless --bulk)"`
	Bulk        bool   `short:"b" default:"true" negatable:"" help:"Paginate until the target number is reached"`
	Category    string `short:"c" help:"Marketplace category scope"`
	Concurrency int    `default:"0" help:"Concurrent page fetch limit (0 uses the default)"`

	Sort           bool `help:"Re-sort by popularity score"`
	DiscountedOnly bool `help:"Keep only discounted listings"`
	SponsoredOnly  bool `help:"Keep only sponsored listings"`

	RatingFlags `embed:""`
	OutputFlags `embed:""`
}

// ReviewsCmd is the "reviews" subcommand.
type ReviewsCmd struct {
	ASIN string `arg:"" help:"Product identifier"`

	Number      int    `short:"n" default:"10" help:"Number of reviews to collect"`
	Page        int    `short:"p" default:"0" help:"Start page (single page unless --bulk)"`
	Bulk        bool   `short:"b" default:"true" negatable:"" help:"Paginate until the target number is reached"`
	Concurrency int    `default:"0" help:"Concurrent page fetch limit (0 uses the default)"`
	Sort        bool   `help:"Sort reviews by rating, highest first"`
	Verified    bool   `help:"Only verified-purchase reviews"`
	Star        string `help:"Star filter, e.g. 5_stars, positive, critical"`
	SortBy      string `enum:",recent,helpful" default:"" help:"Marketplace review ordering"`
	FormatType  string `name:"review-format" enum:",all_formats,current_format" default:"" help:"Marketplace format filter"`

	RatingFlags `embed:""`
	OutputFlags `embed:""`
}

// DetailCmd is the "detail" subcommand.
type DetailCmd struct {
	ASIN string `arg:"" help:"Product identifier"`

	OutputFlags `embed:""`
}

// PurgeCacheCmd is the "purge-cache" subcommand.
type PurgeCacheCmd struct {
	OlderThan time.Duration `name:"older-than" default:"168h" help:"Delete cached pages older than this duration"`
}

// outputWriter resolves the destination for a run's serialized output.
// It returns the writer, a close function, and the resolved name ("-"
// for stdout).
func (f *OutputFlags) outputWriter(deps *Dependencies, kind amazonapi.Kind, term string) (io.Writer, func() error, string, error) {
	name := f.Output
	switch name {
	case "", "-":
		return deps.Stdout, func() error { return nil }, "-", nil
	case "auto":
		name = export.Filename(kind, term, f.Format)
	}
	file, err := export.Create(name)
	if err != nil {
		return nil, nil, "", err
	}
	return file, file.Close, name, nil
}

func reportWritten(deps *Dependencies, name string, count int) {
	if name == "-" {
		return
	}
	fmt.Fprintf(deps.Stdout, "wrote %d records to %s\n", count, name)
}
