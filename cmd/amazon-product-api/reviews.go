package main

import (
	"fmt"

	amazonapi "github.com/belo-research/amazon-product-api"
	"github.com/belo-research/amazon-product-api/collect"
	"github.com/belo-research/amazon-product-api/export"
)

// Run executes the reviews command.
func (c *ReviewsCmd) Run(deps *Dependencies) error {
	req := &amazonapi.Request{
		Kind:        amazonapi.KindReviews,
		ASIN:        c.ASIN,
		Quantity:    c.Number,
		Page:        c.Page,
		Bulk:        c.Bulk,
		Concurrency: c.Concurrency,

		SortByScore: c.Sort,
		MinRating:   c.MinRating,
		MaxRating:   c.MaxRating,

		Reviews: amazonapi.ReviewFilter{
			VerifiedOnly: c.Verified,
			FilterByStar: c.Star,
			SortBy:       c.SortBy,
			FormatType:   c.FormatType,
		},
	}

	acc, stats, err := deps.Orchestrator.Run(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amazonapi.ErrorMessage(err))
		return err
	}

	records := collect.FinalizeReviews(collect.Reviews(acc), req)
	out := &amazonapi.ReviewsOutput{
		TotalReviews:  stats.Reviews.TotalReviews,
		StarHistogram: stats.Reviews.StarsStat,
		Result:        records,
	}

	w, closeOutput, name, err := c.outputWriter(deps, amazonapi.KindReviews, c.ASIN)
	if err != nil {
		return err
	}

	switch c.Format {
	case "csv":
		err = export.NewCSVWriter(w).WriteReviews(records)
	case "xml":
		err = export.WriteReviewsXML(w, out)
	case "jsonl":
		err = export.WriteLines(w, records)
	default:
		err = export.NewJSONWriter(w).WriteOutput(out)
	}
	if err != nil {
		_ = closeOutput()
		return err
	}
	if err := closeOutput(); err != nil {
		return err
	}

	reportWritten(deps, name, len(records))
	return nil
}
