package main

import (
	"fmt"

	amazonapi "github.com/belo-research/amazon-product-api"
	"github.com/belo-research/amazon-product-api/collect"
	"github.com/belo-research/amazon-product-api/export"
)

// Run executes the products command.
func (c *ProductsCmd) Run(deps *Dependencies) error {
	req := &amazonapi.Request{
		Kind:        amazonapi.KindListings,
		Keyword:     c.Keyword,
		Category:    c.Category,
		Quantity:    c.Number,
		Page:        c.Page,
		Bulk:        c.Bulk,
		Concurrency: c.Concurrency,

		SortByScore:    c.Sort,
		DiscountedOnly: c.DiscountedOnly,
		SponsoredOnly:  c.SponsoredOnly,
		MinRating:      c.MinRating,
		MaxRating:      c.MaxRating,
	}

	acc, stats, err := deps.Orchestrator.Run(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amazonapi.ErrorMessage(err))
		return err
	}

	records := collect.FinalizeListings(collect.Listings(acc), req)
	out := &amazonapi.ListingsOutput{
		TotalItems: stats.TotalItems,
		Category:   c.Category,
		Result:     records,
	}

	w, closeOutput, name, err := c.outputWriter(deps, amazonapi.KindListings, c.Keyword)
	if err != nil {
		return err
	}

	switch c.Format {
	case "csv":
		err = export.NewCSVWriter(w).WriteListings(records)
	case "xml":
		err = export.WriteListingsXML(w, out)
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
