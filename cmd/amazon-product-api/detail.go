package main

import (
	"fmt"

	amazonapi "github.com/belo-research/amazon-product-api"
	"github.com/belo-research/amazon-product-api/collect"
	"github.com/belo-research/amazon-product-api/export"
)

// Run executes the detail command.
func (c *DetailCmd) Run(deps *Dependencies) error {
	req := &amazonapi.Request{
		Kind: amazonapi.KindDetail,
		ASIN: c.ASIN,
	}

	acc, _, err := deps.Orchestrator.Run(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amazonapi.ErrorMessage(err))
		return err
	}

	records := collect.Details(acc)
	out := &amazonapi.DetailOutput{Result: records}

	w, closeOutput, name, err := c.outputWriter(deps, amazonapi.KindDetail, c.ASIN)
	if err != nil {
		return err
	}

	switch c.Format {
	case "csv":
		err = export.NewCSVWriter(w).WriteDetails(records)
	case "xml":
		err = export.WriteDetailXML(w, out)
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
