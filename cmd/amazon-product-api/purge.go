package main

import (
	"fmt"
	"time"

	amazonapi "github.com/belo-research/amazon-product-api"
)

// Run executes the purge-cache command.
func (c *PurgeCacheCmd) Run(deps *Dependencies) error {
	cutoff := time.Now().Add(-c.OlderThan)

	deleted, err := deps.Cache.Purge(deps.Ctx, cutoff)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amazonapi.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "purged %d cached pages older than %s\n", deleted, c.OlderThan)
	return nil
}
