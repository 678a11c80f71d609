package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/brochure"
)

// Run executes the cleanup command.
func (c *CleanupCmd) Run(deps *Dependencies) error {
	if c.Days < 0 {
		return brochure.Errorf(brochure.EINVALID, "days must not be negative")
	}

	cutoff := time.Now().AddDate(0, 0, -c.Days)
	removed, err := deps.Writer.CleanupOlderThan(deps.Ctx, cutoff)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brochure.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed %d file(s)\n", removed)
	return nil
}
