package main

import (
	"fmt"

	"github.com/fwojciec/cellscan/crawl"
	"github.com/fwojciec/cellscan/fs"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	d := &crawl.Discoverer{
		Fetcher:  deps.Fetcher,
		Limiter:  deps.Limiter,
		BaseURL:  c.BaseURL,
		Mode:     c.Mode,
		View:     c.View,
		MaxPages: c.MaxPages,
	}

	urls, err := d.Discover(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if err := fs.WriteURLList(c.Output, urls); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Found %d cell URLs, written to %s\n", len(urls), c.Output)
	return nil
}
