package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/cellscan/crawl"
	"github.com/fwojciec/cellscan/fs"
	"github.com/fwojciec/cellscan/goquery"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	urls, err := fs.ReadURLList(c.URLFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintf(deps.Stderr, "error: %s contains no URLs\n", c.URLFile)
		return fmt.Errorf("no URLs to scrape")
	}

	scraper := &crawl.Scraper{
		Fetcher:     deps.Fetcher,
		Extractor:   goquery.NewExtractor(),
		Cells:       deps.Cells,
		Runs:        deps.Runs,
		Limiter:     deps.Limiter,
		Concurrency: c.Concurrency,
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d URLs\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s %s: %v\n",
				event.Completed, event.Total, event.Status, event.URL, event.Error)
		case crawl.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	run, err := scraper.Run(deps.Ctx, urls, c.URLFile, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s finished in %s: %d ok, %d http errors, %d parse errors, %d other errors\n",
		run.ID, run.Duration.Round(time.Second),
		run.SuccessCount, run.HTTPErrorCount, run.ParseErrorCount, run.OtherErrorCount)
	return nil
}
