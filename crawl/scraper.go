// Package crawl provides scraping orchestration: paginated discovery of
// cell detail URLs and the fetch-extract-store pipeline over them.
package crawl

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/cellscan"
	"golang.org/x/sync/errgroup"
)

// Scraper runs the fetch-extract-upsert pipeline over a list of detail
// URLs. The extraction engine itself is stateless, so URLs are processed
// concurrently; writes go through the injected services, which serialize
// access to shared storage.
type Scraper struct {
	Fetcher     cellscan.Fetcher
	Extractor   cellscan.Extractor
	Cells       cellscan.CellService
	Runs        cellscan.RunService
	Limiter     cellscan.Limiter
	Concurrency int
	RetryDelays []time.Duration
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a scrape run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Status    string
	Error     error
}

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// Run scrapes all URLs, upserting successfully extracted cells and logging
// every per-URL outcome. It returns the finished run with its counters.
// Individual URL failures never abort the run; only context cancellation
// or run bookkeeping errors do.
func (s *Scraper) Run(ctx context.Context, urls []string, sourceFile string, progress ProgressFunc) (*cellscan.Run, error) {
	run := &cellscan.Run{
		SourceFile: sourceFile,
		TotalURLs:  len(urls),
	}
	if s.Runs != nil {
		if err := s.Runs.BeginRun(ctx, run); err != nil {
			return nil, err
		}
	} else {
		run.StartedAt = time.Now().UTC()
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(urls)})
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	start := time.Now()

	var mu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, u := range urls {
		u := u
		g.Go(func() error {
			status, slug, httpStatus, procErr := s.processURL(gctx, u)

			mu.Lock()
			completed++
			done := completed
			switch status {
			case cellscan.StatusOK:
				run.SuccessCount++
			case cellscan.StatusHTTPError:
				run.HTTPErrorCount++
			case cellscan.StatusParseError:
				run.ParseErrorCount++
			default:
				run.OtherErrorCount++
			}
			mu.Unlock()

			s.logResult(gctx, run.ID, u, slug, status, httpStatus, procErr)

			if progress != nil {
				eventType := ProgressCompleted
				if procErr != nil {
					eventType = ProgressFailed
				}
				progress(ProgressEvent{
					Type:      eventType,
					Completed: done,
					Total:     len(urls),
					URL:       u,
					Status:    status,
					Error:     procErr,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	run.Duration = time.Since(start)
	if s.Runs != nil {
		if err := s.Runs.FinishRun(ctx, run); err != nil {
			return nil, err
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(urls), Total: len(urls)})
	}

	return run, nil
}

// processURL handles one URL end to end and classifies the outcome using
// the scrape log statuses: fetch failures are http_error, an unusable
// record (no name, no slug) is parse_error, storage failures are
// other_error.
func (s *Scraper) processURL(ctx context.Context, rawURL string) (status string, slug *string, httpStatus *int, err error) {
	if s.Limiter != nil {
		if u, parseErr := url.Parse(rawURL); parseErr == nil {
			if waitErr := s.Limiter.Wait(ctx, u.Host); waitErr != nil {
				return cellscan.StatusOtherError, nil, nil, waitErr
			}
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	html, err := fetchWithRetry(ctx, s.Fetcher, rawURL, delays)
	if err != nil {
		if code := HTTPStatus(err); code != 0 {
			httpStatus = &code
		}
		return cellscan.StatusHTTPError, nil, httpStatus, err
	}

	ok := 200
	httpStatus = &ok

	cell, err := s.Extractor.Extract(html, rawURL)
	if err != nil {
		return cellscan.StatusParseError, nil, httpStatus, err
	}
	if cell.Slug != "" {
		slug = &cell.Slug
	}
	if cell.Name == nil || cell.Slug == "" {
		// A record missing either identity half is not worth persisting;
		// count it with the parse failures.
		return cellscan.StatusParseError, slug, httpStatus,
			cellscan.Errorf(cellscan.EUNPROCESSABLE, "cell name or slug not found")
	}

	if err := s.Cells.UpsertCell(ctx, cell); err != nil {
		return cellscan.StatusOtherError, slug, httpStatus, err
	}

	return cellscan.StatusOK, slug, httpStatus, nil
}

// logResult writes a per-URL log entry, ignoring logging failures so a
// bookkeeping hiccup never fails the scrape of the URL itself.
func (s *Scraper) logResult(ctx context.Context, runID, url string, slug *string, status string, httpStatus *int, procErr error) {
	if s.Runs == nil {
		return
	}

	entry := &cellscan.LogEntry{
		RunID:      runID,
		URL:        url,
		Slug:       slug,
		Status:     status,
		HTTPStatus: httpStatus,
	}
	if procErr != nil {
		msg := procErr.Error()
		entry.ErrorMessage = &msg
	}

	_ = s.Runs.LogResult(ctx, entry)
}
