package cellscan

import (
	"context"
	"time"
)

// Outcome statuses recorded per URL in the scrape log.
const (
	StatusOK         = "ok"
	StatusHTTPError  = "http_error"
	StatusParseError = "parse_error"
	StatusOtherError = "other_error"
)

// Run represents one scraping pass over a list of detail URLs.
type Run struct {
	ID         string     `json:"id"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`
	SourceFile string     `json:"sourceFile"`

	TotalURLs       int           `json:"totalUrls"`
	SuccessCount    int           `json:"successCount"`
	HTTPErrorCount  int           `json:"httpErrorCount"`
	ParseErrorCount int           `json:"parseErrorCount"`
	OtherErrorCount int           `json:"otherErrorCount"`
	Duration        time.Duration `json:"duration"`
}

// LogEntry records the outcome of a single URL within a run.
type LogEntry struct {
	ID           string    `json:"id"`
	RunID        string    `json:"runId"`
	URL          string    `json:"url"`
	Slug         *string   `json:"slug"`
	Status       string    `json:"status"`
	HTTPStatus   *int      `json:"httpStatus"`
	ErrorMessage *string   `json:"errorMessage"`
	ScrapedAt    time.Time `json:"scrapedAt"`
}

// RunService represents a service for run bookkeeping.
type RunService interface {
	// BeginRun creates a run row and assigns its ID and start time.
	BeginRun(ctx context.Context, run *Run) error

	// FinishRun records the run's counters, duration and finish time.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, run *Run) error

	// LogResult appends a per-URL outcome to the run's log.
	LogResult(ctx context.Context, entry *LogEntry) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves all runs, most recent first.
	FindRuns(ctx context.Context) ([]*Run, error)

	// FindLogEntries retrieves the log entries for a run in insertion order.
	FindLogEntries(ctx context.Context, runID string) ([]*LogEntry, error)
}
