package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/cellscan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cellscan.RunService = (*RunService)(nil)

// maxErrorMessageLen bounds stored error messages; anything longer is
// truncated to keep the log table readable.
const maxErrorMessageLen = 500

// RunService implements cellscan.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// BeginRun creates a run row and assigns its ID and start time.
func (s *RunService) BeginRun(ctx context.Context, run *cellscan.Run) error {
	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrape_runs (id, started_at, source_file, total_urls)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.StartedAt.Format(time.RFC3339), run.SourceFile, run.TotalURLs)

	return err
}

// FinishRun records the run's counters, duration and finish time.
func (s *RunService) FinishRun(ctx context.Context, run *cellscan.Run) error {
	finishedAt := time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE scrape_runs
		SET finished_at = ?, total_urls = ?, success_count = ?,
			http_error_count = ?, parse_error_count = ?, other_error_count = ?,
			duration_sec = ?
		WHERE id = ?
	`, finishedAt.Format(time.RFC3339), run.TotalURLs, run.SuccessCount,
		run.HTTPErrorCount, run.ParseErrorCount, run.OtherErrorCount,
		run.Duration.Seconds(), run.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return cellscan.Errorf(cellscan.ENOTFOUND, "run %q not found", run.ID)
	}

	run.FinishedAt = &finishedAt
	return nil
}

// LogResult appends a per-URL outcome to the run's log.
func (s *RunService) LogResult(ctx context.Context, entry *cellscan.LogEntry) error {
	entry.ID = uuid.New().String()
	entry.ScrapedAt = time.Now().UTC()

	if entry.ErrorMessage != nil && len(*entry.ErrorMessage) > maxErrorMessageLen {
		truncated := (*entry.ErrorMessage)[:maxErrorMessageLen]
		entry.ErrorMessage = &truncated
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrape_log (id, run_id, url, slug, status, http_status, error_message, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.RunID, entry.URL, entry.Slug, entry.Status,
		entry.HTTPStatus, entry.ErrorMessage, entry.ScrapedAt.Format(time.RFC3339))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*cellscan.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, source_file, total_urls,
			success_count, http_error_count, parse_error_count, other_error_count,
			duration_sec
		FROM scrape_runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, cellscan.Errorf(cellscan.ENOTFOUND, "run %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

// FindRuns retrieves all runs, most recent first.
func (s *RunService) FindRuns(ctx context.Context) ([]*cellscan.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, source_file, total_urls,
			success_count, http_error_count, parse_error_count, other_error_count,
			duration_sec
		FROM scrape_runs
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*cellscan.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// FindLogEntries retrieves the log entries for a run in insertion order.
func (s *RunService) FindLogEntries(ctx context.Context, runID string) ([]*cellscan.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, url, slug, status, http_status, error_message, scraped_at
		FROM scrape_log
		WHERE run_id = ?
		ORDER BY scraped_at ASC, rowid ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*cellscan.LogEntry
	for rows.Next() {
		var entry cellscan.LogEntry
		var scrapedAt string

		if err := rows.Scan(&entry.ID, &entry.RunID, &entry.URL, &entry.Slug,
			&entry.Status, &entry.HTTPStatus, &entry.ErrorMessage, &scrapedAt); err != nil {
			return nil, err
		}

		entry.ScrapedAt, err = scanTime("scraped_at", scrapedAt)
		if err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// scanRun scans one scrape_runs row using the given scan function.
func scanRun(scan func(dest ...any) error) (*cellscan.Run, error) {
	var run cellscan.Run
	var startedAt string
	var finishedAt *string
	var durationSec float64

	if err := scan(&run.ID, &startedAt, &finishedAt, &run.SourceFile, &run.TotalURLs,
		&run.SuccessCount, &run.HTTPErrorCount, &run.ParseErrorCount, &run.OtherErrorCount,
		&durationSec); err != nil {
		return nil, err
	}

	var err error
	run.StartedAt, err = scanTime("started_at", startedAt)
	if err != nil {
		return nil, err
	}
	if finishedAt != nil {
		t, err := scanTime("finished_at", *finishedAt)
		if err != nil {
			return nil, err
		}
		run.FinishedAt = &t
	}
	run.Duration = time.Duration(durationSec * float64(time.Second))

	return &run, nil
}
