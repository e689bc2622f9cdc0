package main

import (
	"fmt"

	"github.com/fwojciec/cellscan"
	"github.com/fwojciec/cellscan/postgres"
)

// Run executes the upload command.
func (c *UploadCmd) Run(deps *Dependencies) error {
	if c.DSN == "" {
		fmt.Fprintln(deps.Stderr, "CELLSCAN_PG_DSN environment variable not set and no --dsn given")
		return fmt.Errorf("no Postgres connection string. Set CELLSCAN_PG_DSN or pass --dsn")
	}

	cells, err := deps.Cells.FindCells(deps.Ctx, cellscan.CellFilter{SortBy: cellscan.SortBySlug})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cellscan.ErrorMessage(err))
		return err
	}
	if len(cells) == 0 {
		fmt.Fprintln(deps.Stdout, "No cells found. Use 'cellscan scrape' to populate the database.")
		return nil
	}

	pg, err := postgres.Open(deps.Ctx, c.DSN)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Check the connection string and that Postgres is reachable")
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	defer pg.Close()

	uploader := postgres.NewUploader(pg)
	recreate := c.Mode == postgres.ModeRecreate

	if err := uploader.EnsureSchema(deps.Ctx, recreate); err != nil {
		fmt.Fprintf(deps.Stderr, "error preparing schema: %v\n", err)
		return err
	}

	count, err := uploader.UpsertCells(deps.Ctx, cells)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error uploading: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Uploaded %d cells\n", count)

	// A recreated schema has no run history, so carry it over.
	if recreate {
		runs, err := deps.Runs.FindRuns(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cellscan.ErrorMessage(err))
			return err
		}
		var entries []*cellscan.LogEntry
		for _, run := range runs {
			logs, err := deps.Runs.FindLogEntries(deps.Ctx, run.ID)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", cellscan.ErrorMessage(err))
				return err
			}
			entries = append(entries, logs...)
		}
		if err := uploader.ImportRuns(deps.Ctx, runs, entries); err != nil {
			fmt.Fprintf(deps.Stderr, "error importing runs: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Imported %d runs with %d log entries\n", len(runs), len(entries))
	}

	return nil
}
