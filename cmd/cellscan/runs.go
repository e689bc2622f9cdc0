package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/cellscan"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if c.Log != "" {
		return c.printLog(deps, c.Log)
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cellscan.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'cellscan scrape' to start one.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  total=%d ok=%d http=%d parse=%d other=%d  %s\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.SourceFile,
			run.TotalURLs, run.SuccessCount,
			run.HTTPErrorCount, run.ParseErrorCount, run.OtherErrorCount,
			run.Duration.Round(time.Second))
	}

	return nil
}

func (c *RunsCmd) printLog(deps *Dependencies, runID string) error {
	if _, err := deps.Runs.FindRunByID(deps.Ctx, runID); err != nil {
		if cellscan.ErrorCode(err) == cellscan.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'cellscan runs' to list runs.\n", runID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", cellscan.ErrorMessage(err))
		return err
	}

	entries, err := deps.Runs.FindLogEntries(deps.Ctx, runID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cellscan.ErrorMessage(err))
		return err
	}

	for _, e := range entries {
		line := fmt.Sprintf("%-11s  %s", e.Status, e.URL)
		if e.HTTPStatus != nil {
			line += fmt.Sprintf("  [%d]", *e.HTTPStatus)
		}
		if e.ErrorMessage != nil {
			line += "  " + *e.ErrorMessage
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	return nil
}
