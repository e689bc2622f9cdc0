package main

import (
	"fmt"

	"github.com/fwojciec/cellscan"
	"github.com/fwojciec/cellscan/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	cells, err := deps.Cells.FindCells(deps.Ctx, cellscan.CellFilter{SortBy: cellscan.SortBySlug})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cellscan.ErrorMessage(err))
		return err
	}

	if len(cells) == 0 {
		fmt.Fprintln(deps.Stdout, "No cells found. Use 'cellscan scrape' to populate the database.")
		return nil
	}

	if err := fs.WriteCellsCSV(c.Output, cells); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d cells to %s\n", len(cells), c.Output)
	return nil
}
