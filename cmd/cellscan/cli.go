package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/cellscan"
	"github.com/fwojciec/cellscan/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	DB      *sqlite.DB
	Cells   cellscan.CellService
	Runs    cellscan.RunService
	Fetcher cellscan.Fetcher
	Limiter cellscan.Limiter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool    `short:"v" help:"Enable debug logging"`
	RPS     float64 `default:"1.0" help:"Requests per second per domain"`

	Discover DiscoverCmd `cmd:"" help:"Walk the cell explorer listing and write the detail URLs to a file"`
	Scrape   ScrapeCmd   `cmd:"" help:"Scrape cell detail pages from a URL file into the database"`
	Export   ExportCmd   `cmd:"" help:"Export cells from the database to a semicolon-delimited CSV file"`
	Upload   UploadCmd   `cmd:"" help:"Upload cells from the database to Postgres"`
	Show     ShowCmd     `cmd:"" help:"Show the stored record for one cell"`
	Runs     RunsCmd     `cmd:"" help:"List scrape runs and their outcome counters"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	Output   string `short:"o" default:"cell_urls.txt" help:"Output URL file"`
	BaseURL  string `default:"https://www.batemo.com/products/batemo-cell-explorer/" help:"Listing base URL"`
	Mode     string `default:"normal" help:"Explorer mode query parameter"`
	View     string `default:"power-vs-energy-gravimetric" help:"Explorer view query parameter"`
	MaxPages int    `default:"200" help:"Pagination safety cap"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLFile     string `arg:"" help:"File with one detail URL per line"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Output string `short:"o" default:"cells.csv" help:"Output CSV file"`
}

// UploadCmd is the "upload" subcommand.
type UploadCmd struct {
	DSN  string `env:"CELLSCAN_PG_DSN" help:"Postgres connection string"`
	Mode string `default:"upsert" enum:"upsert,recreate" help:"upsert merges by slug; recreate rebuilds the schema and re-imports run history"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Slug string `arg:"" help:"Cell slug"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Log string `help:"Show the per-URL log for the given run ID"`
}
