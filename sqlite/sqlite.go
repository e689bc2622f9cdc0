// Package sqlite provides SQLite-based storage implementations for
// cellscan services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait up to 5 seconds on lock contention instead of failing with
	// "database is locked" immediately.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode for file-based databases. Not supported in-memory.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS cells (
			id TEXT PRIMARY KEY,
			slug TEXT UNIQUE NOT NULL,
			name TEXT,
			detail_url TEXT NOT NULL,

			cell_origin TEXT,
			cell_format TEXT,
			dimensions_raw TEXT,
			diameter_mm REAL,
			height_mm REAL,
			weight_g REAL,

			nominal_capacity_ah REAL,
			c10_capacity_ah REAL,
			c10_energy_wh REAL,
			continuous_current_a REAL,
			peak_current_a REAL,
			continuous_power_w REAL,
			peak_power_w REAL,

			energy_density_wh_kg REAL,
			energy_density_wh_l REAL,
			power_density_kw_kg REAL,
			power_density_kw_l REAL,

			model_version TEXT,
			model_release_date TEXT,

			soc_min_pct REAL,
			soc_max_pct REAL,
			discharge_min_a REAL,
			charge_max_a REAL,
			c_rate_min REAL,
			c_rate_max REAL,
			voltage_min_v REAL,
			voltage_max_v REAL,
			temp_min_c REAL,
			temp_max_c REAL,

			mean_voltage_c10_v REAL,
			mean_voltage_peak_v REAL,
			eff_resistance_mohm REAL,
			c_rate_continuous REAL,
			c_rate_peak REAL,

			raw_html TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			scraped_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS scrape_runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			source_file TEXT NOT NULL DEFAULT '',
			total_urls INTEGER NOT NULL DEFAULT 0,
			success_count INTEGER NOT NULL DEFAULT 0,
			http_error_count INTEGER NOT NULL DEFAULT 0,
			parse_error_count INTEGER NOT NULL DEFAULT 0,
			other_error_count INTEGER NOT NULL DEFAULT 0,
			duration_sec REAL NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS scrape_log (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES scrape_runs(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			slug TEXT,
			status TEXT NOT NULL,
			http_status INTEGER,
			error_message TEXT,
			scraped_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_cells_slug ON cells(slug);
		CREATE INDEX IF NOT EXISTS idx_scrape_log_run_id ON scrape_log(run_id);
	`

	_, err := db.db.Exec(schema)
	return err
}
