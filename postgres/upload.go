package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/cellscan"
	"github.com/jackc/pgx/v5"
)

// Upload modes. Upsert merges cells into the existing warehouse schema by
// slug; recreate drops the schema first and re-imports run history as well.
const (
	ModeUpsert   = "upsert"
	ModeRecreate = "recreate"
)

// Uploader mirrors the local store into the warehouse's cellscan schema.
type Uploader struct {
	db *DB
}

// NewUploader creates a new Uploader.
func NewUploader(db *DB) *Uploader {
	return &Uploader{db: db}
}

// cellColumns lists the warehouse cells columns in upload order.
// slug leads because it is the conflict key.
var cellColumns = []string{
	"slug", "id", "name", "detail_url",
	"cell_origin", "cell_format", "dimensions_raw",
	"diameter_mm", "height_mm", "weight_g",
	"nominal_capacity_ah", "c10_capacity_ah", "c10_energy_wh",
	"continuous_current_a", "peak_current_a",
	"continuous_power_w", "peak_power_w",
	"energy_density_wh_kg", "energy_density_wh_l",
	"power_density_kw_kg", "power_density_kw_l",
	"model_version", "model_release_date",
	"soc_min_pct", "soc_max_pct",
	"discharge_min_a", "charge_max_a", "c_rate_min", "c_rate_max",
	"voltage_min_v", "voltage_max_v", "temp_min_c", "temp_max_c",
	"mean_voltage_c10_v", "mean_voltage_peak_v", "eff_resistance_mohm",
	"c_rate_continuous", "c_rate_peak",
	"raw_html", "content_hash", "scraped_at",
}

// UpsertCellsSQL builds the cells upsert statement: insert with positional
// parameters, and on slug conflict replace every non-key column.
func UpsertCellsSQL() string {
	placeholders := make([]string, len(cellColumns))
	for i := range cellColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	var set strings.Builder
	for _, col := range cellColumns[2:] {
		if set.Len() > 0 {
			set.WriteString(", ")
		}
		set.WriteString(col)
		set.WriteString(" = EXCLUDED.")
		set.WriteString(col)
	}

	return "INSERT INTO cellscan.cells (" + strings.Join(cellColumns, ", ") + ")" +
		" VALUES (" + strings.Join(placeholders, ", ") + ")" +
		" ON CONFLICT (slug) DO UPDATE SET " + set.String()
}

// cellArgs returns the cell's values in cellColumns order.
func cellArgs(c *cellscan.Cell) []any {
	return []any{
		c.Slug, c.ID, c.Name, c.DetailURL,
		c.CellOrigin, c.CellFormat, c.DimensionsRaw,
		c.DiameterMM, c.HeightMM, c.WeightG,
		c.NominalCapacityAh, c.C10CapacityAh, c.C10EnergyWh,
		c.ContinuousCurrentA, c.PeakCurrentA,
		c.ContinuousPowerW, c.PeakPowerW,
		c.EnergyDensityWhKg, c.EnergyDensityWhL,
		c.PowerDensityKWKg, c.PowerDensityKWL,
		c.ModelVersion, c.ModelReleaseDate,
		c.SoCMinPct, c.SoCMaxPct,
		c.DischargeMinA, c.ChargeMaxA, c.CRateMin, c.CRateMax,
		c.VoltageMinV, c.VoltageMaxV, c.TempMinC, c.TempMaxC,
		c.MeanVoltageC10V, c.MeanVoltagePeakV, c.EffResistanceMOhm,
		c.CRateContinuous, c.CRatePeak,
		c.RawHTML, c.ContentHash, c.ScrapedAt,
	}
}

// EnsureSchema creates the warehouse schema and tables if they don't
// exist. With recreate, the schema is dropped first.
func (u *Uploader) EnsureSchema(ctx context.Context, recreate bool) error {
	if recreate {
		if _, err := u.db.pool.Exec(ctx, "DROP SCHEMA IF EXISTS cellscan CASCADE"); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	statements := []string{
		"CREATE SCHEMA IF NOT EXISTS cellscan",
		`CREATE TABLE IF NOT EXISTS cellscan.cells (
			slug TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			name TEXT,
			detail_url TEXT NOT NULL,

			cell_origin TEXT,
			cell_format TEXT,
			dimensions_raw TEXT,
			diameter_mm DOUBLE PRECISION,
			height_mm DOUBLE PRECISION,
			weight_g DOUBLE PRECISION,

			nominal_capacity_ah DOUBLE PRECISION,
			c10_capacity_ah DOUBLE PRECISION,
			c10_energy_wh DOUBLE PRECISION,
			continuous_current_a DOUBLE PRECISION,
			peak_current_a DOUBLE PRECISION,
			continuous_power_w DOUBLE PRECISION,
			peak_power_w DOUBLE PRECISION,

			energy_density_wh_kg DOUBLE PRECISION,
			energy_density_wh_l DOUBLE PRECISION,
			power_density_kw_kg DOUBLE PRECISION,
			power_density_kw_l DOUBLE PRECISION,

			model_version TEXT,
			model_release_date TEXT,

			soc_min_pct DOUBLE PRECISION,
			soc_max_pct DOUBLE PRECISION,
			discharge_min_a DOUBLE PRECISION,
			charge_max_a DOUBLE PRECISION,
			c_rate_min DOUBLE PRECISION,
			c_rate_max DOUBLE PRECISION,
			voltage_min_v DOUBLE PRECISION,
			voltage_max_v DOUBLE PRECISION,
			temp_min_c DOUBLE PRECISION,
			temp_max_c DOUBLE PRECISION,

			mean_voltage_c10_v DOUBLE PRECISION,
			mean_voltage_peak_v DOUBLE PRECISION,
			eff_resistance_mohm DOUBLE PRECISION,
			c_rate_continuous DOUBLE PRECISION,
			c_rate_peak DOUBLE PRECISION,

			raw_html TEXT,
			content_hash TEXT,
			scraped_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS cellscan.scrape_runs (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ,
			source_file TEXT,
			total_urls INTEGER,
			success_count INTEGER,
			http_error_count INTEGER,
			parse_error_count INTEGER,
			other_error_count INTEGER,
			duration_sec DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS cellscan.scrape_log (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES cellscan.scrape_runs(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			slug TEXT,
			status TEXT NOT NULL,
			http_status INTEGER,
			error_message TEXT,
			scraped_at TIMESTAMPTZ NOT NULL
		)`,
		"CREATE INDEX IF NOT EXISTS idx_scrape_log_run_id ON cellscan.scrape_log(run_id)",
	}

	for _, stmt := range statements {
		if _, err := u.db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	return nil
}

// UpsertCells uploads all cells in one transaction, merging by slug.
// Returns the number of cells written.
func (u *Uploader) UpsertCells(ctx context.Context, cells []*cellscan.Cell) (int, error) {
	query := UpsertCellsSQL()

	tx, err := u.db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, cell := range cells {
		batch.Queue(query, cellArgs(cell)...)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("failed to upsert cells: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return len(cells), nil
}

// ImportRuns replaces the warehouse's run history with the given runs and
// log entries. Run IDs are stable UUIDs, so log rows keep their foreign
// keys without remapping. Intended for recreate mode, where the schema was
// just rebuilt empty.
func (u *Uploader) ImportRuns(ctx context.Context, runs []*cellscan.Run, entries []*cellscan.LogEntry) error {
	tx, err := u.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, run := range runs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO cellscan.scrape_runs (
				id, started_at, finished_at, source_file, total_urls,
				success_count, http_error_count, parse_error_count, other_error_count,
				duration_sec
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, run.ID, run.StartedAt, run.FinishedAt, run.SourceFile, run.TotalURLs,
			run.SuccessCount, run.HTTPErrorCount, run.ParseErrorCount, run.OtherErrorCount,
			run.Duration.Seconds()); err != nil {
			return fmt.Errorf("failed to import run %s: %w", run.ID, err)
		}
	}

	for _, entry := range entries {
		if _, err := tx.Exec(ctx, `
			INSERT INTO cellscan.scrape_log (
				id, run_id, url, slug, status, http_status, error_message, scraped_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, entry.ID, entry.RunID, entry.URL, entry.Slug, entry.Status,
			entry.HTTPStatus, entry.ErrorMessage, entry.ScrapedAt); err != nil {
			return fmt.Errorf("failed to import log entry %s: %w", entry.ID, err)
		}
	}

	return tx.Commit(ctx)
}
