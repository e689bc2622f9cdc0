package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cellscan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cellscan.CellService = (*CellService)(nil)

// CellService implements cellscan.CellService using SQLite.
type CellService struct {
	db *DB
}

// NewCellService creates a new CellService.
func NewCellService(db *DB) *CellService {
	return &CellService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := []byte{
		byte(h >> 56), byte(h >> 48), byte(h >> 40), byte(h >> 32),
		byte(h >> 24), byte(h >> 16), byte(h >> 8), byte(h),
	}
	return hex.EncodeToString(b)
}

// cellColumns lists every column of the cells table in storage order.
// The first two (id, slug) are never touched by the upsert's update arm:
// a cell's identity is immutable once assigned.
var cellColumns = []string{
	"id", "slug", "name", "detail_url",
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

// cellArgs returns the cell's values in cellColumns order.
func cellArgs(c *cellscan.Cell) []any {
	return []any{
		c.ID, c.Slug, c.Name, c.DetailURL,
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
		c.RawHTML, c.ContentHash, c.ScrapedAt.Format(time.RFC3339),
	}
}

// cellDests returns scan destinations in cellColumns order; scrapedAt
// receives the raw timestamp string for parsing by the caller.
func cellDests(c *cellscan.Cell, scrapedAt *string) []any {
	return []any{
		&c.ID, &c.Slug, &c.Name, &c.DetailURL,
		&c.CellOrigin, &c.CellFormat, &c.DimensionsRaw,
		&c.DiameterMM, &c.HeightMM, &c.WeightG,
		&c.NominalCapacityAh, &c.C10CapacityAh, &c.C10EnergyWh,
		&c.ContinuousCurrentA, &c.PeakCurrentA,
		&c.ContinuousPowerW, &c.PeakPowerW,
		&c.EnergyDensityWhKg, &c.EnergyDensityWhL,
		&c.PowerDensityKWKg, &c.PowerDensityKWL,
		&c.ModelVersion, &c.ModelReleaseDate,
		&c.SoCMinPct, &c.SoCMaxPct,
		&c.DischargeMinA, &c.ChargeMaxA, &c.CRateMin, &c.CRateMax,
		&c.VoltageMinV, &c.VoltageMaxV, &c.TempMinC, &c.TempMaxC,
		&c.MeanVoltageC10V, &c.MeanVoltagePeakV, &c.EffResistanceMOhm,
		&c.CRateContinuous, &c.CRatePeak,
		&c.RawHTML, &c.ContentHash, scrapedAt,
	}
}

// UpsertCell inserts the cell or, when a cell with the same slug exists,
// replaces all of its non-key columns with the new values. Fields that are
// nil on the incoming cell become NULL in storage: an update is a full
// replacement, never a partial merge.
func (s *CellService) UpsertCell(ctx context.Context, cell *cellscan.Cell) error {
	if err := cell.Validate(); err != nil {
		return err
	}

	if cell.ID == "" {
		cell.ID = uuid.New().String()
	}
	cell.ScrapedAt = time.Now().UTC()
	cell.ContentHash = hashContent(cell.RawHTML)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cellColumns)), ", ")

	var set strings.Builder
	for _, col := range cellColumns[2:] {
		if set.Len() > 0 {
			set.WriteString(", ")
		}
		set.WriteString(col)
		set.WriteString(" = excluded.")
		set.WriteString(col)
	}

	query := "INSERT INTO cells (" + strings.Join(cellColumns, ", ") + ") VALUES (" + placeholders + ")" +
		" ON CONFLICT(slug) DO UPDATE SET " + set.String()

	_, err := s.db.ExecContext(ctx, query, cellArgs(cell)...)
	return err
}

// FindCellBySlug retrieves a cell by its slug.
func (s *CellService) FindCellBySlug(ctx context.Context, slug string) (*cellscan.Cell, error) {
	var cell cellscan.Cell
	var scrapedAt string

	query := "SELECT " + strings.Join(cellColumns, ", ") + " FROM cells WHERE slug = ?"
	err := s.db.QueryRowContext(ctx, query, slug).Scan(cellDests(&cell, &scrapedAt)...)
	if err == sql.ErrNoRows {
		return nil, cellscan.Errorf(cellscan.ENOTFOUND, "cell %q not found", slug)
	}
	if err != nil {
		return nil, err
	}

	cell.ScrapedAt, err = scanTime("scraped_at", scrapedAt)
	if err != nil {
		return nil, err
	}

	return &cell, nil
}

// FindCells retrieves cells matching the filter.
func (s *CellService) FindCells(ctx context.Context, filter cellscan.CellFilter) ([]*cellscan.Cell, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + strings.Join(cellColumns, ", ") + " FROM cells WHERE 1=1")

	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}
	if filter.Format != nil {
		query.WriteString(" AND cell_format = ?")
		args = append(args, *filter.Format)
	}

	switch filter.SortBy {
	case cellscan.SortByScrapedAt:
		query.WriteString(" ORDER BY scraped_at DESC")
	default:
		query.WriteString(" ORDER BY slug ASC")
	}

	query.WriteString(formatLimitOffset(filter.Limit, filter.Offset))

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []*cellscan.Cell
	for rows.Next() {
		var cell cellscan.Cell
		var scrapedAt string

		if err := rows.Scan(cellDests(&cell, &scrapedAt)...); err != nil {
			return nil, err
		}

		cell.ScrapedAt, err = scanTime("scraped_at", scrapedAt)
		if err != nil {
			return nil, err
		}

		cells = append(cells, &cell)
	}

	return cells, rows.Err()
}
