package cellscan

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Cell is the structured record extracted from one product detail page.
//
// Every field beyond the identity (Slug, DetailURL) is optional: a pattern
// that does not match, a section that is missing, or a numeral that does not
// parse leaves the field nil. Fields fail independently; extraction of one
// never requires another to succeed.
type Cell struct {
	ID        string  `json:"id"`
	Slug      string  `json:"slug"`
	Name      *string `json:"name"`
	DetailURL string  `json:"detailUrl"`

	// Overview: origin, format, physical dimensions.
	CellOrigin    *string  `json:"cellOrigin"`
	CellFormat    *string  `json:"cellFormat"`
	DimensionsRaw *string  `json:"dimensionsRaw"`
	DiameterMM    *float64 `json:"diameterMm"`
	HeightMM      *float64 `json:"heightMm"`
	WeightG       *float64 `json:"weightG"`

	// Ratings from the capacity/current/energy/power sections.
	NominalCapacityAh  *float64 `json:"nominalCapacityAh"`
	C10CapacityAh      *float64 `json:"c10CapacityAh"`
	C10EnergyWh        *float64 `json:"c10EnergyWh"`
	ContinuousCurrentA *float64 `json:"continuousCurrentA"`
	PeakCurrentA       *float64 `json:"peakCurrentA"`
	ContinuousPowerW   *float64 `json:"continuousPowerW"`
	PeakPowerW         *float64 `json:"peakPowerW"`

	// Density sections.
	EnergyDensityWhKg *float64 `json:"energyDensityWhKg"`
	EnergyDensityWhL  *float64 `json:"energyDensityWhL"`
	PowerDensityKWKg  *float64 `json:"powerDensityKwKg"`
	PowerDensityKWL   *float64 `json:"powerDensityKwL"`

	// Model metadata.
	ModelVersion     *string `json:"modelVersion"`
	ModelReleaseDate *string `json:"modelReleaseDate"`

	// Operating envelope ranges.
	SoCMinPct     *float64 `json:"socMinPct"`
	SoCMaxPct     *float64 `json:"socMaxPct"`
	DischargeMinA *float64 `json:"dischargeMinA"`
	ChargeMaxA    *float64 `json:"chargeMaxA"`
	CRateMin      *float64 `json:"cRateMin"`
	CRateMax      *float64 `json:"cRateMax"`
	VoltageMinV   *float64 `json:"voltageMinV"`
	VoltageMaxV   *float64 `json:"voltageMaxV"`
	TempMinC      *float64 `json:"tempMinC"`
	TempMaxC      *float64 `json:"tempMaxC"`

	// Derived metrics, computed by Derive from the fields above.
	// Never extracted from document text.
	MeanVoltageC10V   *float64 `json:"meanVoltageC10V"`
	MeanVoltagePeakV  *float64 `json:"meanVoltagePeakV"`
	EffResistanceMOhm *float64 `json:"effResistanceMOhm"`
	CRateContinuous   *float64 `json:"cRateContinuous"`
	CRatePeak         *float64 `json:"cRatePeak"`

	// RawHTML is the full source of the page, kept for audit and re-parsing.
	RawHTML     string    `json:"rawHtml"`
	ContentHash string    `json:"contentHash"`
	ScrapedAt   time.Time `json:"scrapedAt"`
}

// Validate returns an error if the cell is missing identity fields.
func (c *Cell) Validate() error {
	if c.Slug == "" {
		return Errorf(EINVALID, "cell slug required")
	}
	if c.DetailURL == "" {
		return Errorf(EINVALID, "cell detail URL required")
	}
	return nil
}

// SlugFromURL derives a cell's natural key from its detail URL: the last
// path segment, with any trailing slash ignored.
// Returns "" when the URL has no usable path.
func SlugFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.TrimSuffix(u.Path, "/")
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		return path[idx+1:]
	}
	return path
}

// Extractor turns a rendered product page into a Cell record.
//
// Implementations return an EUNPROCESSABLE error only when neither a name
// nor a slug can be derived from the document; any individual field that
// fails to extract is simply left nil.
type Extractor interface {
	Extract(html, detailURL string) (*Cell, error)
}

// CellService represents a service for persisting and querying cells.
type CellService interface {
	// UpsertCell inserts the cell or, when a cell with the same slug
	// exists, replaces all of its non-key fields.
	UpsertCell(ctx context.Context, cell *Cell) error

	// FindCellBySlug retrieves a cell by its slug.
	// Returns ENOTFOUND if no such cell exists.
	FindCellBySlug(ctx context.Context, slug string) (*Cell, error)

	// FindCells retrieves cells matching the filter.
	FindCells(ctx context.Context, filter CellFilter) ([]*Cell, error)
}

// SortOrder represents the sort order for cell queries.
type SortOrder string

// SortOrder constants for CellFilter.
const (
	SortBySlug      SortOrder = "slug"
	SortByScrapedAt SortOrder = "scraped_at"
)

// CellFilter represents a filter for FindCells.
type CellFilter struct {
	Slug   *string `json:"slug"`
	Format *string `json:"format"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}
