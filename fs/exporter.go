// Package fs provides file-based input and output: the CSV export of cell
// parameters and the URL list files consumed and produced by discovery.
package fs

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fwojciec/cellscan"
)

// ExportColumns lists the technical parameters included in the CSV export,
// in column order. Deliberately excluded: IDs, URLs, timestamps, raw HTML,
// and the release date, so the file carries only the name and the cell's
// physical and electrical parameters.
var ExportColumns = []string{
	"name",
	"cell_origin",
	"cell_format",
	"dimensions_raw",
	"diameter_mm",
	"height_mm",
	"weight_g",
	"nominal_capacity_ah",
	"c10_capacity_ah",
	"c10_energy_wh",
	"continuous_current_a",
	"peak_current_a",
	"continuous_power_w",
	"peak_power_w",
	"energy_density_wh_kg",
	"energy_density_wh_l",
	"power_density_kw_kg",
	"power_density_kw_l",
	"model_version",
	"soc_min_pct",
	"soc_max_pct",
	"discharge_min_a",
	"charge_max_a",
	"c_rate_min",
	"c_rate_max",
	"voltage_min_v",
	"voltage_max_v",
	"temp_min_c",
	"temp_max_c",
	"mean_voltage_c10_v",
	"mean_voltage_peak_v",
	"eff_resistance_mohm",
	"c_rate_continuous",
	"c_rate_peak",
}

// ExportCSV writes the cells' technical parameters to w as
// semicolon-delimited CSV with a header row. Absent fields become empty
// columns.
func ExportCSV(w io.Writer, cells []*cellscan.Cell) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(ExportColumns); err != nil {
		return err
	}

	for _, c := range cells {
		record := []string{
			str(c.Name),
			str(c.CellOrigin),
			str(c.CellFormat),
			str(c.DimensionsRaw),
			num(c.DiameterMM),
			num(c.HeightMM),
			num(c.WeightG),
			num(c.NominalCapacityAh),
			num(c.C10CapacityAh),
			num(c.C10EnergyWh),
			num(c.ContinuousCurrentA),
			num(c.PeakCurrentA),
			num(c.ContinuousPowerW),
			num(c.PeakPowerW),
			num(c.EnergyDensityWhKg),
			num(c.EnergyDensityWhL),
			num(c.PowerDensityKWKg),
			num(c.PowerDensityKWL),
			str(c.ModelVersion),
			num(c.SoCMinPct),
			num(c.SoCMaxPct),
			num(c.DischargeMinA),
			num(c.ChargeMaxA),
			num(c.CRateMin),
			num(c.CRateMax),
			num(c.VoltageMinV),
			num(c.VoltageMaxV),
			num(c.TempMinC),
			num(c.TempMaxC),
			num(c.MeanVoltageC10V),
			num(c.MeanVoltagePeakV),
			num(c.EffResistanceMOhm),
			num(c.CRateContinuous),
			num(c.CRatePeak),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCellsCSV exports the cells to a file, creating parent directories
// as needed.
func WriteCellsCSV(path string, cells []*cellscan.Cell) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := ExportCSV(f, cells); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}
