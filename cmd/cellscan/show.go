package main

import (
	"fmt"

	"github.com/fwojciec/cellscan"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	cell, err := deps.Cells.FindCellBySlug(deps.Ctx, c.Slug)
	if err != nil {
		if cellscan.ErrorCode(err) == cellscan.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: cell %q not found. Use 'cellscan export' to see stored cells.\n", c.Slug)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", cellscan.ErrorMessage(err))
		return err
	}

	name := cell.Slug
	if cell.Name != nil {
		name = *cell.Name
	}
	fmt.Fprintf(deps.Stdout, "%s (%s)\n", name, cell.Slug)
	fmt.Fprintf(deps.Stdout, "  URL:        %s\n", cell.DetailURL)
	fmt.Fprintf(deps.Stdout, "  Scraped at: %s\n", cell.ScrapedAt.Format("2006-01-02 15:04:05"))

	printStr := func(label string, v *string) {
		if v != nil {
			fmt.Fprintf(deps.Stdout, "  %-28s %s\n", label, *v)
		}
	}
	printNum := func(label string, v *float64, unit string) {
		if v != nil {
			fmt.Fprintf(deps.Stdout, "  %-28s %g %s\n", label, *v, unit)
		}
	}

	printStr("Origin:", cell.CellOrigin)
	printStr("Format:", cell.CellFormat)
	printStr("Dimensions:", cell.DimensionsRaw)
	printNum("Diameter:", cell.DiameterMM, "mm")
	printNum("Height:", cell.HeightMM, "mm")
	printNum("Weight:", cell.WeightG, "g")
	printNum("Nominal capacity:", cell.NominalCapacityAh, "Ah")
	printNum("C/10 capacity:", cell.C10CapacityAh, "Ah")
	printNum("C/10 energy:", cell.C10EnergyWh, "Wh")
	printNum("Continuous current:", cell.ContinuousCurrentA, "A")
	printNum("Peak current:", cell.PeakCurrentA, "A")
	printNum("Continuous power:", cell.ContinuousPowerW, "W")
	printNum("Peak power:", cell.PeakPowerW, "W")
	printNum("Energy density:", cell.EnergyDensityWhKg, "Wh/kg")
	printNum("Energy density (vol):", cell.EnergyDensityWhL, "Wh/l")
	printNum("Power density:", cell.PowerDensityKWKg, "kW/kg")
	printNum("Power density (vol):", cell.PowerDensityKWL, "kW/l")
	printStr("Model version:", cell.ModelVersion)
	printStr("Model release date:", cell.ModelReleaseDate)
	printNum("SoC min:", cell.SoCMinPct, "%")
	printNum("SoC max:", cell.SoCMaxPct, "%")
	printNum("Discharge limit:", cell.DischargeMinA, "A")
	printNum("Charge limit:", cell.ChargeMaxA, "A")
	printNum("C-rate min:", cell.CRateMin, "C")
	printNum("C-rate max:", cell.CRateMax, "C")
	printNum("Voltage min:", cell.VoltageMinV, "V")
	printNum("Voltage max:", cell.VoltageMaxV, "V")
	printNum("Temperature min:", cell.TempMinC, "°C")
	printNum("Temperature max:", cell.TempMaxC, "°C")
	printNum("Mean voltage (C/10):", cell.MeanVoltageC10V, "V")
	printNum("Mean voltage (peak):", cell.MeanVoltagePeakV, "V")
	printNum("Effective resistance:", cell.EffResistanceMOhm, "mOhm")
	printNum("Continuous C-rate:", cell.CRateContinuous, "C")
	printNum("Peak C-rate:", cell.CRatePeak, "C")

	return nil
}
