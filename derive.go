package cellscan

// Derive computes the secondary metrics of a cell from its already
// extracted primary fields. Each metric is computed only when every input
// is present and its denominator nonzero; anything else leaves the metric
// nil. Derive never reads document text and is safe to call on a partially
// populated record.
func Derive(c *Cell) {
	c.MeanVoltageC10V = ratio(c.C10EnergyWh, c.C10CapacityAh)
	c.MeanVoltagePeakV = ratio(c.PeakPowerW, c.PeakCurrentA)

	// The effective internal resistance estimate is only meaningful when
	// the C/10 mean voltage exceeds the peak-load mean voltage. A
	// non-positive difference is treated as non-physical and dropped
	// rather than reported as a negative resistance.
	c.EffResistanceMOhm = nil
	if c.MeanVoltageC10V != nil && c.MeanVoltagePeakV != nil &&
		c.PeakCurrentA != nil && *c.PeakCurrentA != 0 {
		if dv := *c.MeanVoltageC10V - *c.MeanVoltagePeakV; dv > 0 {
			r := 1000.0 * dv / *c.PeakCurrentA
			c.EffResistanceMOhm = &r
		}
	}

	c.CRateContinuous = ratio(c.ContinuousCurrentA, c.NominalCapacityAh)
	c.CRatePeak = ratio(c.PeakCurrentA, c.NominalCapacityAh)
}

// ratio returns num/den, or nil when either operand is missing or the
// denominator is zero.
func ratio(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	v := *num / *den
	return &v
}
