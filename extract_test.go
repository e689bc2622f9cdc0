package cellscan_test

import (
	"testing"

	"github.com/fwojciec/cellscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBlock(t *testing.T) {
	t.Parallel()

	t.Run("cuts at the nearest following label", func(t *testing.T) {
		t.Parallel()

		text := "Specs Capacity nominal 5 Ah Current continuous 10 A"

		block := cellscan.ExtractBlock(text, "Capacity", []string{"Current"})

		require.NotNil(t, block)
		assert.Equal(t, " nominal 5 Ah ", *block)
	})

	t.Run("extends to end of text with no next labels", func(t *testing.T) {
		t.Parallel()

		text := "Specs Capacity nominal 5 Ah"

		block := cellscan.ExtractBlock(text, "Capacity", nil)

		require.NotNil(t, block)
		assert.Equal(t, " nominal 5 Ah", *block)
	})

	t.Run("extends to end of text when no next label occurs", func(t *testing.T) {
		t.Parallel()

		text := "Specs Capacity nominal 5 Ah"

		block := cellscan.ExtractBlock(text, "Capacity", []string{"Current", "Energy"})

		require.NotNil(t, block)
		assert.Equal(t, " nominal 5 Ah", *block)
	})

	t.Run("picks the nearest of several next labels", func(t *testing.T) {
		t.Parallel()

		text := "Capacity nominal 5 Ah Energy C/10 18 Wh Current peak 90 A"

		block := cellscan.ExtractBlock(text, "Capacity", []string{"Current", "Energy"})

		require.NotNil(t, block)
		assert.Equal(t, " nominal 5 Ah ", *block)
	})

	t.Run("returns nil when the start label is absent", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, cellscan.ExtractBlock("nothing here", "Capacity", nil))
	})
}

func TestSection(t *testing.T) {
	t.Parallel()

	t.Run("uses the declared successor ordering", func(t *testing.T) {
		t.Parallel()

		text := "Capacity nominal 4.9 Ah C/10 5.2 Ah Current continuous 35 A peak 90 A Energy C/10 18.6 Wh"

		capacity := cellscan.Section(text, "Capacity")
		current := cellscan.Section(text, "Current")
		energy := cellscan.Section(text, "Energy")

		require.NotNil(t, capacity)
		assert.Equal(t, " nominal 4.9 Ah C/10 5.2 Ah", *capacity)
		require.NotNil(t, current)
		assert.Equal(t, " continuous 35 A peak 90 A", *current)
		require.NotNil(t, energy)
		assert.Equal(t, " C/10 18.6 Wh", *energy)
	})

	t.Run("density sections do not swallow each other", func(t *testing.T) {
		t.Parallel()

		text := "Energy Density gravimetric 260 Wh/kg volumetric 700 Wh/l Power Density gravimetric 4.5 kW/kg volumetric 12 kW/l Batemo Cell Model Version 3.1"

		energy := cellscan.Section(text, "Energy Density")
		power := cellscan.Section(text, "Power Density")

		require.NotNil(t, energy)
		assert.Equal(t, " gravimetric 260 Wh/kg volumetric 700 Wh/l", *energy)
		require.NotNil(t, power)
		assert.Equal(t, " gravimetric 4.5 kW/kg volumetric 12 kW/l", *power)
	})

	t.Run("every successor table entry has known successors only", func(t *testing.T) {
		t.Parallel()

		known := map[string]bool{
			" Current": true, " Energy": true, " Power": true,
			" Energy Density": true, " Power Density": true,
			" Batemo Cell Model Version": true, " Batemo Cell Model": true,
			"##": true,
		}
		for section, successors := range cellscan.SectionSuccessors {
			assert.NotEmpty(t, successors, "section %q has no successors", section)
			for _, s := range successors {
				assert.True(t, known[s], "section %q lists unknown successor %q", section, s)
			}
		}
	})
}

func TestFirstNumber(t *testing.T) {
	t.Parallel()

	t.Run("extracts the captured number", func(t *testing.T) {
		t.Parallel()

		block := " nominal 4.9 Ah C/10 5.2 Ah"

		got := cellscan.FirstNumber(&block, cellscan.PatNominalCapacity)

		require.NotNil(t, got)
		assert.Equal(t, 4.9, *got)
	})

	t.Run("distinguishes patterns within one block", func(t *testing.T) {
		t.Parallel()

		block := " nominal 4.9 Ah C/10 5.2 Ah"

		c10 := cellscan.FirstNumber(&block, cellscan.PatC10Capacity)

		require.NotNil(t, c10)
		assert.Equal(t, 5.2, *c10)
	})

	t.Run("returns nil for a nil block", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, cellscan.FirstNumber(nil, cellscan.PatNominalCapacity))
	})

	t.Run("returns nil when the pattern does not match", func(t *testing.T) {
		t.Parallel()

		block := " continuous 35 A"

		assert.Nil(t, cellscan.FirstNumber(&block, cellscan.PatNominalCapacity))
	})

	t.Run("density patterns require their compound units", func(t *testing.T) {
		t.Parallel()

		block := " gravimetric 260 Wh/kg volumetric 700 Wh/l"

		grav := cellscan.FirstNumber(&block, cellscan.PatGravimetricEnergy)
		vol := cellscan.FirstNumber(&block, cellscan.PatVolumetricEnergy)

		require.NotNil(t, grav)
		assert.Equal(t, 260.0, *grav)
		require.NotNil(t, vol)
		assert.Equal(t, 700.0, *vol)
	})
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	t.Run("parses an ellipsis-separated range with unit", func(t *testing.T) {
		t.Parallel()

		lo, hi := cellscan.ParseRange("State of Charge Range 0 … 100 %", "State of Charge Range", "%")

		require.NotNil(t, lo)
		require.NotNil(t, hi)
		assert.Equal(t, 0.0, *lo)
		assert.Equal(t, 100.0, *hi)
	})

	t.Run("accepts period runs as separator", func(t *testing.T) {
		t.Parallel()

		lo, hi := cellscan.ParseRange("Voltage Range 2.5 ... 4.2 V", "Voltage Range", "V")

		require.NotNil(t, lo)
		require.NotNil(t, hi)
		assert.Equal(t, 2.5, *lo)
		assert.Equal(t, 4.2, *hi)
	})

	t.Run("parses negative bounds", func(t *testing.T) {
		t.Parallel()

		lo, hi := cellscan.ParseRange("Temperature Range -30 … 60 °C", "Temperature Range", "°C")

		require.NotNil(t, lo)
		require.NotNil(t, hi)
		assert.Equal(t, -30.0, *lo)
		assert.Equal(t, 60.0, *hi)
	})

	t.Run("tolerates word fragments after the label prefix", func(t *testing.T) {
		t.Parallel()

		// Soft hyphens inside the rendered heading.
		lo, hi := cellscan.ParseRange("Temper­a­ture Range -20 … 80 °C", "Temper", "°C")

		require.NotNil(t, lo)
		require.NotNil(t, hi)
		assert.Equal(t, -20.0, *lo)
		assert.Equal(t, 80.0, *hi)
	})

	t.Run("returns nil pair when the label is absent", func(t *testing.T) {
		t.Parallel()

		lo, hi := cellscan.ParseRange("no ranges here", "Voltage Range", "V")

		assert.Nil(t, lo)
		assert.Nil(t, hi)
	})

	t.Run("returns nil pair when the unit does not follow", func(t *testing.T) {
		t.Parallel()

		lo, hi := cellscan.ParseRange("Voltage Range 2.5 … 4.2", "Voltage Range", "V")

		assert.Nil(t, lo)
		assert.Nil(t, hi)
	})
}

func TestParseCurrentWindow(t *testing.T) {
	t.Parallel()

	t.Run("parses both halves of the compound line", func(t *testing.T) {
		t.Parallel()

		text := "Operating Window -90 A discharge … 12 A charge (-30 C … 4 C)"

		dMin, cMax, crMin, crMax := cellscan.ParseCurrentWindow(text)

		require.NotNil(t, dMin)
		require.NotNil(t, cMax)
		require.NotNil(t, crMin)
		require.NotNil(t, crMax)
		assert.Equal(t, -90.0, *dMin)
		assert.Equal(t, 12.0, *cMax)
		assert.Equal(t, -30.0, *crMin)
		assert.Equal(t, 4.0, *crMax)
	})

	t.Run("ampere pair succeeds without the C-rate parenthesis", func(t *testing.T) {
		t.Parallel()

		text := "-90 A discharge … 12 A charge"

		dMin, cMax, crMin, crMax := cellscan.ParseCurrentWindow(text)

		require.NotNil(t, dMin)
		require.NotNil(t, cMax)
		assert.Equal(t, -90.0, *dMin)
		assert.Equal(t, 12.0, *cMax)
		assert.Nil(t, crMin)
		assert.Nil(t, crMax)
	})

	t.Run("C-rate pair succeeds without the ampere line", func(t *testing.T) {
		t.Parallel()

		text := "(-3 C … 1 C)"

		dMin, cMax, crMin, crMax := cellscan.ParseCurrentWindow(text)

		assert.Nil(t, dMin)
		assert.Nil(t, cMax)
		require.NotNil(t, crMin)
		require.NotNil(t, crMax)
		assert.Equal(t, -3.0, *crMin)
		assert.Equal(t, 1.0, *crMax)
	})

	t.Run("returns all nil when neither half matches", func(t *testing.T) {
		t.Parallel()

		dMin, cMax, crMin, crMax := cellscan.ParseCurrentWindow("nothing useful")

		assert.Nil(t, dMin)
		assert.Nil(t, cMax)
		assert.Nil(t, crMin)
		assert.Nil(t, crMax)
	})
}

func TestParseDimensions(t *testing.T) {
	t.Parallel()

	t.Run("splits diameter and height on x", func(t *testing.T) {
		t.Parallel()

		d, h := cellscan.ParseDimensions("18.3 x 65 mm")

		require.NotNil(t, d)
		require.NotNil(t, h)
		assert.Equal(t, 18.3, *d)
		assert.Equal(t, 65.0, *h)
	})

	t.Run("accepts the multiplication sign", func(t *testing.T) {
		t.Parallel()

		d, h := cellscan.ParseDimensions("21×70 mm")

		require.NotNil(t, d)
		require.NotNil(t, h)
		assert.Equal(t, 21.0, *d)
		assert.Equal(t, 70.0, *h)
	})

	t.Run("returns nil pair for unsplittable input", func(t *testing.T) {
		t.Parallel()

		d, h := cellscan.ParseDimensions("pouchâteau")

		assert.Nil(t, d)
		assert.Nil(t, h)
	})
}

func TestParseWeight(t *testing.T) {
	t.Parallel()

	t.Run("extracts the gram-qualified number", func(t *testing.T) {
		t.Parallel()

		got := cellscan.ParseWeight("Weight 46.6 g")

		require.NotNil(t, got)
		assert.Equal(t, 46.6, *got)
	})

	t.Run("falls back to parsing the whole string", func(t *testing.T) {
		t.Parallel()

		got := cellscan.ParseWeight("46.6")

		require.NotNil(t, got)
		assert.Equal(t, 46.6, *got)
	})

	t.Run("returns nil for non-numeric input", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, cellscan.ParseWeight("heavy"))
	})
}

func TestParseModelVersion(t *testing.T) {
	t.Parallel()

	t.Run("extracts the version tag", func(t *testing.T) {
		t.Parallel()

		got := cellscan.ParseModelVersion("Batemo Cell Model Version 3.1 Release Date June 5, 2024")

		require.NotNil(t, got)
		assert.Equal(t, "3.1", *got)
	})

	t.Run("returns nil when the tag is absent", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, cellscan.ParseModelVersion("no model metadata"))
	})
}

func TestParseReleaseDate(t *testing.T) {
	t.Parallel()

	t.Run("normalizes to ISO 8601", func(t *testing.T) {
		t.Parallel()

		got := cellscan.ParseReleaseDate("Release Date June 5, 2024")

		require.NotNil(t, got)
		assert.Equal(t, "2024-06-05", *got)
	})

	t.Run("keeps a non-calendar date verbatim", func(t *testing.T) {
		t.Parallel()

		got := cellscan.ParseReleaseDate("Release Date Smarch 35, 2024")

		require.NotNil(t, got)
		assert.Equal(t, "Smarch 35, 2024", *got)
	})

	t.Run("returns nil when the label is absent", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, cellscan.ParseReleaseDate("no dates here"))
	})
}
