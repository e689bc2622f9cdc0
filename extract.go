package cellscan

import (
	"regexp"
	"strings"
	"time"
)

// SectionSuccessors declares, for each labeled section of a product page,
// the ordered set of labels that can legitimately follow it in the page's
// fixed section ordering. ExtractBlock always cuts at the nearest following
// label, so each entry must be exhaustive: a label missing here would let a
// block silently swallow the next section.
//
// The leading space on most entries distinguishes a section heading from
// the same word appearing inside a value (e.g. "Energy Density" contains
// "Density" but not " Power").
var SectionSuccessors = map[string][]string{
	"Capacity":       {" Current", " Energy", " Power", " Energy Density", " Power Density"},
	"Current":        {" Energy", " Power", " Energy Density", " Power Density"},
	"Energy":         {" Power", " Energy Density", " Power Density"},
	"Power":          {" Energy Density", " Power Density"},
	"Energy Density": {" Power Density", " Batemo Cell Model Version"},
	"Power Density":  {" Batemo Cell Model Version", "##", " Batemo Cell Model"},
}

// Section extracts the named section's block from normalized flat text,
// using the declared successor ordering as the boundary set.
func Section(text, label string) *string {
	return ExtractBlock(text, label, SectionSuccessors[label])
}

// ExtractBlock returns the substring of text between the end of the first
// occurrence of startLabel and the nearest following occurrence of any of
// the nextLabels. With no nextLabels, or none occurring, the block extends
// to the end of text. Returns nil when startLabel is absent.
func ExtractBlock(text, startLabel string, nextLabels []string) *string {
	start := strings.Index(text, startLabel)
	if start == -1 {
		return nil
	}

	from := start + len(startLabel)
	end := len(text)
	for _, label := range nextLabels {
		if j := strings.Index(text[from:], label); j != -1 && from+j < end {
			end = from + j
		}
	}

	block := text[from:end]
	return &block
}

// Field patterns: a stem word, one numeric capture, and a unit token.
// Applied to section blocks by FirstNumber.
var (
	PatNominalCapacity   = regexp.MustCompile(`nominal\s*([0-9]+(?:\.[0-9]+)?)\s*Ah`)
	PatC10Capacity       = regexp.MustCompile(`C/10\s*([0-9]+(?:\.[0-9]+)?)\s*Ah`)
	PatContinuousCurrent = regexp.MustCompile(`contin\w*\s*([0-9]+(?:\.[0-9]+)?)\s*A`)
	PatPeakCurrent       = regexp.MustCompile(`peak\s*([0-9]+(?:\.[0-9]+)?)\s*A`)
	PatC10Energy         = regexp.MustCompile(`C/10\s*([0-9]+(?:\.[0-9]+)?)\s*Wh`)
	PatContinuousPower   = regexp.MustCompile(`contin\w*\s*([0-9]+(?:\.[0-9]+)?)\s*W`)
	PatPeakPower         = regexp.MustCompile(`peak\s*([0-9]+(?:\.[0-9]+)?)\s*W`)
	PatGravimetricEnergy = regexp.MustCompile(`gravi\w*\s*([0-9]+(?:\.[0-9]+)?)\s*Wh/kg`)
	PatVolumetricEnergy  = regexp.MustCompile(`volumetric\s*([0-9]+(?:\.[0-9]+)?)\s*Wh/l`)
	PatGravimetricPower  = regexp.MustCompile(`gravi\w*\s*([0-9]+(?:\.[0-9]+)?)\s*kW/kg`)
	PatVolumetricPower   = regexp.MustCompile(`volumetric\s*([0-9]+(?:\.[0-9]+)?)\s*kW/l`)
)

// FirstNumber returns the first number captured by pattern in the block.
// A nil block, no match, or an unparseable capture all yield nil.
func FirstNumber(block *string, pattern *regexp.Regexp) *float64 {
	if block == nil {
		return nil
	}
	m := pattern.FindStringSubmatch(*block)
	if m == nil {
		return nil
	}
	return ParseNumber(m[1])
}

// ParseRange parses a two-sided range of the shape
//
//	label <min> … <max> <unit>
//
// where the separator is one or more period or ellipsis glyphs. The unit
// may be empty. Non-numeric text between the label and the first number is
// skipped, so a label prefix suffices: the rendered "Temperature" heading
// carries soft hyphens on some pages and only "Temper" is stable.
// Returns (nil, nil) when the shape does not occur in text.
func ParseRange(text, label, unit string) (*float64, *float64) {
	pattern := regexp.QuoteMeta(label) + `[^-0-9]*?([-0-9.,]+)\s*[.…]+\s*([-0-9.,]+)`
	if unit != "" {
		pattern += `\s*` + regexp.QuoteMeta(unit)
	}

	m := regexp.MustCompile(pattern).FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	return ParseNumber(m[1]), ParseNumber(m[2])
}

// The compound current window line, e.g.
//
//	-90 A discharge … 12 A charge (-30C … 4C)
//
// is matched by two independent sub-patterns so that the ampere pair and
// the parenthesised C-rate pair can each succeed or fail on their own.
var (
	currentWindowPat = regexp.MustCompile(`(-?\d+\.?\d*)\s*A\s*discharge\s*[.…]+\s*(-?\d+\.?\d*)\s*A\s*charge`)
	cRateWindowPat   = regexp.MustCompile(`\(\s*(-?\d+\.?\d*)\s*C\s*[.…]+\s*(-?\d+\.?\d*)\s*C\s*\)`)
)

// ParseCurrentWindow extracts the operating current window and its C-rate
// equivalent from normalized flat text. Each half resolves independently:
// a page that renders only the ampere pair still yields the first two
// values with nil C-rates.
func ParseCurrentWindow(text string) (dischargeMin, chargeMax, cMin, cMax *float64) {
	if m := currentWindowPat.FindStringSubmatch(text); m != nil {
		dischargeMin = ParseNumber(m[1])
		chargeMax = ParseNumber(m[2])
	}
	if m := cRateWindowPat.FindStringSubmatch(text); m != nil {
		cMin = ParseNumber(m[1])
		cMax = ParseNumber(m[2])
	}
	return dischargeMin, chargeMax, cMin, cMax
}

var (
	dimensionsPat = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*[x×]\s*([0-9]+(?:\.[0-9]+)?)`)
	weightPat     = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*g`)
)

// ParseDimensions splits a raw dimension string like "18.3 x 65 mm" or
// "18.3×65 mm" into diameter and height.
func ParseDimensions(raw string) (diameter, height *float64) {
	m := dimensionsPat.FindStringSubmatch(raw)
	if m == nil {
		return nil, nil
	}
	return ParseNumber(m[1]), ParseNumber(m[2])
}

// ParseWeight extracts the first gram-qualified number from a raw weight
// string, falling back to parsing the whole string as a bare number.
func ParseWeight(raw string) *float64 {
	if m := weightPat.FindStringSubmatch(raw); m != nil {
		return ParseNumber(m[1])
	}
	return ParseNumber(raw)
}

var (
	modelVersionPat = regexp.MustCompile(`Batemo Cell Model Version\s*([0-9.]+)`)
	releaseDatePat  = regexp.MustCompile(`Release Date\s*([A-Za-z]+\s+\d{1,2},\s+\d{4})`)
)

// ParseModelVersion extracts the cell model version tag from flat text.
func ParseModelVersion(text string) *string {
	m := modelVersionPat.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &m[1]
}

// ParseReleaseDate extracts the model release date from flat text and
// normalizes it to ISO 8601 when it parses as "Month D, YYYY". A date that
// matches the shape but not the calendar is kept verbatim.
func ParseReleaseDate(text string) *string {
	m := releaseDatePat.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	raw := m[1]
	if t, err := time.Parse("January 2, 2006", raw); err == nil {
		iso := t.Format("2006-01-02")
		return &iso
	}
	return &raw
}
