package cellscan

import (
	"strconv"
	"strings"
)

// NormalizeWhitespace replaces every maximal run of whitespace (including
// newlines and tabs) with a single space and trims both ends. It is total
// and idempotent.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseNumber converts a textual number to a float. A comma is accepted as
// a decimal separator, since the source corpus mixes the European decimal
// comma with period-based literals. Blank or malformed input yields nil,
// never an error.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
