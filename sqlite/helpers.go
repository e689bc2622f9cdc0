package sqlite

import (
	"fmt"
	"time"
)

// scanTime converts an RFC3339 text column into a time.Time.
func scanTime(column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s timestamp: %w", column, err)
	}
	return t, nil
}

// formatLimitOffset returns a LIMIT/OFFSET fragment for the given values,
// or an empty string when neither applies. Values are interpolated
// directly; they only ever come from typed filter fields.
func formatLimitOffset(limit, offset int) string {
	switch {
	case limit > 0 && offset > 0:
		return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	case limit > 0:
		return fmt.Sprintf(" LIMIT %d", limit)
	case offset > 0:
		return fmt.Sprintf(" OFFSET %d", offset)
	default:
		return ""
	}
}
