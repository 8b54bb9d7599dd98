package utils

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the calendar-date format used on the wire.
const DateLayout = time.DateOnly

// ParseOptionalFloat returns nil for an empty value.
func ParseOptionalFloat(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}

	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", value)
	}

	return &result, nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp
// and returns it in UTC. Stores keep instants without their offset, so a
// timestamp whose UTC day differs from its local day (2024-06-01T23:00:00-05:00)
// is reported by FormatDate as the UTC day (2024-06-02).
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}

	return t.UTC(), nil
}

// FormatDate renders t as a calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
