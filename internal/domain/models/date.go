package models

import (
	"strings"
	"time"

	"github.com/guttosm/nsepulse/internal/apperrors"
)

// DateLayout is the ISO-8601 calendar date layout used on every surface.
const DateLayout = "2006-01-02"

// ParseTradeDate parses an ISO-8601 calendar date into a UTC midnight time.
func ParseTradeDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.Malformed(field, s, "expected YYYY-MM-DD")
	}
	return d, nil
}

// TruncateToDate drops the clock part of t and returns the calendar date as UTC midnight,
// keeping the year/month/day observed in t's own location.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
