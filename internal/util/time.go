package util

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used throughout the Document.
const DateLayout = "2006-01-02"

// timestampLayouts are the forms extract timestamps arrive in. Exports write
// "2024-03-01 00:00:00" for daily series; some tools use the ISO "T" form.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParseTimestamp parses a date or date-time as found in extract files.
// Values without a zone are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// DateOnly drops the time of day, keeping the calendar date as written.
func DateOnly(t time.Time) string {
	return t.Format(DateLayout)
}
