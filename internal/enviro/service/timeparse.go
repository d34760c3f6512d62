package service

import (
	"fmt"
	"time"
)

// Accepted timestamp shapes: RFC 3339 (with Z or a numeric offset, fractional
// seconds allowed) and offset-less variants, which are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

const dayLayout = "2006-01-02"

func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// ParseDay interprets a YYYY-MM-DD key as midnight UTC of that day.
func ParseDay(value string) (time.Time, error) {
	t, err := time.Parse(dayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q", value)
	}
	return t.UTC(), nil
}

// DayKey buckets an instant into its UTC calendar day.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayLayout)
}
