package repository

import (
	"fmt"
	"time"
)

// Storage formats. Calendar dates (due dates, discount dates, reference
// dates) are day-granular by contract and stored as YYYY-MM-DD; timestamps
// are stored as RFC3339.
const (
	dateFormat = "2006-01-02"
)

func formatDate(t time.Time) string {
	return t.Format(dateFormat)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		// Tolerate full timestamps written by older imports.
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse stored date %q: %w", s, err)
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return t, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}
