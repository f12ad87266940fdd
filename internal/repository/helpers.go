package repository

import (
	"fmt"
	"time"
)

// parseTime parses a stored RFC3339 timestamp.
func parseTime(s, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// storedTimeLayout is fixed width so stored timestamps sort as text.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime renders t for SQLite storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

// nowUTC returns the current UTC time formatted for storage.
func nowUTC() string {
	return formatTime(time.Now())
}
