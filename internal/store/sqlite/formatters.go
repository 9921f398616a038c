package sqlite

import (
	"time"
)

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimeForDB formats a time.Time value as a UTC RFC3339 string with millisecond precision
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
