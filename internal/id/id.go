package id

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// New returns a fresh entity id.
func New() string {
	return uuid.NewString()
}

// MonthKey formats a time as a month key like "2026-08".
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// ParseMonthKey parses a "YYYY-MM" key into the first day of that month (UTC).
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t, nil
}
