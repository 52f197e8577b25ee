package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v := New()
		require.NotEmpty(t, v)
		assert.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-08", MonthKey(time.Date(2026, 8, 28, 13, 4, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01", MonthKey(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseMonthKey(t *testing.T) {
	got, err := ParseMonthKey("2026-08")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseMonthKey("2026-8")
	assert.Error(t, err)

	_, err = ParseMonthKey("August 2026")
	assert.Error(t, err)
}

func TestMonthKey_RoundTrip(t *testing.T) {
	start := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		m := start.AddDate(0, i, 0)
		parsed, err := ParseMonthKey(MonthKey(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
}
