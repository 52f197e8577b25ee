package ledger

import "time"

// Period is an inclusive calendar date range.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls within the period, inclusive of both ends.
// Comparison is by calendar date.
func (p Period) Contains(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(p.Start)) && !day.After(DateOnly(p.End))
}

// MonthPeriod returns the calendar month containing t.
func MonthPeriod(t time.Time) Period {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, -1)}
}

// YearToDatePeriod returns January 1st of t's year through t.
func YearToDatePeriod(t time.Time) Period {
	return Period{
		Start: time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC),
		End:   DateOnly(t),
	}
}

// DateOnly strips the time-of-day portion, normalizing to UTC midnight.
// Stored transaction dates are always in this form.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// monthsBetween counts whole calendar months from a to b, ignoring the day
// of month. Zero when both fall in the same month, negative when b is
// earlier.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
