package forecast

import "time"

// MaxRecurrenceSteps bounds series expansion. Hitting it ends the series without error.
const MaxRecurrenceSteps = 1000

// Valid reports whether the interval is one the expander knows how to step.
func (i Interval) Valid() bool {
	switch i {
	case IntervalWeekly, IntervalBiweekly, IntervalMonthly:
		return true
	}

	return false
}

// Expansion is the result of expanding a recurring series.
type Expansion struct {
	Dates []time.Time
	// Capped is set when the series was cut short by MaxRecurrenceSteps.
	Capped bool
}

// Expand returns the occurrences of a series seeded at seed that fall in [from, to].
// The series stops once it passes the earlier of until and to.
// Monthly occurrences keep the seed's day of month, clamped to shorter months.
// An unknown interval cannot advance, so only the seed itself is considered.
func Expand(seed time.Time, interval Interval, until *time.Time, from, to time.Time) Expansion {
	seed, from, to = DateOf(seed), DateOf(from), DateOf(to)

	limit := to
	if until != nil && DateOf(*until).Before(limit) {
		limit = DateOf(*until)
	}

	var out Expansion

	for n := range MaxRecurrenceSteps {
		cursor, ok := occurrence(seed, interval, n)
		if !ok || cursor.After(limit) {
			return out
		}

		if !cursor.Before(from) {
			out.Dates = append(out.Dates, cursor)
		}
	}

	out.Capped = true

	return out
}

// occurrence returns the n-th date of the series. Computing from the seed each time,
// rather than from the previous date, keeps month-end seeds from drifting (31st → 28th → 28th).
func occurrence(seed time.Time, interval Interval, n int) (time.Time, bool) {
	switch interval {
	case IntervalWeekly:
		return seed.AddDate(0, 0, 7*n), true
	case IntervalBiweekly:
		return seed.AddDate(0, 0, 14*n), true
	case IntervalMonthly:
		return addMonthsClamped(seed, n), true
	}

	return seed, n == 0
}

// addMonthsClamped adds n calendar months, clamping the day to the target month's length.
func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()

	return first.AddDate(0, 0, min(t.Day(), last)-1)
}
