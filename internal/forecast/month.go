package forecast

import (
	"fmt"
	"time"
)

// MonthLayout is the canonical month key format.
const MonthLayout = "2006-01"

// DateOf truncates t to its calendar day. The year, month and day are read in
// t's own location and re-anchored at midnight UTC, so a date never moves
// across a zone boundary once it enters the engine.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthKey returns the canonical "YYYY-MM" key of the month containing t.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseMonth parses a "YYYY-MM" key into the first day of that month.
func ParseMonth(key string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month %q: %w", key, err)
	}

	return t, nil
}

// Month is a calendar month with inclusive day bounds.
type Month struct {
	Start time.Time
	End   time.Time
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Month{Start: start, End: start.AddDate(0, 1, -1)}
}

func (m Month) Key() string { return MonthKey(m.Start) }

// Mid is the 15th, the first payroll date of the month.
func (m Month) Mid() time.Time {
	return m.Start.AddDate(0, 0, 14)
}

// Contains reports whether the date d falls within the month, bounds included.
func (m Month) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(m.Start) && !d.After(m.End)
}

func (m Month) Next() Month {
	return MonthOf(m.Start.AddDate(0, 1, 0))
}

// Window is the contiguous run of months a forecast covers, starting at the current month.
type Window struct {
	Months []Month
}

// NewWindow returns the window of size months starting at the month containing today.
// A size below one is clamped to the current month only.
func NewWindow(today time.Time, months int) Window {
	months = max(months, 1)

	w := Window{Months: make([]Month, 0, months)}
	m := MonthOf(DateOf(today))

	for range months {
		w.Months = append(w.Months, m)
		m = m.Next()
	}

	return w
}

func (w Window) Start() time.Time { return w.Months[0].Start }
func (w Window) End() time.Time   { return w.Months[len(w.Months)-1].End }

// Current is M0, the month containing today.
func (w Window) Current() Month { return w.Months[0] }

func (w Window) Keys() []string {
	keys := make([]string, len(w.Months))
	for i, m := range w.Months {
		keys[i] = m.Key()
	}

	return keys
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(w.Start()) && !d.After(w.End())
}

// ActiveInMonth reports whether a record spanning [start, end] overlaps m.
// A nil end leaves the interval unbounded above. Both bounds are inclusive.
func ActiveInMonth(start time.Time, end *time.Time, m Month) bool {
	upper := m.End
	if end != nil {
		upper = DateOf(*end)
	}

	return !m.Start.After(upper) && !m.End.Before(DateOf(start))
}
