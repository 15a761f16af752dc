package forecast

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// halfPeriod is one of the two pay periods of a month.
type halfPeriod struct {
	start, end, payDate time.Time
}

// halves splits m into the 1st–15th period paid on the 15th and the 16th–end period
// paid on the last day.
func halves(m Month) [2]halfPeriod {
	mid := m.Mid()

	return [2]halfPeriod{
		{start: m.Start, end: mid, payDate: mid},
		{start: mid.AddDate(0, 0, 1), end: m.End, payDate: m.End},
	}
}

// PayrollEntries returns one entry per unpaid half-month pay run of every active member.
// Pay dates before today are already settled and never appear in the forecast.
func PayrollEntries(members []PayrollMember, w Window, today time.Time) ([]Entry, []Diagnostic) {
	today = DateOf(today)

	var (
		entries []Entry
		diags   []Diagnostic
	)

	for _, p := range members {
		if !p.IsActive {
			continue
		}

		if !p.MonthlyPay.IsPositive() {
			diags = append(diags, Diagnostic{
				Level:    LevelWarning,
				Code:     CodeZeroPay,
				Message:  fmt.Sprintf("payroll member %q has no monthly pay; skipped", p.Name),
				RecordID: p.ID,
			})

			continue
		}

		half := p.MonthlyPay.Div(two)
		start := DateOf(p.StartDate)

		for _, m := range w.Months {
			for _, hp := range halves(m) {
				if hp.payDate.Before(today) || !w.Contains(hp.payDate) {
					continue
				}

				if start.After(hp.end) {
					continue
				}

				if p.EndDate != nil && DateOf(*p.EndDate).Before(hp.start) {
					continue
				}

				entries = append(entries, Entry{
					Source:   SourcePayroll,
					RecordID: p.ID,
					Month:    m.Key(),
					Date:     hp.payDate,
					Amount:   half,
				})
			}
		}
	}

	return entries, diags
}
