package forecast

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source names where a ledger entry came from.
type Source string

const (
	SourceQuota    Source = "quota"
	SourceRetainer Source = "retainer"
	SourceProject  Source = "project"
	SourceInvoice  Source = "invoice"
	SourceExpense  Source = "expense"
	SourcePayroll  Source = "payroll"
)

// Entry is one amount counted for one record in one month.
// Revenue entries carry either Agency or Prospect; expense and payroll entries carry neither.
type Entry struct {
	Source   Source
	RecordID uuid.UUID
	Agency   AgencyID
	Prospect string
	Month    string
	Date     time.Time
	Amount   decimal.Decimal
}

// SourceMap is an accumulator's output folded per agency and month.
type SourceMap map[AgencyID]map[string]decimal.Decimal

// Fold sums agency-linked entries into a SourceMap. Prospect and cost entries are ignored.
func Fold(entries []Entry) SourceMap {
	out := make(SourceMap)

	for _, e := range entries {
		if e.Agency == "" {
			continue
		}

		months, ok := out[e.Agency]
		if !ok {
			months = make(map[string]decimal.Decimal)
			out[e.Agency] = months
		}

		months[e.Month] = months[e.Month].Add(e.Amount)
	}

	return out
}

// QuotaEntries projects hours × blended rate for every quota target in every month after the
// current one, skipping billing-blocked agency-months. Only the first target per agency counts.
func QuotaEntries(targets []QuotaTarget, w Window, rate decimal.Decimal, blocked MonthSet) ([]Entry, []Diagnostic) {
	var (
		entries []Entry
		diags   []Diagnostic
		seen    = make(map[AgencyID]bool, len(targets))
	)

	for _, q := range targets {
		if q.NoQuota {
			continue
		}

		agency := NormalizeAgency(q.AgencyID)
		if seen[agency] {
			diags = append(diags, Diagnostic{
				Level:    LevelWarning,
				Code:     CodeDuplicateQuota,
				Message:  fmt.Sprintf("agency %s already has a quota target; ignoring this one", agency),
				RecordID: q.ID,
			})

			continue
		}

		seen[agency] = true

		amount := q.MonthlyTargetHours.Mul(rate)
		if amount.IsZero() {
			continue
		}

		// M0 is excluded: the current month's revenue is already captured by real invoices.
		for _, m := range w.Months[1:] {
			if blocked.Has(agency, m.Key()) {
				continue
			}

			entries = append(entries, Entry{
				Source:   SourceQuota,
				RecordID: q.ID,
				Agency:   agency,
				Month:    m.Key(),
				Date:     m.Start,
				Amount:   amount,
			})
		}
	}

	return entries, diags
}

// RetainerEntries counts each retainer's monthly amount in every month it is active
// and not billing-blocked.
func RetainerEntries(retainers []Retainer, w Window, blocked MonthSet) []Entry {
	var entries []Entry

	for _, r := range retainers {
		if r.MonthlyAmount.IsZero() {
			continue
		}

		agency := NormalizeAgency(r.AgencyID)

		for _, m := range w.Months {
			if !ActiveInMonth(r.StartDate, r.EndDate, m) || blocked.Has(agency, m.Key()) {
				continue
			}

			entries = append(entries, Entry{
				Source:   SourceRetainer,
				RecordID: r.ID,
				Agency:   agency,
				Month:    m.Key(),
				Date:     m.Start,
				Amount:   r.MonthlyAmount,
			})
		}
	}

	return entries
}

// ProjectEntries counts active project forecasts in every month they overlap.
// Agency-linked items contribute nothing in a billing-blocked month; prospects are never gated.
func ProjectEntries(items []ProjectForecast, w Window, blocked MonthSet) []Entry {
	var entries []Entry

	for _, p := range items {
		if !p.IsActive || !p.MonthlyAmount.IsPositive() {
			continue
		}

		for _, m := range w.Months {
			if !ActiveInMonth(p.StartDate, p.EndDate, m) {
				continue
			}

			e := Entry{
				Source:   SourceProject,
				RecordID: p.ID,
				Month:    m.Key(),
				Date:     m.Start,
				Amount:   p.MonthlyAmount,
			}

			switch l := p.Link.(type) {
			case ProspectLink:
				e.Prospect = l.Name
			case AgencyLink:
				e.Agency = NormalizeAgency(l.AgencyID)
				if blocked.Has(e.Agency, e.Month) {
					continue
				}
			default:
				e.Agency = Unassigned
				if blocked.Has(e.Agency, e.Month) {
					continue
				}
			}

			entries = append(entries, e)
		}
	}

	return entries
}

// InvoiceEntries counts pending invoices in the month their revenue is expected,
// when that month lies in the window. Received invoices are already cash.
func InvoiceEntries(invoices []Invoice, w Window) []Entry {
	var entries []Entry

	for _, inv := range invoices {
		if inv.Status != InvoicePending || inv.Amount.IsZero() {
			continue
		}

		at := RevenueDate(inv)
		if !w.Contains(at) {
			continue
		}

		entries = append(entries, Entry{
			Source:   SourceInvoice,
			RecordID: inv.ID,
			Agency:   NormalizeAgency(inv.AgencyID),
			Month:    MonthKey(at),
			Date:     at,
			Amount:   inv.Amount,
		})
	}

	return entries
}

// ExpenseEntries expands every expense into its occurrences inside the window.
// Non-recurring expenses occur once, on their date.
func ExpenseEntries(expenses []Expense, w Window) ([]Entry, []Diagnostic) {
	var (
		entries []Entry
		diags   []Diagnostic
	)

	for _, ex := range expenses {
		if ex.Amount.IsZero() {
			continue
		}

		var dates []time.Time

		switch {
		case !ex.IsRecurring:
			if w.Contains(ex.Date) {
				dates = []time.Time{DateOf(ex.Date)}
			}
		default:
			if !ex.Interval.Valid() {
				diags = append(diags, Diagnostic{
					Level:    LevelWarning,
					Code:     CodeUnknownInterval,
					Message:  fmt.Sprintf("expense %q has unknown interval %q; counted once", ex.Description, ex.Interval),
					RecordID: ex.ID,
				})
			}

			exp := Expand(ex.Date, ex.Interval, ex.RecurrenceEnd, w.Start(), w.End())
			if exp.Capped {
				diags = append(diags, Diagnostic{
					Level:    LevelWarning,
					Code:     CodeRecurrenceCapped,
					Message:  fmt.Sprintf("expense %q stopped after %d occurrences", ex.Description, MaxRecurrenceSteps),
					RecordID: ex.ID,
				})
			}

			dates = exp.Dates
		}

		for _, d := range dates {
			entries = append(entries, Entry{
				Source:   SourceExpense,
				RecordID: ex.ID,
				Month:    MonthKey(d),
				Date:     d,
				Amount:   ex.Amount,
			})
		}
	}

	return entries, diags
}
