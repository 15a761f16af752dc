package forecast

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Input is everything a forecast is computed from.
type Input struct {
	Today        time.Time
	WindowMonths int
	BlendedRate  decimal.Decimal
	Snapshot     Snapshot
}

// BreakdownCell is the revenue of one agency in one month, split by source.
type BreakdownCell struct {
	Quota     decimal.Decimal
	Invoices  decimal.Decimal
	Retainers decimal.Decimal
	Projects  decimal.Decimal

	// Blocked is set when an invoice bills this agency-month, suppressing projected revenue.
	Blocked bool
	// Invoiced is set when some invoice's revenue is expected in this agency-month.
	Invoiced bool
}

func (c BreakdownCell) Total() decimal.Decimal {
	return c.Quota.Add(c.Invoices).Add(c.Retainers).Add(c.Projects)
}

// Breakdown is the canonical agency → month → cell decomposition of revenue.
type Breakdown map[AgencyID]map[string]BreakdownCell

func (b Breakdown) cell(agency AgencyID, month string) BreakdownCell {
	return b[agency][month]
}

func (b Breakdown) set(agency AgencyID, month string, c BreakdownCell) {
	months, ok := b[agency]
	if !ok {
		months = make(map[string]BreakdownCell)
		b[agency] = months
	}

	months[month] = c
}

// Agencies returns the agencies in the breakdown in sorted order.
func (b Breakdown) Agencies() []AgencyID {
	return slices.Sorted(maps.Keys(b))
}

// ProspectBreakdown is prospect name → month → projected project revenue.
type ProspectBreakdown map[string]map[string]decimal.Decimal

func (p ProspectBreakdown) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// Summary holds the roll-up totals of a forecast.
type Summary struct {
	QuotaRevenue    decimal.Decimal
	RetainerRevenue decimal.Decimal
	// ProjectRevenue covers agency-linked projects only; prospects are in ProspectRevenue.
	ProjectRevenue  decimal.Decimal
	ProspectRevenue decimal.Decimal
	InvoiceRevenue  decimal.Decimal
	TotalRevenue    decimal.Decimal

	RecurringExpenses decimal.Decimal
	PayrollExpenses   decimal.Decimal
	TotalExpenses     decimal.Decimal

	NetProjection decimal.Decimal
}

// MonthTotals is one row of the monthly ledger.
type MonthTotals struct {
	Month     string
	Quota     decimal.Decimal
	Retainers decimal.Decimal
	Projects  decimal.Decimal
	Prospects decimal.Decimal
	Invoices  decimal.Decimal
	Revenue   decimal.Decimal

	RecurringExpenses decimal.Decimal
	Payroll           decimal.Decimal
	TotalExpenses     decimal.Decimal

	Net decimal.Decimal
}

// Result is a computed forecast.
type Result struct {
	Today       time.Time
	Window      Window
	BlendedRate decimal.Decimal

	Breakdown Breakdown
	Prospects ProspectBreakdown
	Summary   Summary

	QuotaByAgency     map[AgencyID]decimal.Decimal
	InvoiceByAgency   map[AgencyID]decimal.Decimal
	RetainerByAgency  map[AgencyID]decimal.Decimal
	ProjectByAgency   map[AgencyID]decimal.Decimal
	ProjectByProspect map[string]decimal.Decimal
	TotalByAgency     map[AgencyID]decimal.Decimal

	Months []MonthTotals

	// Entries trace every counted amount back to its record.
	Entries     []Entry
	Diagnostics []Diagnostic
}

// Compute projects revenue and expense over the window. It is a pure function of its input.
func Compute(in Input) *Result {
	var (
		snap    = in.Snapshot
		today   = DateOf(in.Today)
		w       = NewWindow(today, in.WindowMonths)
		blocked = BillingBlockedMonths(snap.Invoices)
		diags   = append([]Diagnostic(nil), snap.Diagnostics...)
	)

	if !in.BlendedRate.IsPositive() && len(snap.QuotaTargets) > 0 {
		diags = append(diags, Diagnostic{
			Level:   LevelWarning,
			Code:    CodeMissingRate,
			Message: fmt.Sprintf("blended rate is %s; quota revenue will be zero", in.BlendedRate),
		})
	}

	diags = append(diags, checkRanges(snap)...)

	quota, d := QuotaEntries(snap.QuotaTargets, w, in.BlendedRate, blocked)
	diags = append(diags, d...)

	expenses, d := ExpenseEntries(snap.Expenses, w)
	diags = append(diags, d...)

	payroll, d := PayrollEntries(snap.PayrollMembers, w, today)
	diags = append(diags, d...)

	entries := slices.Concat(
		quota,
		RetainerEntries(snap.Retainers, w, blocked),
		ProjectEntries(snap.ProjectForecasts, w, blocked),
		InvoiceEntries(snap.Invoices, w),
		expenses,
		payroll,
	)

	res := &Result{
		Today:       today,
		Window:      w,
		BlendedRate: in.BlendedRate,
		Breakdown:   buildBreakdown(entries, w, blocked, InvoicedMonths(snap.Invoices)),
		Prospects:   buildProspects(entries),
		Entries:     entries,
		Diagnostics: diags,
	}

	res.summarize(entries)

	return res
}

func buildBreakdown(entries []Entry, w Window, blocked, invoiced MonthSet) Breakdown {
	b := make(Breakdown)

	for _, e := range entries {
		if e.Agency == "" {
			continue
		}

		c := b.cell(e.Agency, e.Month)

		switch e.Source {
		case SourceQuota:
			c.Quota = c.Quota.Add(e.Amount)
		case SourceRetainer:
			c.Retainers = c.Retainers.Add(e.Amount)
		case SourceProject:
			c.Projects = c.Projects.Add(e.Amount)
		case SourceInvoice:
			c.Invoices = c.Invoices.Add(e.Amount)
		}

		b.set(e.Agency, e.Month, c)
	}

	// Flag gated and invoiced cells inside the window, creating them if nothing was counted.
	inWindow := make(map[string]bool, len(w.Months))
	for _, k := range w.Keys() {
		inWindow[k] = true
	}

	for am := range blocked {
		if inWindow[am.Month] {
			c := b.cell(am.Agency, am.Month)
			c.Blocked = true
			b.set(am.Agency, am.Month, c)
		}
	}

	for am := range invoiced {
		if inWindow[am.Month] {
			c := b.cell(am.Agency, am.Month)
			c.Invoiced = true
			b.set(am.Agency, am.Month, c)
		}
	}

	return b
}

func buildProspects(entries []Entry) ProspectBreakdown {
	p := make(ProspectBreakdown)

	for _, e := range entries {
		if e.Prospect == "" {
			continue
		}

		months, ok := p[e.Prospect]
		if !ok {
			months = make(map[string]decimal.Decimal)
			p[e.Prospect] = months
		}

		months[e.Month] = months[e.Month].Add(e.Amount)
	}

	return p
}

// summarize derives every total from the breakdown, the prospect breakdown and the cost
// entries. No revenue total is computed from the records themselves.
func (r *Result) summarize(entries []Entry) {
	r.QuotaByAgency = make(map[AgencyID]decimal.Decimal)
	r.InvoiceByAgency = make(map[AgencyID]decimal.Decimal)
	r.RetainerByAgency = make(map[AgencyID]decimal.Decimal)
	r.ProjectByAgency = make(map[AgencyID]decimal.Decimal)
	r.ProjectByProspect = make(map[string]decimal.Decimal)
	r.TotalByAgency = make(map[AgencyID]decimal.Decimal)

	rows := make(map[string]*MonthTotals, len(r.Window.Months))
	r.Months = make([]MonthTotals, len(r.Window.Months))

	for i, k := range r.Window.Keys() {
		r.Months[i].Month = k
		rows[k] = &r.Months[i]
	}

	for agency, months := range r.Breakdown {
		for month, c := range months {
			r.QuotaByAgency[agency] = r.QuotaByAgency[agency].Add(c.Quota)
			r.InvoiceByAgency[agency] = r.InvoiceByAgency[agency].Add(c.Invoices)
			r.RetainerByAgency[agency] = r.RetainerByAgency[agency].Add(c.Retainers)
			r.ProjectByAgency[agency] = r.ProjectByAgency[agency].Add(c.Projects)
			r.TotalByAgency[agency] = r.TotalByAgency[agency].Add(c.Total())

			if row, ok := rows[month]; ok {
				row.Quota = row.Quota.Add(c.Quota)
				row.Invoices = row.Invoices.Add(c.Invoices)
				row.Retainers = row.Retainers.Add(c.Retainers)
				row.Projects = row.Projects.Add(c.Projects)
			}
		}
	}

	for name, months := range r.Prospects {
		for month, amount := range months {
			r.ProjectByProspect[name] = r.ProjectByProspect[name].Add(amount)

			if row, ok := rows[month]; ok {
				row.Prospects = row.Prospects.Add(amount)
			}
		}
	}

	for _, e := range entries {
		row, ok := rows[e.Month]
		if !ok {
			continue
		}

		switch e.Source {
		case SourceExpense:
			row.RecurringExpenses = row.RecurringExpenses.Add(e.Amount)
		case SourcePayroll:
			row.Payroll = row.Payroll.Add(e.Amount)
		}
	}

	var s Summary

	for i := range r.Months {
		row := &r.Months[i]
		row.Revenue = row.Quota.Add(row.Retainers).Add(row.Projects).Add(row.Prospects).Add(row.Invoices)
		row.TotalExpenses = row.RecurringExpenses.Add(row.Payroll)
		row.Net = row.Revenue.Sub(row.TotalExpenses)

		s.QuotaRevenue = s.QuotaRevenue.Add(row.Quota)
		s.RetainerRevenue = s.RetainerRevenue.Add(row.Retainers)
		s.ProjectRevenue = s.ProjectRevenue.Add(row.Projects)
		s.ProspectRevenue = s.ProspectRevenue.Add(row.Prospects)
		s.InvoiceRevenue = s.InvoiceRevenue.Add(row.Invoices)
		s.RecurringExpenses = s.RecurringExpenses.Add(row.RecurringExpenses)
		s.PayrollExpenses = s.PayrollExpenses.Add(row.Payroll)
	}

	s.TotalRevenue = s.QuotaRevenue.Add(s.RetainerRevenue).Add(s.ProjectRevenue).Add(s.ProspectRevenue).Add(s.InvoiceRevenue)
	s.TotalExpenses = s.RecurringExpenses.Add(s.PayrollExpenses)
	s.NetProjection = s.TotalRevenue.Sub(s.TotalExpenses)

	r.Summary = s
}

// checkRanges flags records whose end date precedes their start date. Such records are
// never active; the warning explains why they contribute nothing.
func checkRanges(snap Snapshot) []Diagnostic {
	var diags []Diagnostic

	check := func(id uuid.UUID, kind string, start time.Time, end *time.Time) {
		if end != nil && DateOf(*end).Before(DateOf(start)) {
			diags = append(diags, Diagnostic{
				Level: LevelWarning,
				Code:  CodeInvertedDateRange,
				Message: fmt.Sprintf("%s ends %s before it starts %s",
					kind, end.Format(time.DateOnly), start.Format(time.DateOnly)),
				RecordID: id,
			})
		}
	}

	for _, r := range snap.Retainers {
		check(r.ID, "retainer", r.StartDate, r.EndDate)
	}

	for _, p := range snap.ProjectForecasts {
		check(p.ID, "project forecast", p.StartDate, p.EndDate)
	}

	for _, p := range snap.PayrollMembers {
		check(p.ID, "payroll member", p.StartDate, p.EndDate)
	}

	return diags
}
