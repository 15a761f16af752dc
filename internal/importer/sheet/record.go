package sheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

var dateLayouts = []string{time.DateOnly, "02-01-2006", "02/01/2006", "2006/01/02"}

// record is one data row. Cell helpers never fail: a bad value becomes zero or absent
// and a diagnostic naming the sheet line is recorded.
type record struct {
	sheet string
	line  int
	id    uuid.UUID
	cells map[string]string
	diags *[]forecast.Diagnostic
}

func (r *record) report(level forecast.Level, code, format string, args ...any) {
	*r.diags = append(*r.diags, forecast.Diagnostic{
		Level:    level,
		Code:     code,
		Message:  fmt.Sprintf("%s line %d: ", r.sheet, r.line) + fmt.Sprintf(format, args...),
		RecordID: r.id,
	})
}

func (r *record) text(key string) string {
	return r.cells[key]
}

// amount parses a money or hours cell. Empty and unparseable cells are zero.
func (r *record) amount(key string) decimal.Decimal {
	s := r.cells[key]

	d, ok := forecast.ParseAmount(s)
	if !ok {
		r.report(forecast.LevelWarning, forecast.CodeInvalidAmount, "%s %q is not an amount; using 0", key, s)
		return decimal.Zero
	}

	return d
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// date parses a required date. The row cannot be placed in time without it, so a
// missing or bad value is critical and the caller drops the row.
func (r *record) date(key string) (time.Time, bool) {
	s := r.cells[key]

	t, ok := parseDate(s)
	if !ok {
		r.report(forecast.LevelCritical, forecast.CodeInvalidDate, "%s %q is not a date; row skipped", key, s)
		return time.Time{}, false
	}

	return t, true
}

// optDate parses an optional date. A bad value is treated as absent.
func (r *record) optDate(key string) *time.Time {
	s := r.cells[key]
	if s == "" {
		return nil
	}

	t, ok := parseDate(s)
	if !ok {
		r.report(forecast.LevelWarning, forecast.CodeInvalidDate, "%s %q is not a date; ignored", key, s)
		return nil
	}

	return &t
}

// month parses a "YYYY-MM" cell, or any full date, into the first day of its month.
func (r *record) month(key string) *time.Time {
	s := r.cells[key]
	if s == "" {
		return nil
	}

	if t, err := forecast.ParseMonth(s); err == nil {
		return &t
	}

	if t, ok := parseDate(s); ok {
		return new(forecast.MonthOf(t).Start)
	}

	r.report(forecast.LevelWarning, forecast.CodeInvalidDate, "%s %q is not a month; ignored", key, s)

	return nil
}

// flag parses yes/no style cells, falling back to def when empty or unrecognised.
func (r *record) flag(key string, def bool) bool {
	s := strings.ToLower(r.cells[key])

	switch s {
	case "":
		return def
	case "y", "yes", "x", "sim", "on":
		return true
	case "n", "no", "nao", "não", "off", "-":
		return false
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}

	return b
}

func buildInvoice(r *record, snap *forecast.Snapshot) {
	billed, ok := r.date("date")
	if !ok {
		return
	}

	status := forecast.InvoiceStatus(strings.ToLower(r.text("status")))
	switch status {
	case forecast.InvoicePending, forecast.InvoiceReceived:
	default:
		r.report(forecast.LevelWarning, forecast.CodeUnknownStatus,
			"status %q is neither pending nor received; the invoice only blocks its month", status)
	}

	snap.Invoices = append(snap.Invoices, forecast.Invoice{
		ID:              r.id,
		AgencyID:        forecast.NormalizeAgency(forecast.AgencyID(r.text("agency"))),
		Amount:          r.amount("amount"),
		Status:          status,
		Date:            billed,
		DueDate:         r.optDate("due_date"),
		RealizationDate: r.optDate("realization_date"),
		ForecastMonth:   r.month("forecast_month"),
	})
}

func buildQuota(r *record, snap *forecast.Snapshot) {
	snap.QuotaTargets = append(snap.QuotaTargets, forecast.QuotaTarget{
		ID:                 r.id,
		AgencyID:           forecast.NormalizeAgency(forecast.AgencyID(r.text("agency"))),
		MonthlyTargetHours: r.amount("monthly_target_hours"),
		NoQuota:            r.flag("no_quota", false),
	})
}

func buildRetainer(r *record, snap *forecast.Snapshot) {
	start, ok := r.date("start_date")
	if !ok {
		return
	}

	snap.Retainers = append(snap.Retainers, forecast.Retainer{
		ID:            r.id,
		AgencyID:      forecast.NormalizeAgency(forecast.AgencyID(r.text("agency"))),
		MonthlyAmount: r.amount("monthly_amount"),
		StartDate:     start,
		EndDate:       r.optDate("end_date"),
	})
}

func buildProject(r *record, snap *forecast.Snapshot) {
	start, ok := r.date("start_date")
	if !ok {
		return
	}

	link, diag := forecast.ResolveLink(r.id, r.text("agency"), r.text("prospect"))
	if diag != nil {
		diag.Message = fmt.Sprintf("%s line %d: %s", r.sheet, r.line, diag.Message)
		*r.diags = append(*r.diags, *diag)
	}

	snap.ProjectForecasts = append(snap.ProjectForecasts, forecast.ProjectForecast{
		ID:            r.id,
		Link:          link,
		MonthlyAmount: r.amount("monthly_amount"),
		StartDate:     start,
		EndDate:       r.optDate("end_date"),
		IsActive:      r.flag("is_active", true),
	})
}

func buildExpense(r *record, snap *forecast.Snapshot) {
	seed, ok := r.date("date")
	if !ok {
		return
	}

	interval := forecast.Interval(strings.ToLower(r.text("interval")))

	snap.Expenses = append(snap.Expenses, forecast.Expense{
		ID:            r.id,
		Description:   r.text("description"),
		Amount:        r.amount("amount"),
		Date:          seed,
		IsRecurring:   r.flag("is_recurring", interval != ""),
		Interval:      interval,
		RecurrenceEnd: r.optDate("recurrence_end"),
	})
}

func buildPayroll(r *record, snap *forecast.Snapshot) {
	start, ok := r.date("start_date")
	if !ok {
		return
	}

	snap.PayrollMembers = append(snap.PayrollMembers, forecast.PayrollMember{
		ID:         r.id,
		Name:       r.text("name"),
		MonthlyPay: r.amount("monthly_pay"),
		StartDate:  start,
		EndDate:    r.optDate("end_date"),
		IsActive:   r.flag("is_active", true),
	})
}
