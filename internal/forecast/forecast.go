package forecast

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidWindow = errors.New("invalid forecast window")
)

// AgencyID identifies a client organisation. The zero value is never stored:
// records without an agency are bucketed under Unassigned.
type AgencyID string

const Unassigned AgencyID = "unassigned"

// NormalizeAgency collapses an absent agency to Unassigned.
func NormalizeAgency(id AgencyID) AgencyID {
	if id == "" {
		return Unassigned
	}

	return id
}

// InvoiceStatus represents the payment state of an invoice.
type InvoiceStatus string

const (
	InvoicePending  InvoiceStatus = "pending"
	InvoiceReceived InvoiceStatus = "received"
)

// Invoice is a billed amount for an agency.
// Date is the billing-period date; the optional dates refine when the cash is expected.
type Invoice struct {
	ID              uuid.UUID
	AgencyID        AgencyID
	Amount          decimal.Decimal
	Status          InvoiceStatus
	Date            time.Time
	DueDate         *time.Time
	RealizationDate *time.Time
	ForecastMonth   *time.Time
}

// QuotaTarget is the monthly hour target agreed with an agency.
type QuotaTarget struct {
	ID                 uuid.UUID
	AgencyID           AgencyID
	MonthlyTargetHours decimal.Decimal
	NoQuota            bool
}

// Retainer is a fixed monthly fee, open-ended when EndDate is nil.
type Retainer struct {
	ID            uuid.UUID
	AgencyID      AgencyID
	MonthlyAmount decimal.Decimal
	StartDate     time.Time
	EndDate       *time.Time
}

// ProjectForecast is expected project revenue for an agency or a prospect.
type ProjectForecast struct {
	ID            uuid.UUID
	Link          Link
	MonthlyAmount decimal.Decimal
	StartDate     time.Time
	EndDate       *time.Time
	IsActive      bool
}

// Interval is the recurrence step of an expense.
type Interval string

const (
	IntervalWeekly   Interval = "weekly"
	IntervalBiweekly Interval = "biweekly"
	IntervalMonthly  Interval = "monthly"
)

// Expense is a one-off or recurring cost. Date seeds the series.
type Expense struct {
	ID            uuid.UUID
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	IsRecurring   bool
	Interval      Interval
	RecurrenceEnd *time.Time
}

// PayrollMember is paid MonthlyPay in two equal halves on the 15th and the last day of the month.
type PayrollMember struct {
	ID         uuid.UUID
	Name       string
	MonthlyPay decimal.Decimal
	StartDate  time.Time
	EndDate    *time.Time
	IsActive   bool
}

// Settings holds the global forecast parameters.
type Settings struct {
	BlendedRate decimal.Decimal
}

// Snapshot is the immutable set of records a forecast is computed from.
type Snapshot struct {
	Invoices         []Invoice
	QuotaTargets     []QuotaTarget
	Retainers        []Retainer
	ProjectForecasts []ProjectForecast
	Expenses         []Expense
	PayrollMembers   []PayrollMember

	// Diagnostics raised while the snapshot was loaded.
	Diagnostics []Diagnostic
}

// Merge appends the records of other to a copy of s.
func (s Snapshot) Merge(other Snapshot) Snapshot {
	return Snapshot{
		Invoices:         append(append([]Invoice(nil), s.Invoices...), other.Invoices...),
		QuotaTargets:     append(append([]QuotaTarget(nil), s.QuotaTargets...), other.QuotaTargets...),
		Retainers:        append(append([]Retainer(nil), s.Retainers...), other.Retainers...),
		ProjectForecasts: append(append([]ProjectForecast(nil), s.ProjectForecasts...), other.ProjectForecasts...),
		Expenses:         append(append([]Expense(nil), s.Expenses...), other.Expenses...),
		PayrollMembers:   append(append([]PayrollMember(nil), s.PayrollMembers...), other.PayrollMembers...),
		Diagnostics:      append(append([]Diagnostic(nil), s.Diagnostics...), other.Diagnostics...),
	}
}

// MapAgencies returns a copy of s with every agency reference passed through fn.
// Prospect links are left untouched.
func (s Snapshot) MapAgencies(fn func(AgencyID) AgencyID) Snapshot {
	out := s.Merge(Snapshot{})

	for i := range out.Invoices {
		out.Invoices[i].AgencyID = fn(out.Invoices[i].AgencyID)
	}

	for i := range out.QuotaTargets {
		out.QuotaTargets[i].AgencyID = fn(out.QuotaTargets[i].AgencyID)
	}

	for i := range out.Retainers {
		out.Retainers[i].AgencyID = fn(out.Retainers[i].AgencyID)
	}

	for i := range out.ProjectForecasts {
		if l, ok := out.ProjectForecasts[i].Link.(AgencyLink); ok {
			out.ProjectForecasts[i].Link = AgencyLink{AgencyID: fn(l.AgencyID)}
		}
	}

	return out
}
