package forecast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

func amt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertAmount(t *testing.T, want int64, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, amt(want).Equal(got), "%s: want %d, got %s", msg, want, got)
}

// mixedSnapshot exercises every revenue source for two agencies and one prospect.
// Window 2025-03..2025-05 with today 2025-03-10:
//   - agency-a has a received invoice billing April, so April is gated;
//   - agency-b has a pending invoice billed in March and due in May.
func mixedSnapshot() forecast.Snapshot {
	return forecast.Snapshot{
		Invoices: []forecast.Invoice{
			{ID: uuid.New(), AgencyID: "agency-a", Amount: amt(2000), Status: forecast.InvoiceReceived, Date: date(2025, 4, 20)},
			{
				ID:       uuid.New(),
				AgencyID: "agency-b",
				Amount:   amt(1200),
				Status:   forecast.InvoicePending,
				Date:     date(2025, 3, 5),
				DueDate:  new(date(2025, 5, 10)),
			},
		},
		QuotaTargets: []forecast.QuotaTarget{
			{ID: uuid.New(), AgencyID: "agency-a", MonthlyTargetHours: amt(10)},
			{ID: uuid.New(), AgencyID: "agency-c", MonthlyTargetHours: amt(50), NoQuota: true},
		},
		Retainers: []forecast.Retainer{
			{ID: uuid.New(), AgencyID: "agency-a", MonthlyAmount: amt(500), StartDate: date(2025, 1, 1)},
		},
		ProjectForecasts: []forecast.ProjectForecast{
			{
				ID:            uuid.New(),
				Link:          forecast.AgencyLink{AgencyID: "agency-a"},
				MonthlyAmount: amt(300),
				StartDate:     date(2025, 1, 1),
				IsActive:      true,
			},
			{
				ID:            uuid.New(),
				Link:          forecast.ProspectLink{Name: "Acme"},
				MonthlyAmount: amt(700),
				StartDate:     date(2025, 1, 1),
				IsActive:      true,
			},
		},
	}
}

func TestCompute_Breakdown(t *testing.T) {
	res := forecast.Compute(forecast.Input{
		Today:        date(2025, 3, 10),
		WindowMonths: 3,
		BlendedRate:  amt(100),
		Snapshot:     mixedSnapshot(),
	})

	want := forecast.Breakdown{
		"agency-a": {
			"2025-03": {Retainers: amt(500), Projects: amt(300)},
			"2025-04": {Blocked: true, Invoiced: true},
			"2025-05": {Quota: amt(1000), Retainers: amt(500), Projects: amt(300)},
		},
		"agency-b": {
			"2025-03": {Blocked: true},
			"2025-05": {Invoices: amt(1200), Invoiced: true},
		},
	}

	if diff := cmp.Diff(want, res.Breakdown); diff != "" {
		t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
	}

	wantProspects := forecast.ProspectBreakdown{
		"Acme": {"2025-03": amt(700), "2025-04": amt(700), "2025-05": amt(700)},
	}

	if diff := cmp.Diff(wantProspects, res.Prospects); diff != "" {
		t.Errorf("prospects mismatch (-want +got):\n%s", diff)
	}

	assertAmount(t, 1000, res.Summary.QuotaRevenue, "quota")
	assertAmount(t, 1000, res.Summary.RetainerRevenue, "retainers")
	assertAmount(t, 600, res.Summary.ProjectRevenue, "projects")
	assertAmount(t, 2100, res.Summary.ProspectRevenue, "prospects")
	assertAmount(t, 1200, res.Summary.InvoiceRevenue, "invoices")
	assertAmount(t, 5900, res.Summary.TotalRevenue, "total")
	assertAmount(t, 5900, res.Summary.NetProjection, "net")
	assertAmount(t, 700*3, res.ProjectByProspect["Acme"], "by prospect")
	assertAmount(t, 1200, res.TotalByAgency["agency-b"], "agency-b total")
}

func TestCompute_GatingInvariant(t *testing.T) {
	snap := mixedSnapshot()
	res := forecast.Compute(forecast.Input{
		Today:        date(2025, 3, 10),
		WindowMonths: 6,
		BlendedRate:  amt(100),
		Snapshot:     snap,
	})

	blocked := forecast.BillingBlockedMonths(snap.Invoices)

	for agency, months := range res.Breakdown {
		for month, c := range months {
			if !blocked.Has(agency, month) {
				continue
			}

			assert.True(t, c.Blocked, "%s %s", agency, month)
			assert.True(t, c.Quota.IsZero(), "quota %s %s", agency, month)
			assert.True(t, c.Retainers.IsZero(), "retainers %s %s", agency, month)
			assert.True(t, c.Projects.IsZero(), "projects %s %s", agency, month)
		}
	}

	for _, e := range res.Entries {
		if e.Source == forecast.SourceInvoice || e.Agency == "" {
			continue
		}

		assert.False(t, blocked.Has(e.Agency, e.Month), "%s entry in blocked %s %s", e.Source, e.Agency, e.Month)
	}
}

func TestCompute_CurrentMonthQuotaExcluded(t *testing.T) {
	res := forecast.Compute(forecast.Input{
		Today:        date(2025, 3, 10),
		WindowMonths: 4,
		BlendedRate:  amt(100),
		Snapshot: forecast.Snapshot{
			QuotaTargets: []forecast.QuotaTarget{
				{ID: uuid.New(), AgencyID: "agency-a", MonthlyTargetHours: amt(10)},
				{ID: uuid.New(), AgencyID: "agency-b", MonthlyTargetHours: amt(20)},
			},
		},
	})

	for agency, months := range res.Breakdown {
		assert.True(t, months["2025-03"].Quota.IsZero(), "agency %s", agency)
	}

	assertAmount(t, 0, res.Months[0].Quota, "M0 quota")
	assertAmount(t, 3000, res.Months[1].Quota, "M1 quota")
}

func TestCompute_ProspectNeverGated(t *testing.T) {
	// The prospect name matches the invoiced agency id; it still must not be gated.
	res := forecast.Compute(forecast.Input{
		Today:        date(2025, 3, 1),
		WindowMonths: 2,
		BlendedRate:  amt(100),
		Snapshot: forecast.Snapshot{
			Invoices: []forecast.Invoice{
				{ID: uuid.New(), AgencyID: "acme", Amount: amt(10), Status: forecast.InvoiceReceived, Date: date(2025, 3, 3)},
				{ID: uuid.New(), AgencyID: "acme", Amount: amt(10), Status: forecast.InvoiceReceived, Date: date(2025, 4, 3)},
			},
			ProjectForecasts: []forecast.ProjectForecast{
				{ID: uuid.New(), Link: forecast.ProspectLink{Name: "acme"}, MonthlyAmount: amt(800), StartDate: date(2025, 1, 1), IsActive: true},
				{ID: uuid.New(), Link: forecast.AgencyLink{AgencyID: "acme"}, MonthlyAmount: amt(900), StartDate: date(2025, 1, 1), IsActive: true},
			},
		},
	})

	assertAmount(t, 800, res.Prospects["acme"]["2025-03"], "march")
	assertAmount(t, 800, res.Prospects["acme"]["2025-04"], "april")
	assertAmount(t, 0, res.Summary.ProjectRevenue, "agency projects")
	assertAmount(t, 1600, res.Summary.ProspectRevenue, "prospects")
}

func TestCompute_DecompositionConsistency(t *testing.T) {
	snap := mixedSnapshot()
	snap.Expenses = []forecast.Expense{
		{ID: uuid.New(), Description: "rent", Amount: amt(1500), Date: date(2024, 1, 1), IsRecurring: true, Interval: forecast.IntervalMonthly},
		{ID: uuid.New(), Description: "laptop", Amount: amt(2200), Date: date(2025, 4, 2)},
	}
	snap.PayrollMembers = []forecast.PayrollMember{
		{ID: uuid.New(), Name: "Dana", MonthlyPay: amt(4000), StartDate: date(2024, 1, 1), IsActive: true},
	}

	res := forecast.Compute(forecast.Input{
		Today:        date(2025, 3, 10),
		WindowMonths: 6,
		BlendedRate:  amt(100),
		Snapshot:     snap,
	})

	var quota, invoices, retainers, projects decimal.Decimal

	for _, months := range res.Breakdown {
		for _, c := range months {
			quota = quota.Add(c.Quota)
			invoices = invoices.Add(c.Invoices)
			retainers = retainers.Add(c.Retainers)
			projects = projects.Add(c.Projects)
		}
	}

	assert.True(t, quota.Equal(res.Summary.QuotaRevenue))
	assert.True(t, invoices.Equal(res.Summary.InvoiceRevenue))
	assert.True(t, retainers.Equal(res.Summary.RetainerRevenue))
	assert.True(t, projects.Equal(res.Summary.ProjectRevenue))

	var byAgency decimal.Decimal
	for _, v := range res.TotalByAgency {
		byAgency = byAgency.Add(v)
	}

	assert.True(t, byAgency.Add(res.Summary.ProspectRevenue).Equal(res.Summary.TotalRevenue))

	// Every entry is accounted for exactly once in the summary.
	var fromEntries decimal.Decimal
	for _, e := range res.Entries {
		if e.Source != forecast.SourceExpense && e.Source != forecast.SourcePayroll {
			fromEntries = fromEntries.Add(e.Amount)
		}
	}

	assert.True(t, fromEntries.Equal(res.Summary.TotalRevenue))

	// rent 6 × 1500, laptop once, payroll twelve halves since the 15th of March is still ahead
	assertAmount(t, 6*1500+2200, res.Summary.RecurringExpenses, "expenses")
	assertAmount(t, 12*2000, res.Summary.PayrollExpenses, "payroll")
	assertAmount(t, 6*1500+2200+12*2000, res.Summary.TotalExpenses, "total expenses")
	assert.True(t, res.Summary.TotalRevenue.Sub(res.Summary.TotalExpenses).Equal(res.Summary.NetProjection))
}

func TestCompute_EndToEndQuota(t *testing.T) {
	res := forecast.Compute(forecast.Input{
		Today:        date(2025, 1, 1),
		WindowMonths: 3,
		BlendedRate:  amt(90),
		Snapshot: forecast.Snapshot{
			QuotaTargets: []forecast.QuotaTarget{
				{ID: uuid.New(), AgencyID: "agency-x", MonthlyTargetHours: amt(100)},
			},
		},
	})

	assertAmount(t, 18000, res.Summary.QuotaRevenue, "quota")
	assertAmount(t, 9000, res.Breakdown["agency-x"]["2025-02"].Quota, "february")
	assertAmount(t, 9000, res.Breakdown["agency-x"]["2025-03"].Quota, "march")
	assert.NotContains(t, res.Breakdown["agency-x"], "2025-01")
	assert.Empty(t, res.Diagnostics)
}

func TestCompute_Diagnostics(t *testing.T) {
	id := uuid.New()

	res := forecast.Compute(forecast.Input{
		Today:        date(2025, 3, 1),
		WindowMonths: 2,
		BlendedRate:  decimal.Zero,
		Snapshot: forecast.Snapshot{
			QuotaTargets: []forecast.QuotaTarget{
				{ID: uuid.New(), AgencyID: "agency-a", MonthlyTargetHours: amt(10)},
				{ID: id, AgencyID: "agency-a", MonthlyTargetHours: amt(20)},
			},
			Retainers: []forecast.Retainer{
				{ID: uuid.New(), AgencyID: "agency-a", MonthlyAmount: amt(1), StartDate: date(2025, 3, 1), EndDate: new(date(2025, 2, 1))},
			},
			Expenses: []forecast.Expense{
				{ID: uuid.New(), Description: "odd", Amount: amt(5), Date: date(2025, 3, 3), IsRecurring: true, Interval: "yearly"},
			},
		},
	})

	codes := make([]string, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		assert.Equal(t, forecast.LevelWarning, d.Level)
		codes = append(codes, d.Code)
	}

	assert.ElementsMatch(t, []string{
		forecast.CodeMissingRate,
		forecast.CodeInvertedDateRange,
		forecast.CodeDuplicateQuota,
		forecast.CodeUnknownInterval,
	}, codes)

	// The unknown-interval expense is still counted once, on its seed date.
	assertAmount(t, 5, res.Summary.RecurringExpenses, "expenses")
	assert.Empty(t, res.Breakdown)
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	snap := mixedSnapshot()
	before := snap.Merge(forecast.Snapshot{})

	forecast.Compute(forecast.Input{Today: date(2025, 3, 10), WindowMonths: 3, BlendedRate: amt(100), Snapshot: snap})

	if diff := cmp.Diff(before, snap); diff != "" {
		t.Errorf("snapshot mutated (-before +after):\n%s", diff)
	}
}

func TestSnapshot_MapAgencies(t *testing.T) {
	snap := mixedSnapshot()

	mapped := snap.MapAgencies(func(id forecast.AgencyID) forecast.AgencyID {
		if id == "agency-a" {
			return "agency-z"
		}

		return id
	})

	require.Len(t, mapped.Invoices, 2)
	assert.Equal(t, forecast.AgencyID("agency-z"), mapped.Invoices[0].AgencyID)
	assert.Equal(t, forecast.AgencyID("agency-b"), mapped.Invoices[1].AgencyID)
	assert.Equal(t, forecast.AgencyLink{AgencyID: "agency-z"}, mapped.ProjectForecasts[0].Link)
	assert.Equal(t, forecast.ProspectLink{Name: "Acme"}, mapped.ProjectForecasts[1].Link)
	assert.Equal(t, forecast.AgencyID("agency-a"), snap.Invoices[0].AgencyID)
}
