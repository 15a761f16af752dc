package sheet_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
	"github.com/MrJamesThe3rd/agencyops/internal/importer/sheet"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Invoices(t *testing.T) {
	csv := `id,agency,amount,status,date,due_date,realization_date,forecast_month
7b1c7a56-3f0e-4c61-9a53-4b51b6a0f0a1,acme,1200.50,pending,2025-03-05,2025-04-04,,
,globex,"2,000.00",Received,2025-02-10,,2025-02-20,2025-03
`

	snap, err := sheet.NewParser(sheet.Invoices).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, snap.Invoices, 2)
	assert.Empty(t, snap.Diagnostics)

	first := snap.Invoices[0]
	assert.Equal(t, uuid.MustParse("7b1c7a56-3f0e-4c61-9a53-4b51b6a0f0a1"), first.ID)
	assert.Equal(t, forecast.AgencyID("acme"), first.AgencyID)
	assert.Equal(t, "1200.5", first.Amount.String())
	assert.Equal(t, forecast.InvoicePending, first.Status)
	assert.Equal(t, date(2025, 3, 5), first.Date)
	require.NotNil(t, first.DueDate)
	assert.Equal(t, date(2025, 4, 4), *first.DueDate)
	assert.Nil(t, first.RealizationDate)
	assert.Nil(t, first.ForecastMonth)

	second := snap.Invoices[1]
	assert.NotEqual(t, uuid.Nil, second.ID)
	assert.Equal(t, "2000", second.Amount.String())
	assert.Equal(t, forecast.InvoiceReceived, second.Status)
	require.NotNil(t, second.ForecastMonth)
	assert.Equal(t, date(2025, 3, 1), *second.ForecastMonth)
}

func TestParser_SemicolonWithPreamble(t *testing.T) {
	csv := `Retainers export;31-01-2026

Agency ID;Monthly Amount;Start Date;End Date
acme;1.500,00;01-01-2025;
globex;750,5;15-06-2025;31-12-2025
`

	snap, err := sheet.NewParser(sheet.Retainers).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, snap.Retainers, 2)

	assert.Equal(t, "1500", snap.Retainers[0].MonthlyAmount.String())
	assert.Equal(t, date(2025, 1, 1), snap.Retainers[0].StartDate)
	assert.Nil(t, snap.Retainers[0].EndDate)

	assert.Equal(t, "750.5", snap.Retainers[1].MonthlyAmount.String())
	require.NotNil(t, snap.Retainers[1].EndDate)
	assert.Equal(t, date(2025, 12, 31), *snap.Retainers[1].EndDate)
}

func TestParser_Projects(t *testing.T) {
	csv := `agency,prospect,monthly_amount,start_date,end_date,is_active
acme,,3000,2025-01-01,,yes
,Initech,1500,2025-02-01,2025-06-30,
acme,Initech,100,2025-01-01,,no
,,200,2025-01-01,,true
`

	snap, err := sheet.NewParser(sheet.Projects).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, snap.ProjectForecasts, 4)

	assert.Equal(t, forecast.AgencyLink{AgencyID: "acme"}, snap.ProjectForecasts[0].Link)
	assert.True(t, snap.ProjectForecasts[0].IsActive)

	assert.Equal(t, forecast.ProspectLink{Name: "Initech"}, snap.ProjectForecasts[1].Link)
	assert.True(t, snap.ProjectForecasts[1].IsActive)

	assert.Equal(t, forecast.AgencyLink{AgencyID: "acme"}, snap.ProjectForecasts[2].Link)
	assert.False(t, snap.ProjectForecasts[2].IsActive)

	assert.Equal(t, forecast.AgencyLink{AgencyID: forecast.Unassigned}, snap.ProjectForecasts[3].Link)

	require.Len(t, snap.Diagnostics, 2)
	assert.Equal(t, forecast.CodeLinkBothSet, snap.Diagnostics[0].Code)
	assert.Contains(t, snap.Diagnostics[0].Message, "projects line 4")
	assert.Equal(t, snap.ProjectForecasts[2].ID, snap.Diagnostics[0].RecordID)
	assert.Equal(t, forecast.CodeLinkMissing, snap.Diagnostics[1].Code)
}

func TestParser_ExpensesAndPayroll(t *testing.T) {
	expenses := `description,amount,date,interval,recurrence_end
Rent,1500,2025-01-01,monthly,
Laptop,2200,2025-04-02,,
Cleaning,80,2025-01-06,Weekly,2025-03-31
`

	snap, err := sheet.NewParser(sheet.Expenses).Parse(strings.NewReader(expenses))
	require.NoError(t, err)
	require.Len(t, snap.Expenses, 3)

	assert.True(t, snap.Expenses[0].IsRecurring)
	assert.Equal(t, forecast.IntervalMonthly, snap.Expenses[0].Interval)
	assert.False(t, snap.Expenses[1].IsRecurring)
	assert.Equal(t, forecast.IntervalWeekly, snap.Expenses[2].Interval)
	require.NotNil(t, snap.Expenses[2].RecurrenceEnd)

	payroll := `name,monthly_pay,start_date,end_date,active
Dana,4000,2024-01-01,,
Lee,3500,2024-06-01,2025-05-31,0
`

	snap, err = sheet.NewParser(sheet.Payroll).Parse(strings.NewReader(payroll))
	require.NoError(t, err)
	require.Len(t, snap.PayrollMembers, 2)

	assert.Equal(t, "Dana", snap.PayrollMembers[0].Name)
	assert.True(t, snap.PayrollMembers[0].IsActive)
	assert.False(t, snap.PayrollMembers[1].IsActive)
}

func TestParser_BadCells(t *testing.T) {
	csv := `agency,hours,no_quota
acme,lots,
globex,40,x
`

	snap, err := sheet.NewParser(sheet.Quotas).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, snap.QuotaTargets, 2)

	assert.True(t, snap.QuotaTargets[0].MonthlyTargetHours.IsZero())
	assert.True(t, snap.QuotaTargets[1].NoQuota)

	require.Len(t, snap.Diagnostics, 1)
	assert.Equal(t, forecast.CodeInvalidAmount, snap.Diagnostics[0].Code)
	assert.Equal(t, forecast.LevelWarning, snap.Diagnostics[0].Level)
}

func TestParser_BadRequiredDateSkipsRow(t *testing.T) {
	csv := `name,monthly_pay,start_date
Dana,4000,someday
Lee,3500,2024-06-01
`

	snap, err := sheet.NewParser(sheet.Payroll).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, snap.PayrollMembers, 1)
	assert.Equal(t, "Lee", snap.PayrollMembers[0].Name)

	require.Len(t, snap.Diagnostics, 1)
	assert.Equal(t, forecast.LevelCritical, snap.Diagnostics[0].Level)
	assert.Equal(t, forecast.CodeInvalidDate, snap.Diagnostics[0].Code)
	assert.Contains(t, snap.Diagnostics[0].Message, "payroll line 2")
}

func TestParser_UnknownStatus(t *testing.T) {
	csv := "agency,amount,status,date\nacme,10,void,2025-01-01\n"

	snap, err := sheet.NewParser(sheet.Invoices).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, snap.Invoices, 1)
	require.Len(t, snap.Diagnostics, 1)
	assert.Equal(t, forecast.CodeUnknownStatus, snap.Diagnostics[0].Code)
}

func TestParser_StableIDs(t *testing.T) {
	csv := "agency,hours\nacme,10\n"

	a, err := sheet.NewParser(sheet.Quotas).Parse(strings.NewReader(csv))
	require.NoError(t, err)

	b, err := sheet.NewParser(sheet.Quotas).Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, a.QuotaTargets[0].ID, b.QuotaTargets[0].ID)
}

func TestParser_IDsSurviveReordering(t *testing.T) {
	byAgency := func(snap forecast.Snapshot) map[string][]uuid.UUID {
		out := make(map[string][]uuid.UUID)
		for _, q := range snap.QuotaTargets {
			out[string(q.AgencyID)] = append(out[string(q.AgencyID)], q.ID)
		}

		return out
	}

	sorted := "agency,hours\nacme,10\nglobex,20\n"
	reordered := "agency,hours\nglobex,20\nacme,10\n"

	a, err := sheet.NewParser(sheet.Quotas).Parse(strings.NewReader(sorted))
	require.NoError(t, err)

	b, err := sheet.NewParser(sheet.Quotas).Parse(strings.NewReader(reordered))
	require.NoError(t, err)

	assert.Equal(t, byAgency(a), byAgency(b))
}

func TestParser_IdenticalRowsGetDistinctIDs(t *testing.T) {
	csv := "agency,hours\nacme,10\nacme,10\n"

	snap, err := sheet.NewParser(sheet.Quotas).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, snap.QuotaTargets, 2)

	assert.NotEqual(t, snap.QuotaTargets[0].ID, snap.QuotaTargets[1].ID)
}

func TestParser_Windows1252(t *testing.T) {
	csv := "name;monthly_pay;start_date\nJoão;2.500,00;01-02-2025\n"

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	snap, err := sheet.NewParser(sheet.Payroll).Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, snap.PayrollMembers, 1)

	assert.Equal(t, "João", snap.PayrollMembers[0].Name)
	assert.Equal(t, "2500", snap.PayrollMembers[0].MonthlyPay.String())
	assert.Equal(t, date(2025, 2, 1), snap.PayrollMembers[0].StartDate)
}

func TestParser_NoHeader(t *testing.T) {
	_, err := sheet.NewParser(sheet.Invoices).Parse(strings.NewReader("foo,bar\n1,2\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no invoices header found")
}
