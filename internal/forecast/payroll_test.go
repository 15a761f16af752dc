package forecast_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

func TestPayrollEntries(t *testing.T) {
	type args struct {
		member forecast.PayrollMember
		today  time.Time
	}

	type testCase struct {
		name      string
		args      args
		wantDates []time.Time
	}

	member := func(start time.Time, end *time.Time) forecast.PayrollMember {
		return forecast.PayrollMember{
			ID:         uuid.New(),
			Name:       "Dana",
			MonthlyPay: decimal.NewFromInt(4000),
			StartDate:  start,
			EndDate:    end,
			IsActive:   true,
		}
	}

	tests := []testCase{
		{
			name:      "HiredOnTheTenthPaysBothRemainingHalves",
			args:      args{member: member(date(2025, 3, 10), nil), today: date(2025, 3, 12)},
			wantDates: []time.Time{date(2025, 3, 15), date(2025, 3, 31)},
		},
		{
			name:      "HiredOnTheTenthAfterTheFifteenthPassed",
			args:      args{member: member(date(2025, 3, 10), nil), today: date(2025, 3, 16)},
			wantDates: []time.Time{date(2025, 3, 31)},
		},
		{
			name:      "HiredAfterTheFifteenth",
			args:      args{member: member(date(2025, 3, 20), nil), today: date(2025, 3, 12)},
			wantDates: []time.Time{date(2025, 3, 31)},
		},
		{
			name:      "FifteenthAlreadyPaid",
			args:      args{member: member(date(2024, 1, 1), nil), today: date(2025, 3, 16)},
			wantDates: []time.Time{date(2025, 3, 31)},
		},
		{
			name:      "PayDateIsToday",
			args:      args{member: member(date(2024, 1, 1), nil), today: date(2025, 3, 15)},
			wantDates: []time.Time{date(2025, 3, 15), date(2025, 3, 31)},
		},
		{
			name:      "LeavesBeforeSecondHalf",
			args:      args{member: member(date(2024, 1, 1), new(date(2025, 3, 10))), today: date(2025, 3, 1)},
			wantDates: []time.Time{date(2025, 3, 15)},
		},
		{
			name:      "LeavesOnSecondHalfStart",
			args:      args{member: member(date(2024, 1, 1), new(date(2025, 3, 16))), today: date(2025, 3, 1)},
			wantDates: []time.Time{date(2025, 3, 15), date(2025, 3, 31)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := forecast.NewWindow(tt.args.today, 1)

			entries, diags := forecast.PayrollEntries([]forecast.PayrollMember{tt.args.member}, w, tt.args.today)
			require.Empty(t, diags)

			var got []time.Time

			for _, e := range entries {
				assert.Equal(t, forecast.SourcePayroll, e.Source)
				assert.True(t, decimal.NewFromInt(2000).Equal(e.Amount), "amount %s", e.Amount)
				assert.Equal(t, "2025-03", e.Month)

				got = append(got, e.Date)
			}

			assert.Equal(t, tt.wantDates, got)
		})
	}
}

func TestPayrollEntries_Skips(t *testing.T) {
	today := date(2025, 3, 1)
	w := forecast.NewWindow(today, 2)

	zero := forecast.PayrollMember{ID: uuid.New(), Name: "Zero", StartDate: date(2024, 1, 1), IsActive: true}
	inactive := forecast.PayrollMember{
		ID:         uuid.New(),
		Name:       "Gone",
		MonthlyPay: decimal.NewFromInt(3000),
		StartDate:  date(2024, 1, 1),
	}

	entries, diags := forecast.PayrollEntries([]forecast.PayrollMember{zero, inactive}, w, today)

	assert.Empty(t, entries)
	require.Len(t, diags, 1)
	assert.Equal(t, forecast.CodeZeroPay, diags[0].Code)
	assert.Equal(t, zero.ID, diags[0].RecordID)
}

func TestPayrollEntries_OddPayIsExact(t *testing.T) {
	today := date(2025, 3, 1)
	w := forecast.NewWindow(today, 1)

	m := forecast.PayrollMember{
		ID:         uuid.New(),
		MonthlyPay: decimal.RequireFromString("3333.33"),
		StartDate:  date(2024, 1, 1),
		IsActive:   true,
	}

	entries, _ := forecast.PayrollEntries([]forecast.PayrollMember{m}, w, today)
	require.Len(t, entries, 2)

	sum := entries[0].Amount.Add(entries[1].Amount)
	assert.True(t, m.MonthlyPay.Equal(sum), "got %s", sum)
}
