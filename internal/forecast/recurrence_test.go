package forecast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

func TestExpand(t *testing.T) {
	type args struct {
		seed     time.Time
		interval forecast.Interval
		until    *time.Time
		from     time.Time
		to       time.Time
	}

	type testCase struct {
		name string
		args args
		want []time.Time
	}

	tests := []testCase{
		{
			name: "Weekly",
			args: args{
				seed:     date(2025, 1, 1),
				interval: forecast.IntervalWeekly,
				from:     date(2025, 1, 1),
				to:       date(2025, 1, 31),
			},
			want: []time.Time{
				date(2025, 1, 1), date(2025, 1, 8), date(2025, 1, 15), date(2025, 1, 22), date(2025, 1, 29),
			},
		},
		{
			name: "BiweeklySeededBeforeWindow",
			args: args{
				seed:     date(2024, 12, 20),
				interval: forecast.IntervalBiweekly,
				from:     date(2025, 1, 1),
				to:       date(2025, 1, 31),
			},
			want: []time.Time{date(2025, 1, 3), date(2025, 1, 17), date(2025, 1, 31)},
		},
		{
			name: "MonthlyClampsMonthEnd",
			args: args{
				seed:     date(2025, 1, 31),
				interval: forecast.IntervalMonthly,
				from:     date(2025, 1, 1),
				to:       date(2025, 4, 30),
			},
			want: []time.Time{date(2025, 1, 31), date(2025, 2, 28), date(2025, 3, 31), date(2025, 4, 30)},
		},
		{
			name: "StopsAtUntil",
			args: args{
				seed:     date(2025, 1, 1),
				interval: forecast.IntervalWeekly,
				until:    new(date(2025, 1, 10)),
				from:     date(2025, 1, 1),
				to:       date(2025, 1, 31),
			},
			want: []time.Time{date(2025, 1, 1), date(2025, 1, 8)},
		},
		{
			name: "UnknownIntervalOnlySeed",
			args: args{
				seed:     date(2025, 1, 5),
				interval: forecast.Interval("fortnightly"),
				from:     date(2025, 1, 1),
				to:       date(2025, 1, 31),
			},
			want: []time.Time{date(2025, 1, 5)},
		},
		{
			name: "SeedAfterWindow",
			args: args{
				seed:     date(2025, 2, 1),
				interval: forecast.IntervalWeekly,
				from:     date(2025, 1, 1),
				to:       date(2025, 1, 31),
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := forecast.Expand(tt.args.seed, tt.args.interval, tt.args.until, tt.args.from, tt.args.to)

			assert.Equal(t, tt.want, got.Dates)
			assert.False(t, got.Capped)
		})
	}
}

func TestExpand_Capped(t *testing.T) {
	// A thousand weeks from 2000 never reaches 2025.
	got := forecast.Expand(date(2000, 1, 1), forecast.IntervalWeekly, nil, date(2025, 1, 1), date(2025, 1, 31))

	assert.True(t, got.Capped)
	assert.Empty(t, got.Dates)
}
