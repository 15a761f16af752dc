package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	type args struct {
		months string
		today  string
		rate   string
	}

	type testCase struct {
		name       string
		args       args
		wantMonths int
		wantToday  *time.Time
		wantRate   string
		wantErr    bool
	}

	jan15 := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{name: "Defaults", args: args{}},
		{
			name:       "AllSet",
			args:       args{months: " 12 ", today: "2025-01-15", rate: "1.234,50"},
			wantMonths: 12,
			wantToday:  &jan15,
			wantRate:   "1234.5",
		},
		{name: "MonthsTooLarge", args: args{months: "37"}, wantErr: true},
		{name: "MonthsZero", args: args{months: "0"}, wantErr: true},
		{name: "BadDate", args: args{today: "15-01-2025"}, wantErr: true},
		{name: "NegativeRate", args: args{rate: "-10"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWindow(tt.args.months, tt.args.today, tt.args.rate, 36)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMonths, got.WindowMonths)
			assert.Equal(t, tt.wantToday, got.Today)

			if tt.wantRate == "" {
				assert.Nil(t, got.BlendedRate)
				return
			}

			require.NotNil(t, got.BlendedRate)
			assert.Equal(t, tt.wantRate, got.BlendedRate.String())
		})
	}
}

func TestWindowPicker_Enter(t *testing.T) {
	p := NewWindowPicker(6, 36)

	for _, r := range "9" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(WindowSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, 9, msg.Request.WindowMonths)
	assert.NoError(t, p.err)
}

func TestWindowPicker_InvalidStaysOpen(t *testing.T) {
	p := NewWindowPicker(6, 3)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Error(t, p.err)
	assert.Contains(t, p.View(), "months must be")
}
