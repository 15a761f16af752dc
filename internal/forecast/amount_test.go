package forecast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name   string
		input  string
		want   string
		wantOK bool
	}

	tests := []testCase{
		{name: "Plain", input: "1234.56", want: "1234.56", wantOK: true},
		{name: "European", input: "1.234,56", want: "1234.56", wantOK: true},
		{name: "CommaDecimal", input: "10,5", want: "10.5", wantOK: true},
		{name: "ThousandsComma", input: "12,345.00", want: "12345", wantOK: true},
		{name: "Negative", input: "-588,74", want: "-588.74", wantOK: true},
		{name: "CurrencySymbol", input: "$ 90", want: "90", wantOK: true},
		{name: "SignBeforeSymbol", input: "-$5", want: "-5", wantOK: true},
		{name: "SymbolBeforeSign", input: "€-12,50", want: "-12.5", wantOK: true},
		{name: "USThousands", input: "1,500", want: "1500", wantOK: true},
		{name: "EuropeanThousands", input: "1.500", want: "1500", wantOK: true},
		{name: "TwoDigitGroup", input: "12,345", want: "12345", wantOK: true},
		{name: "RepeatedGrouping", input: "1,234,567", want: "1234567", wantOK: true},
		{name: "RepeatedEuropeanGrouping", input: "1.234.567,89", want: "1234567.89", wantOK: true},
		{name: "NegativeThousands", input: "-$1,500", want: "-1500", wantOK: true},
		{name: "ThreeDecimalsAfterZero", input: "0,500", want: "0.5", wantOK: true},
		{name: "ThreeDecimalsLongHead", input: "1666.665", want: "1666.665", wantOK: true},
		{name: "Empty", input: "  ", want: "0", wantOK: false},
		{name: "Garbage", input: "n/a", want: "0", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := forecast.ParseAmount(tt.input)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDisplay(t *testing.T) {
	half, _ := forecast.ParseAmount("1666.665")

	assert.Equal(t, "1666.67", forecast.Display(half))
	assert.Equal(t, "9000.00", forecast.Display(amt(9000)))
}
