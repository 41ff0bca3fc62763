package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMonthlyRate(t *testing.T) {
	tests := []struct {
		annual string
		want   string
	}{
		{"12", "0.01"},
		{"10.5", "0.0088"}, // 0.105 / 12 = 0.00875 -> half-up
		{"0", "0"},
		{"24", "0.02"},
	}
	for _, tt := range tests {
		t.Run(tt.annual, func(t *testing.T) {
			got := MonthlyRate(dec(tt.annual))
			assert.True(t, dec(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestInstallment(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		tenor     int
		want      string
	}{
		{"credit engine assumption 10M", "10000000", "0.01", 24, "470734.72"},
		{"credit engine assumption 5M", "5000000", "0.01", 24, "235367.36"},
		{"one year at 1%", "15000000", "0.01", 12, "1332731.83"},
		{"rounded monthly rate", "15000000", "0.0088", 12, "1322648.27"},
		{"zero rate splits evenly", "1200000", "0", 12, "100000.00"},
		{"zero principal", "0", "0.01", 24, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Installment(dec(tt.principal), dec(tt.rate), tt.tenor)
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestInstallment_InvalidTenor(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Installment(dec("1000"), dec("0.01"), n)
		assert.ErrorIs(t, err, ErrInvalidTenor)
	}
}

func TestTotalPayable(t *testing.T) {
	got := TotalPayable(dec("1332731.83"), 12)
	assert.True(t, dec("15992781.96").Equal(got), "got %s", got)
}
