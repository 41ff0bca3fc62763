// Package finance holds the fixed-point loan arithmetic shared by the credit
// engine and the approval workflow. Every rounding point is half-up.
package finance

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Scales used at each rounding point.
const (
	MoneyScale    int32 = 2
	RateScale     int32 = 4
	DiscountScale int32 = 10
)

var ErrInvalidTenor = errors.New("finance: tenor must be positive")

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// MonthlyRate converts a nominal annual percentage (e.g. 12.5) into a monthly
// fraction: annual/100 and then /12, each rounded to 4 places.
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.DivRound(hundred, RateScale).DivRound(twelve, RateScale)
}

// Installment returns the fixed amortizing payment P·r / (1 − (1+r)^−n).
// The discount factor (1+r)^−n is taken to 10 places and the payment to 2.
// A zero rate splits the principal evenly.
func Installment(principal, monthlyRate decimal.Decimal, tenor int) (decimal.Decimal, error) {
	if tenor <= 0 {
		return decimal.Zero, ErrInvalidTenor
	}
	n := decimal.NewFromInt(int64(tenor))
	if monthlyRate.IsZero() {
		return principal.DivRound(n, MoneyScale), nil
	}

	growth := compound(decimal.NewFromInt(1).Add(monthlyRate), tenor)
	discount := decimal.NewFromInt(1).DivRound(growth, DiscountScale)
	denominator := decimal.NewFromInt(1).Sub(discount)

	return principal.Mul(monthlyRate).DivRound(denominator, MoneyScale), nil
}

// TotalPayable is installment × tenor.
func TotalPayable(installment decimal.Decimal, tenor int) decimal.Decimal {
	return installment.Mul(decimal.NewFromInt(int64(tenor)))
}

// compound raises base to a positive integer power exactly.
func compound(base decimal.Decimal, n int) decimal.Decimal {
	out := decimal.NewFromInt(1)
	for i := 0; i < n; i++ {
		out = out.Mul(base)
	}
	return out
}
