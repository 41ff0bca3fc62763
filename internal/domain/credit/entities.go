package credit

import (
	"github.com/shopspring/decimal"

	"los-backend/internal/domain/errs"
)

var (
	// ErrZeroIncome is a caller contract violation: income is a divisor.
	ErrZeroIncome     = errs.New(errs.ErrArithmetic, "monthly income must be greater than zero")
	ErrNegativeAmount = errs.New(errs.ErrValidation, "existing debt and requested amount must not be negative")
)

type Verdict string

const (
	VerdictApproved Verdict = "APPROVED"
	VerdictRejected Verdict = "REJECTED"
	VerdictReview   Verdict = "REVIEW"
)

type ApplicantFinancials struct {
	MonthlyIncome   decimal.Decimal
	ExistingDebt    decimal.Decimal
	RequestedAmount decimal.Decimal
}

// RiskAssessment is a transient, immutable engine result.
type RiskAssessment struct {
	Installment decimal.Decimal // assumed installment on the requested amount
	DTIRatio    decimal.Decimal // percent, 2 places
	Score       int             // [MinScore, MaxScore]
	Verdict     Verdict
	Remarks     string
}
