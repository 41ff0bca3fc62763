package credit

import (
	"fmt"

	"github.com/shopspring/decimal"

	"los-backend/pkg/finance"
)

const (
	BaseScore = 700
	MinScore  = 300
	MaxScore  = 850

	// Applicant installments are priced at a flat 1%/month over 24 months,
	// regardless of the product eventually chosen.
	assumedTenor = 24
)

var (
	assumedMonthlyRate = decimal.RequireFromString("0.01")

	dtiAutoReject  = decimal.NewFromInt(40)
	dtiAutoApprove = decimal.NewFromInt(20)

	highIncome   = decimal.NewFromInt(20_000_000)
	middleIncome = decimal.NewFromInt(10_000_000)

	minApproveScore = 750
	minScore        = 500

	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// dtiBands are evaluated in ascending order with strict less-than; the first
// match wins and anything at or above the last bound takes fallbackDTIAdjust.
var dtiBands = []struct {
	below  decimal.Decimal
	adjust int
}{
	{decimal.NewFromInt(10), +100},
	{decimal.NewFromInt(20), +50},
	{decimal.NewFromInt(30), +20},
	{decimal.NewFromInt(40), -50},
}

const fallbackDTIAdjust = -200

// Engine is the rule-based credit decisioning service. It holds no state and
// is safe for concurrent use.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Assess computes DTI, synthetic score and verdict for the applicant.
// Identical inputs always produce identical assessments, remarks included.
func (e *Engine) Assess(f ApplicantFinancials) (RiskAssessment, error) {
	if !f.MonthlyIncome.IsPositive() {
		return RiskAssessment{}, ErrZeroIncome
	}
	if f.ExistingDebt.IsNegative() || f.RequestedAmount.IsNegative() {
		return RiskAssessment{}, ErrNegativeAmount
	}

	installment, err := finance.Installment(f.RequestedAmount, assumedMonthlyRate, assumedTenor)
	if err != nil {
		return RiskAssessment{}, err
	}
	dti := debtToIncome(f.ExistingDebt.Add(installment), f.MonthlyIncome)
	score := syntheticScore(dti, f.MonthlyIncome, f.ExistingDebt)
	verdict, reason := decide(dti, score, f.MonthlyIncome)

	return RiskAssessment{
		Installment: installment,
		DTIRatio:    dti,
		Score:       score,
		Verdict:     verdict,
		Remarks:     fmt.Sprintf("DTI Ratio: %s%%. Credit Score: %d. %s", dti.StringFixed(finance.MoneyScale), score, reason),
	}, nil
}

// debtToIncome is (totalDebt / income) to 4 places, ×100, then 2 places.
func debtToIncome(totalDebt, income decimal.Decimal) decimal.Decimal {
	return totalDebt.DivRound(income, 4).Mul(hundred).Round(finance.MoneyScale)
}

func syntheticScore(dti, income, debt decimal.Decimal) int {
	score := BaseScore

	adjust := fallbackDTIAdjust
	for _, b := range dtiBands {
		if dti.LessThan(b.below) {
			adjust = b.adjust
			break
		}
	}
	score += adjust

	switch {
	case income.GreaterThanOrEqual(highIncome):
		score += 100
	case income.GreaterThanOrEqual(middleIncome):
		score += 50
	}

	switch {
	case debt.GreaterThan(income):
		score -= 100
	case debt.GreaterThan(income.DivRound(two, finance.MoneyScale)):
		score -= 50
	}

	return min(MaxScore, max(MinScore, score))
}

// decide applies the verdict rules in priority order; REVIEW is the fallback.
func decide(dti decimal.Decimal, score int, income decimal.Decimal) (Verdict, string) {
	switch {
	case dti.GreaterThan(dtiAutoReject):
		return VerdictRejected, "DTI ratio exceeds maximum threshold (40%)."
	case score < minScore:
		return VerdictRejected, "Credit score below minimum requirement."
	case dti.LessThan(dtiAutoApprove) && score >= minApproveScore && income.GreaterThanOrEqual(highIncome):
		return VerdictApproved, "Low risk profile. Auto-approved."
	default:
		return VerdictReview, "Manual review required. Medium risk profile."
	}
}
