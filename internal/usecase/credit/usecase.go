package credit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	domain "los-backend/internal/domain/credit"
	"los-backend/internal/domain/errs"
	"los-backend/pkg/id"
)

var ErrCustomerRequired = errs.New(errs.ErrValidation, "customer_id is required")

// VerdictObserver receives every verdict the engine produces.
type VerdictObserver interface {
	ObserveVerdict(v domain.Verdict)
}

type CheckInput struct {
	CustomerID      string          `json:"customer_id"`
	LoanID          string          `json:"loan_id"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	ExistingDebt    decimal.Decimal `json:"existing_debt"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
}

type CheckDTO struct {
	CheckID         string          `json:"check_id"`
	CustomerID      string          `json:"customer_id"`
	LoanID          string          `json:"loan_id,omitempty"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	ExistingDebt    decimal.Decimal `json:"existing_debt"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Installment     decimal.Decimal `json:"installment"`
	DTIRatio        decimal.Decimal `json:"dti_ratio"`
	CreditScore     int             `json:"credit_score"`
	Verdict         string          `json:"verdict"`
	Remarks         string          `json:"remarks"`
	CheckedAt       time.Time       `json:"checked_at"`
}

type Usecase struct {
	engine   *domain.Engine
	ids      id.Generator
	now      func() time.Time
	logger   *slog.Logger
	observer VerdictObserver
}

type Option func(*Usecase)

func WithIDGenerator(g id.Generator) Option { return func(u *Usecase) { u.ids = g } }
func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }
func WithLogger(l *slog.Logger) Option      { return func(u *Usecase) { u.logger = l } }
func WithObserver(o VerdictObserver) Option { return func(u *Usecase) { u.observer = o } }

func NewUsecase(engine *domain.Engine, opts ...Option) *Usecase {
	if engine == nil {
		engine = domain.NewEngine()
	}
	u := &Usecase{
		engine: engine,
		ids:    id.UUID{},
		now:    func() time.Time { return time.Now().UTC() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Check runs a risk assessment. It never touches loan state; callers decide
// what to do with the verdict.
func (u *Usecase) Check(ctx context.Context, in CheckInput) (*CheckDTO, error) {
	if in.CustomerID == "" {
		return nil, ErrCustomerRequired
	}
	ra, err := u.engine.Assess(domain.ApplicantFinancials{
		MonthlyIncome:   in.MonthlyIncome,
		ExistingDebt:    in.ExistingDebt,
		RequestedAmount: in.RequestedAmount,
	})
	if err != nil {
		return nil, fmt.Errorf("assess customer %s: %w", in.CustomerID, err)
	}
	if u.observer != nil {
		u.observer.ObserveVerdict(ra.Verdict)
	}

	out := &CheckDTO{
		CheckID:         u.ids.NewID(),
		CustomerID:      in.CustomerID,
		LoanID:          in.LoanID,
		MonthlyIncome:   in.MonthlyIncome,
		ExistingDebt:    in.ExistingDebt,
		RequestedAmount: in.RequestedAmount,
		Installment:     ra.Installment,
		DTIRatio:        ra.DTIRatio,
		CreditScore:     ra.Score,
		Verdict:         string(ra.Verdict),
		Remarks:         ra.Remarks,
		CheckedAt:       u.now(),
	}
	u.logger.InfoContext(ctx, "credit check",
		"check_id", out.CheckID,
		"customer_id", out.CustomerID,
		"verdict", out.Verdict,
		"score", out.CreditScore,
		"dti", out.DTIRatio.StringFixed(2),
	)
	return out, nil
}
