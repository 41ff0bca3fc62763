package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"los-backend/internal/domain/approval"
	"los-backend/internal/domain/disbursement"
	"los-backend/internal/domain/event"
	domain "los-backend/internal/domain/loan"
	"los-backend/internal/domain/product"
	"los-backend/internal/domain/uow"
	"los-backend/pkg/finance"
	"los-backend/pkg/id"
)

var errNoUnitOfWork = errors.New("loan usecase: unit of work not configured")

type Usecase struct {
	loans    domain.Repository
	products product.Repository
	uow      uow.UnitOfWork

	ids      id.Generator
	now      func() time.Time
	logger   *slog.Logger
	notifier *event.Notifier
}

type Option func(*Usecase)

func WithIDGenerator(g id.Generator) Option { return func(u *Usecase) { u.ids = g } }
func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }
func WithLogger(l *slog.Logger) Option      { return func(u *Usecase) { u.logger = l } }
func WithNotifier(n *event.Notifier) Option { return func(u *Usecase) { u.notifier = n } }

// NewUsecase: loans/products serve reads, tx runs every mutation.
func NewUsecase(loans domain.Repository, products product.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		loans:    loans,
		products: products,
		uow:      tx,
		ids:      id.UUID{},
		now:      func() time.Time { return time.Now().UTC() },
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (in ApplyInput) validate() error {
	switch {
	case in.CustomerID == "":
		return fmt.Errorf("%w: customer_id is required", domain.ErrInvalidInput)
	case in.ProductID == "":
		return fmt.Errorf("%w: product_id is required", domain.ErrInvalidInput)
	case !in.RequestedAmount.IsPositive():
		return fmt.Errorf("%w: requested_amount must be positive", domain.ErrInvalidInput)
	case in.Tenor <= 0:
		return fmt.Errorf("%w: tenor must be positive", domain.ErrInvalidInput)
	case in.DownPayment.IsNegative():
		return fmt.Errorf("%w: down_payment must not be negative", domain.ErrInvalidInput)
	case !in.DownPayment.LessThan(in.RequestedAmount):
		return fmt.Errorf("%w: down_payment must be less than requested_amount", domain.ErrInvalidInput)
	}
	return nil
}

// Apply prices the application against its product and opens the loan with
// one PENDING checkpoint per role. Nothing is persisted when a check fails.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	p, err := u.products.GetByProductID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, product.ErrInactive
	}
	if err := p.CheckRange(in.RequestedAmount, in.Tenor); err != nil {
		return nil, err
	}

	monthly := finance.MonthlyRate(p.InterestRate)
	financed := in.RequestedAmount.Sub(in.DownPayment)
	installment, err := finance.Installment(financed, monthly, in.Tenor)
	if err != nil {
		return nil, fmt.Errorf("price loan: %w", err)
	}

	l := &domain.Loan{
		LoanID:             u.ids.NewID(),
		CustomerID:         in.CustomerID,
		ProductID:          p.ProductID,
		RequestedAmount:    in.RequestedAmount,
		DownPayment:        in.DownPayment,
		Tenor:              in.Tenor,
		Purpose:            in.Purpose,
		InterestRate:       p.InterestRate,
		MonthlyRate:        monthly,
		FinancedAmount:     financed,
		MonthlyInstallment: installment,
		TotalPayable:       finance.TotalPayable(installment, in.Tenor),
		Status:             domain.StatusPending,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		for _, role := range approval.Roles {
			cp := &approval.Checkpoint{
				CheckpointID: u.ids.NewID(),
				LoanID:       l.ID,
				Role:         role,
				Decision:     approval.DecisionPending,
			}
			if err := r.Approvals.Create(ctx, cp); err != nil {
				return fmt.Errorf("open %s checkpoint: %w", role, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "loan applied",
		"loan_id", l.LoanID,
		"customer_id", l.CustomerID,
		"product_id", l.ProductID,
		"financed_amount", l.FinancedAmount.StringFixed(finance.MoneyScale),
	)
	u.notifier.Notify(ctx, event.TopicLoan, u.loanEvent(event.LoanApplied, l, l.RequestedAmount))
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) ListByCustomer(ctx context.Context, customerID string) ([]LoanDTO, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer_id is required", domain.ErrInvalidInput)
	}
	ls, err := u.loans.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

func (u *Usecase) ListAll(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.loans.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

// Cancel withdraws a non-terminal loan. An approved loan whose payout is
// pending or processing cannot be cancelled until the attempt settles.
func (u *Usecase) Cancel(ctx context.Context, in CancelInput) (*LoanDTO, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	var out domain.Loan
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status.IsTerminal() {
			return domain.ErrInvalidTransition
		}
		if l.Status == domain.StatusApproved {
			d, err := r.Disbursements.GetByLoanID(ctx, l.ID)
			switch {
			case errors.Is(err, disbursement.ErrNotFound):
			case err != nil:
				return err
			case d.Status == disbursement.StatusPending || d.Status == disbursement.StatusProcessing:
				return disbursement.ErrInProgress
			}
		}
		if err := l.Cancel(in.Reason, u.now()); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = *l
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "loan cancelled", "loan_id", out.LoanID, "status", out.Status)
	u.notifier.Notify(ctx, event.TopicLoan, u.loanEvent(event.LoanCancelled, &out, out.RequestedAmount))
	return toDTO(&out), nil
}

func (u *Usecase) loanEvent(t event.Type, l *domain.Loan, amount decimal.Decimal) event.Event {
	return event.Event{
		ID:         u.ids.NewID(),
		Type:       t,
		LoanID:     l.LoanID,
		CustomerID: l.CustomerID,
		Status:     string(l.Status),
		Amount:     amount,
		Remarks:    l.Remarks,
		OccurredAt: u.now(),
	}
}
