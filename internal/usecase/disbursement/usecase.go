package disbursement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domain "los-backend/internal/domain/disbursement"
	"los-backend/internal/domain/event"
	"los-backend/internal/domain/loan"
	"los-backend/internal/domain/uow"
	"los-backend/pkg/id"
)

const (
	DefaultTimeout = 5 * time.Second
	// PROCESSING attempts older than the timeout plus this grace are abandoned.
	abandonGrace = time.Minute
)

var errNoUnitOfWork = errors.New("disbursement usecase: unit of work not configured")

type Usecase struct {
	loans         loan.Repository
	disbursements domain.Repository
	uow           uow.UnitOfWork

	processor Processor
	timeout   time.Duration
	ids       id.Generator
	now       func() time.Time
	logger    *slog.Logger
	notifier  *event.Notifier
}

type Option func(*Usecase)

func WithProcessor(p Processor) Option      { return func(u *Usecase) { u.processor = p } }
func WithTimeout(d time.Duration) Option    { return func(u *Usecase) { u.timeout = d } }
func WithIDGenerator(g id.Generator) Option { return func(u *Usecase) { u.ids = g } }
func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }
func WithLogger(l *slog.Logger) Option      { return func(u *Usecase) { u.logger = l } }
func WithNotifier(n *event.Notifier) Option { return func(u *Usecase) { u.notifier = n } }

func NewUsecase(loans loan.Repository, disbursements domain.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		loans:         loans,
		disbursements: disbursements,
		uow:           tx,
		processor:     SimulatedProcessor{},
		timeout:       DefaultTimeout,
		ids:           id.UUID{},
		now:           func() time.Time { return time.Now().UTC() },
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Disburse pays out an APPROVED loan in three steps: the attempt is opened
// under the loan lock, processed with the lock released, then settled under
// the lock again. A failed attempt is reported through the returned record
// (status FAILED) and may be retried by calling Disburse again.
func (u *Usecase) Disburse(ctx context.Context, in DisburseInput) (*DisbursementDTO, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	method, err := domain.ParseMethod(in.Method)
	if err != nil {
		return nil, err
	}

	attempt, err := u.open(ctx, in, method)
	if err != nil {
		return nil, err
	}

	pctx, cancel := context.WithTimeout(ctx, u.timeout)
	perr := u.processor.Process(pctx, *attempt)
	cancel()

	// Settle even if the caller went away; the attempt must not stay PROCESSING.
	sctx := context.WithoutCancel(ctx)
	out, err := u.settle(sctx, in.LoanID, perr)
	if err != nil {
		u.abandon(sctx, attempt, err)
		return nil, err
	}
	return out, nil
}

// abandon marks the attempt opened by this call FAILED when its settlement
// did not commit. It goes through the disbursement store directly so it does
// not depend on whatever broke the locked settle.
func (u *Usecase) abandon(ctx context.Context, attempt *domain.Disbursement, cause error) {
	d, err := u.disbursements.GetByLoanID(ctx, attempt.LoanID)
	if err == nil && d.Status == domain.StatusProcessing && d.Attempts == attempt.Attempts {
		d.Fail("settlement failed: " + cause.Error())
		err = u.disbursements.Save(ctx, d)
	}
	if err != nil {
		u.logger.ErrorContext(ctx, "disbursement left processing",
			"disbursement_id", attempt.DisbursementID,
			"attempt", attempt.Attempts,
			"settle_error", cause,
			"error", err,
		)
		return
	}
	u.logger.WarnContext(ctx, "disbursement settlement failed",
		"disbursement_id", attempt.DisbursementID,
		"attempt", attempt.Attempts,
		"error", cause,
	)
}

func (u *Usecase) open(ctx context.Context, in DisburseInput, method domain.Method) (*domain.Disbursement, error) {
	var attempt *domain.Disbursement
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusApproved {
			return loan.ErrNotApproved
		}

		d, err := r.Disbursements.GetByLoanID(ctx, l.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			d = &domain.Disbursement{
				DisbursementID: u.ids.NewID(),
				LoanID:         l.ID,
				Status:         domain.StatusPending,
			}
			applyRequest(d, l, in, method)
			if err := r.Disbursements.Create(ctx, d); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if d.Abandoned(u.now(), u.timeout+abandonGrace) {
				u.logger.WarnContext(ctx, "recovering abandoned disbursement",
					"loan_id", in.LoanID,
					"disbursement_id", d.DisbursementID,
					"attempt", d.Attempts,
				)
				d.Fail("abandoned while processing")
			}
			if err := d.Retryable(); err != nil {
				return err
			}
			applyRequest(d, l, in, method)
		}

		d.StartProcessing()
		if err := r.Disbursements.Save(ctx, d); err != nil {
			return err
		}
		attempt = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.logger.InfoContext(ctx, "disbursement processing",
		"loan_id", in.LoanID,
		"disbursement_id", attempt.DisbursementID,
		"attempt", attempt.Attempts,
	)
	return attempt, nil
}

func applyRequest(d *domain.Disbursement, l *loan.Loan, in DisburseInput, method domain.Method) {
	d.Amount = l.DisbursableAmount()
	d.Method = method
	d.AccountNumber = in.AccountNumber
	d.AccountName = in.AccountName
	d.BankCode = in.BankCode
}

func (u *Usecase) settle(ctx context.Context, loanID string, perr error) (*DisbursementDTO, error) {
	var (
		out *DisbursementDTO
		ev  event.Event
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		d, err := r.Disbursements.GetByLoanID(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("reload disbursement: %w", err)
		}
		now := u.now()

		if perr != nil {
			d.Fail(perr.Error())
			ev = u.newEvent(event.DisbursementFailed, l, d, now)
		} else {
			d.Complete(now)
			if err := l.MarkDisbursed(now); err != nil {
				return err
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			ev = u.newEvent(event.LoanDisbursed, l, d, now)
		}
		if err := r.Disbursements.Save(ctx, d); err != nil {
			return err
		}
		out = toDTO(d, l.LoanID, string(l.Status))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if perr != nil {
		u.logger.WarnContext(ctx, "disbursement failed",
			"loan_id", loanID,
			"disbursement_id", out.DisbursementID,
			"attempt", out.Attempts,
			"error", perr,
		)
	} else {
		u.logger.InfoContext(ctx, "loan disbursed",
			"loan_id", loanID,
			"disbursement_id", out.DisbursementID,
			"amount", out.Amount.String(),
		)
	}
	u.notifier.Notify(ctx, event.TopicDisbursement, ev)
	return out, nil
}

func (u *Usecase) newEvent(t event.Type, l *loan.Loan, d *domain.Disbursement, at time.Time) event.Event {
	return event.Event{
		ID:         u.ids.NewID(),
		Type:       t,
		LoanID:     l.LoanID,
		CustomerID: l.CustomerID,
		Status:     string(d.Status),
		Amount:     d.Amount,
		Remarks:    d.FailureReason,
		OccurredAt: at,
	}
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*DisbursementDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	d, err := u.disbursements.GetByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(d, l.LoanID, string(l.Status)), nil
}
