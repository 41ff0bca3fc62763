package approval

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainApproval "los-backend/internal/domain/approval"
	"los-backend/internal/domain/event"
	domainLoan "los-backend/internal/domain/loan"
	"los-backend/internal/domain/uow"
	"los-backend/pkg/id"
)

var errNoUnitOfWork = errors.New("approval usecase: unit of work not configured")

type Usecase struct {
	loanRepo     domainLoan.Repository
	approvalRepo domainApproval.Repository
	uow          uow.UnitOfWork

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

// NewUsecase: pass both repos for reads and a UoW for the locked resolution flow.
func NewUsecase(loans domainLoan.Repository, approvals domainApproval.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		loanRepo:     loans,
		approvalRepo: approvals,
		uow:          tx,
		ids:          id.UUID{},
		now:          func() time.Time { return time.Now().UTC() },
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Resolve records one role's decision and re-derives the loan status from the
// full checkpoint set. The loan row stays locked for the whole read-modify-write
// so racing resolutions on one loan see each other's decisions.
func (u *Usecase) Resolve(ctx context.Context, in ResolveInput) (*ResolutionDTO, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	role, err := domainApproval.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	decision, err := domainApproval.ParseResolution(in.Decision)
	if err != nil {
		return nil, err
	}

	var (
		out        *ResolutionDTO
		emit       event.Type
		loanAfter  domainLoan.Loan
		statusPrev domainLoan.Status
	)
	err = u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if !l.Status.InReview() {
			return domainLoan.ErrAlreadyDecided
		}
		statusPrev = l.Status

		cp, err := r.Approvals.GetByLoanAndRole(ctx, l.ID, role)
		if err != nil {
			return err
		}
		now := u.now()
		cp.Resolve(decision, in.Notes, in.ReviewerName, now)
		if err := r.Approvals.Save(ctx, cp); err != nil {
			return err
		}

		all, err := r.Approvals.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		all = withCheckpoint(all, *cp)

		switch domainApproval.Aggregate(decision, all) {
		case domainLoan.StatusRejected:
			err = l.Reject(in.Notes)
			emit = event.LoanRejected
		case domainLoan.StatusApproved:
			err = l.Approve(now)
			emit = event.LoanApproved
		default:
			err = l.TransitionTo(domainLoan.StatusUnderReview)
		}
		if err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		loanAfter = *l
		out = &ResolutionDTO{
			LoanID:      l.LoanID,
			LoanStatus:  string(l.Status),
			Remarks:     l.Remarks,
			Checkpoint:  toCheckpointDTO(cp),
			Checkpoints: toCheckpointDTOs(all),
		}
		if l.ApprovedAmount.Valid {
			amt := l.ApprovedAmount.Decimal
			out.ApprovedAmount = &amt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "checkpoint resolved",
		"loan_id", loanAfter.LoanID,
		"role", role,
		"decision", decision,
		"from", statusPrev,
		"status", loanAfter.Status,
	)
	if emit != "" {
		amount := loanAfter.RequestedAmount
		if loanAfter.ApprovedAmount.Valid {
			amount = loanAfter.ApprovedAmount.Decimal
		}
		u.notifier.Notify(ctx, event.TopicLoan, event.Event{
			ID:         u.ids.NewID(),
			Type:       emit,
			LoanID:     loanAfter.LoanID,
			CustomerID: loanAfter.CustomerID,
			Status:     string(loanAfter.Status),
			Amount:     amount,
			Remarks:    loanAfter.Remarks,
			OccurredAt: u.now(),
		})
	}
	return out, nil
}

// List returns the loan's checkpoints in creation order.
func (u *Usecase) List(ctx context.Context, loanID string) ([]CheckpointDTO, error) {
	l, err := u.loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	cs, err := u.approvalRepo.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return toCheckpointDTOs(cs), nil
}

// withCheckpoint makes sure the just-resolved checkpoint is represented by its
// updated value in the aggregate input.
func withCheckpoint(all []domainApproval.Checkpoint, cp domainApproval.Checkpoint) []domainApproval.Checkpoint {
	for i := range all {
		if all[i].Role == cp.Role {
			all[i] = cp
			return all
		}
	}
	return append(all, cp)
}
