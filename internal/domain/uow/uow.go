package uow

import (
	"context"

	"los-backend/internal/domain/approval"
	"los-backend/internal/domain/disbursement"
	"los-backend/internal/domain/loan"
)

// Repos are bound to the surrounding transaction.
type Repos struct {
	Loans         loan.Repository
	Approvals     approval.Repository
	Disbursements disbursement.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first and passes it in; every mutation
	// of a loan or its checkpoints/disbursement goes through here so racing
	// calls on the same loan are serialized.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
