package disbursement

import "context"

type Repository interface {
	Create(ctx context.Context, d *Disbursement) error
	Save(ctx context.Context, d *Disbursement) error
	// GetByLoanID returns ErrNotFound when the loan was never disbursed.
	GetByLoanID(ctx context.Context, loanID uint64) (*Disbursement, error)
}
