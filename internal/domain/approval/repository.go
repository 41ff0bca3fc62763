package approval

import "context"

type Repository interface {
	Create(ctx context.Context, c *Checkpoint) error
	Save(ctx context.Context, c *Checkpoint) error

	// ListByLoanID returns the loan's checkpoints (numeric loan FK).
	ListByLoanID(ctx context.Context, loanID uint64) ([]Checkpoint, error)

	// GetByLoanAndRole returns ErrNotFound when the role was never opened.
	GetByLoanAndRole(ctx context.Context, loanID uint64, role Role) (*Checkpoint, error)
}
