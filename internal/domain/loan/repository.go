package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	// Save fully replaces the persisted snapshot.
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row until the surrounding tx ends.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]Loan, error)
	ListAll(ctx context.Context) ([]Loan, error)
}
