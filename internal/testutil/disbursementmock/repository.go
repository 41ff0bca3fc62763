package disbursementmock

import (
	"context"

	domain "los-backend/internal/domain/disbursement"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// An unset GetByLoanIDFn reports ErrNotFound, i.e. "never disbursed".
type Repo struct {
	CreateFn      func(ctx context.Context, d *domain.Disbursement) error
	SaveFn        func(ctx context.Context, d *domain.Disbursement) error
	GetByLoanIDFn func(ctx context.Context, loanID uint64) (*domain.Disbursement, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Disbursement) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, d *domain.Disbursement) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID uint64) (*domain.Disbursement, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}
