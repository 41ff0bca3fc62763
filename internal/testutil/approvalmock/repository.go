package approvalmock

import (
	"context"

	domain "los-backend/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, c *domain.Checkpoint) error
	SaveFn             func(ctx context.Context, c *domain.Checkpoint) error
	ListByLoanIDFn     func(ctx context.Context, loanID uint64) ([]domain.Checkpoint, error)
	GetByLoanAndRoleFn func(ctx context.Context, loanID uint64, role domain.Role) (*domain.Checkpoint, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Checkpoint) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Checkpoint) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Checkpoint, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanAndRole(ctx context.Context, loanID uint64, role domain.Role) (*domain.Checkpoint, error) {
	if m.GetByLoanAndRoleFn != nil {
		return m.GetByLoanAndRoleFn(ctx, loanID, role)
	}
	return nil, context.Canceled
}
