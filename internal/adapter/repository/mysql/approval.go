package mysql

import (
	"context"
	"errors"

	approvalDomain "los-backend/internal/domain/approval"

	"gorm.io/gorm"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

// Create relies on ux_approvals_loan_role for one checkpoint per role per loan.
func (r *ApprovalRepository) Create(ctx context.Context, c *approvalDomain.Checkpoint) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ApprovalRepository) Save(ctx context.Context, c *approvalDomain.Checkpoint) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ApprovalRepository) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]approvalDomain.Checkpoint, error) {
	var out []approvalDomain.Checkpoint
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *ApprovalRepository) GetByLoanAndRole(ctx context.Context, loanNumericID uint64, role approvalDomain.Role) (*approvalDomain.Checkpoint, error) {
	var out approvalDomain.Checkpoint
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND role = ?", loanNumericID, role).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, approvalDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
