package mysql

import (
	"context"
	"errors"

	disbursementDomain "los-backend/internal/domain/disbursement"

	"gorm.io/gorm"
)

type DisbursementRepository struct{ db *gorm.DB }

func NewDisbursementRepository(db *gorm.DB) *DisbursementRepository {
	return &DisbursementRepository{db: db}
}

func (r *DisbursementRepository) Create(ctx context.Context, d *disbursementDomain.Disbursement) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DisbursementRepository) Save(ctx context.Context, d *disbursementDomain.Disbursement) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DisbursementRepository) GetByLoanID(ctx context.Context, loanNumericID uint64) (*disbursementDomain.Disbursement, error) {
	var out disbursementDomain.Disbursement
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanNumericID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, disbursementDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
