package mysql

import (
	"context"
	"errors"

	productDomain "los-backend/internal/domain/product"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) GetByProductID(ctx context.Context, productID string) (*productDomain.Product, error) {
	var out productDomain.Product
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, productDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]productDomain.Product, error) {
	var out []productDomain.Product
	err := r.db.WithContext(ctx).Order("product_id ASC").Find(&out).Error
	return out, err
}

func (r *ProductRepository) Create(ctx context.Context, p *productDomain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Seed inserts the given products, leaving existing product_ids untouched.
func (r *ProductRepository) Seed(ctx context.Context, products []productDomain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "product_id"}}, DoNothing: true}).
		Create(&products).Error
}
