package product

import "context"

type Repository interface {
	// GetByProductID returns ErrNotFound for unknown ids.
	GetByProductID(ctx context.Context, productID string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p *Product) error
}
