package product

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "los-backend/internal/domain/product"
)

type ProductDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Type         string          `json:"type"`
	MinAmount    decimal.Decimal `json:"min_amount"`
	MaxAmount    decimal.Decimal `json:"max_amount"`
	MinTenor     int             `json:"min_tenor"`
	MaxTenor     int             `json:"max_tenor"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

// List returns the catalog; inactive products are included only when asked.
func (u *Usecase) List(ctx context.Context, includeInactive bool) ([]ProductDTO, error) {
	ps, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProductDTO, 0, len(ps))
	for i := range ps {
		if !ps[i].Active && !includeInactive {
			continue
		}
		out = append(out, toDTO(&ps[i]))
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, productID string) (*ProductDTO, error) {
	p, err := u.repo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(p)
	return &dto, nil
}

func toDTO(p *domain.Product) ProductDTO {
	return ProductDTO{
		ProductID:    p.ProductID,
		Name:         p.Name,
		Description:  p.Description,
		Type:         string(p.Type),
		MinAmount:    p.MinAmount,
		MaxAmount:    p.MaxAmount,
		MinTenor:     p.MinTenor,
		MaxTenor:     p.MaxTenor,
		InterestRate: p.InterestRate,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
	}
}
