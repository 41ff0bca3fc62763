package product

import (
	"time"

	"github.com/shopspring/decimal"

	"los-backend/internal/domain/errs"
)

var (
	ErrNotFound         = errs.New(errs.ErrNotFound, "product not found")
	ErrInactive         = errs.New(errs.ErrValidation, "product is not available")
	ErrAmountOutOfRange = errs.New(errs.ErrValidation, "loan amount out of product range")
	ErrTenorOutOfRange  = errs.New(errs.ErrValidation, "tenor out of product range")
)

type Type string

const (
	TypeMotor     Type = "MOTOR"
	TypeMobil     Type = "MOBIL"
	TypeMultiguna Type = "MULTIGUNA"
)

// Product is the catalog's read-only loan terms (table: loan_products).
type Product struct {
	ID           uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ProductID    string          `gorm:"column:product_id;size:64;not null;uniqueIndex:ux_loan_products_product_id" json:"product_id"`
	Name         string          `gorm:"column:name;size:100;not null" json:"name"`
	Description  string          `gorm:"column:description;size:500" json:"description"`
	Type         Type            `gorm:"column:type;size:20;not null" json:"type"`
	MinAmount    decimal.Decimal `gorm:"column:min_amount;type:decimal(15,2);not null" json:"min_amount"`
	MaxAmount    decimal.Decimal `gorm:"column:max_amount;type:decimal(15,2);not null" json:"max_amount"`
	MinTenor     int             `gorm:"column:min_tenor;not null" json:"min_tenor"`
	MaxTenor     int             `gorm:"column:max_tenor;not null" json:"max_tenor"`
	InterestRate decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interest_rate"` // annual %
	Active       bool            `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "loan_products" }

// CheckRange verifies amount ∈ [MinAmount, MaxAmount] and tenor ∈ [MinTenor, MaxTenor].
func (p *Product) CheckRange(amount decimal.Decimal, tenor int) error {
	if amount.LessThan(p.MinAmount) || amount.GreaterThan(p.MaxAmount) {
		return ErrAmountOutOfRange
	}
	if tenor < p.MinTenor || tenor > p.MaxTenor {
		return ErrTenorOutOfRange
	}
	return nil
}
