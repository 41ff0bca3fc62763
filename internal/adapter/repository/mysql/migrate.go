package mysql

import (
	"context"
	"fmt"

	"los-backend/internal/domain/approval"
	"los-backend/internal/domain/disbursement"
	"los-backend/internal/domain/loan"
	"los-backend/internal/domain/product"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table owned by the service.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&product.Product{}, &loan.Loan{}, &approval.Checkpoint{}, &disbursement.Disbursement{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// DefaultProducts is the starter catalog: one product per product type.
func DefaultProducts() []product.Product {
	return []product.Product{
		{
			ProductID:    "MOTOR-STD",
			Name:         "Kredit Motor",
			Description:  "Two-wheeler financing",
			Type:         product.TypeMotor,
			MinAmount:    decimal.NewFromInt(5_000_000),
			MaxAmount:    decimal.NewFromInt(50_000_000),
			MinTenor:     6,
			MaxTenor:     36,
			InterestRate: decimal.NewFromInt(12),
			Active:       true,
		},
		{
			ProductID:    "MOBIL-STD",
			Name:         "Kredit Mobil",
			Description:  "Car financing",
			Type:         product.TypeMobil,
			MinAmount:    decimal.NewFromInt(50_000_000),
			MaxAmount:    decimal.NewFromInt(500_000_000),
			MinTenor:     12,
			MaxTenor:     60,
			InterestRate: decimal.RequireFromString("9.5"),
			Active:       true,
		},
		{
			ProductID:    "MULTIGUNA-STD",
			Name:         "Kredit Multiguna",
			Description:  "Multipurpose financing",
			Type:         product.TypeMultiguna,
			MinAmount:    decimal.NewFromInt(10_000_000),
			MaxAmount:    decimal.NewFromInt(200_000_000),
			MinTenor:     6,
			MaxTenor:     48,
			InterestRate: decimal.NewFromInt(14),
			Active:       true,
		},
	}
}

// SeedDefaultProducts inserts DefaultProducts without touching existing rows.
func SeedDefaultProducts(ctx context.Context, db *gorm.DB) error {
	return NewProductRepository(db).Seed(ctx, DefaultProducts())
}
