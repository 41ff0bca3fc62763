// Package sqlitedb opens in-memory sqlite databases migrated with a
// sqlite-safe mirror of the service schema (text money columns, no MySQL
// column types), for repository and workflow tests.
package sqlitedb

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type productRow struct {
	ID           uint64 `gorm:"primaryKey;column:id;autoIncrement"`
	ProductID    string `gorm:"column:product_id;uniqueIndex"`
	Name         string `gorm:"column:name"`
	Description  string `gorm:"column:description"`
	Type         string `gorm:"column:type"`
	MinAmount    string `gorm:"column:min_amount;type:text"`
	MaxAmount    string `gorm:"column:max_amount;type:text"`
	MinTenor     int    `gorm:"column:min_tenor"`
	MaxTenor     int    `gorm:"column:max_tenor"`
	InterestRate string `gorm:"column:interest_rate;type:text"`
	Active       bool   `gorm:"column:active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (productRow) TableName() string { return "loan_products" }

type loanRow struct {
	ID                 uint64  `gorm:"primaryKey;column:id;autoIncrement"`
	LoanID             string  `gorm:"column:loan_id;uniqueIndex"`
	CustomerID         string  `gorm:"column:customer_id;index"`
	ProductID          string  `gorm:"column:product_id"`
	RequestedAmount    string  `gorm:"column:requested_amount;type:text"`
	DownPayment        string  `gorm:"column:down_payment;type:text"`
	Tenor              int     `gorm:"column:tenor"`
	Purpose            string  `gorm:"column:purpose"`
	InterestRate       string  `gorm:"column:interest_rate;type:text"`
	MonthlyRate        string  `gorm:"column:monthly_rate;type:text"`
	FinancedAmount     string  `gorm:"column:financed_amount;type:text"`
	MonthlyInstallment string  `gorm:"column:monthly_installment;type:text"`
	TotalPayable       string  `gorm:"column:total_payable;type:text"`
	ApprovedAmount     *string `gorm:"column:approved_amount;type:text"`
	Status             string  `gorm:"column:status;type:text"`
	Remarks            string  `gorm:"column:remarks"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ApprovedAt         *time.Time `gorm:"column:approved_at"`
	DisbursedAt        *time.Time `gorm:"column:disbursed_at"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
}

func (loanRow) TableName() string { return "loans" }

type checkpointRow struct {
	ID           uint64     `gorm:"primaryKey;column:id;autoIncrement"`
	CheckpointID string     `gorm:"column:checkpoint_id;uniqueIndex"`
	LoanID       uint64     `gorm:"column:loan_id;uniqueIndex:ux_test_loan_role,priority:1"`
	Role         string     `gorm:"column:role;uniqueIndex:ux_test_loan_role,priority:2"`
	Decision     string     `gorm:"column:decision"`
	ReviewerName string     `gorm:"column:reviewer_name"`
	Notes        string     `gorm:"column:notes"`
	DecidedAt    *time.Time `gorm:"column:decided_at"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (checkpointRow) TableName() string { return "approvals" }

type disbursementRow struct {
	ID             uint64 `gorm:"primaryKey;column:id;autoIncrement"`
	DisbursementID string `gorm:"column:disbursement_id;uniqueIndex"`
	LoanID         uint64 `gorm:"column:loan_id;uniqueIndex"`
	Amount         string `gorm:"column:amount;type:text"`
	Method         string `gorm:"column:method"`
	AccountNumber  string `gorm:"column:account_number"`
	AccountName    string `gorm:"column:account_name"`
	BankCode       string `gorm:"column:bank_code"`
	Status         string `gorm:"column:status"`
	Attempts       int    `gorm:"column:attempts"`
	FailureReason  string `gorm:"column:failure_reason"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DisbursedAt    *time.Time `gorm:"column:disbursed_at"`
}

func (disbursementRow) TableName() string { return "disbursements" }

// Open returns a fresh in-memory database. The pool is pinned to a single
// connection: every sqlite ":memory:" connection is its own database, and it
// also serializes concurrent transactions the way row locks would.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	// IMPORTANT: migrate the sqlite-safe models, NOT the domain models.
	if err := db.AutoMigrate(&productRow{}, &loanRow{}, &checkpointRow{}, &disbursementRow{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
