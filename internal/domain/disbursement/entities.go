package disbursement

import (
	"time"

	"github.com/shopspring/decimal"

	"los-backend/internal/domain/errs"
)

var (
	ErrNotFound         = errs.New(errs.ErrNotFound, "disbursement not found")
	ErrInvalidMethod    = errs.New(errs.ErrValidation, "unknown disbursement method")
	ErrInProgress       = errs.New(errs.ErrPrecondition, "disbursement already in progress")
	ErrAlreadyCompleted = errs.New(errs.ErrPrecondition, "disbursement already completed")
)

type Method string

const (
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodCash         Method = "CASH"
	MethodCheck        Method = "CHECK"
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodBankTransfer, MethodCash, MethodCheck:
		return Method(s), nil
	}
	return "", ErrInvalidMethod
}

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Disbursement is the payout of an approved loan (table: disbursements).
// One row per loan; a failed attempt is reset in place on retry.
type Disbursement struct {
	ID             uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	DisbursementID string          `gorm:"column:disbursement_id;size:64;not null;uniqueIndex:ux_disbursements_disbursement_id" json:"disbursement_id"`
	LoanID         uint64          `gorm:"column:loan_id;not null;uniqueIndex:ux_disbursements_loan" json:"-"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(15,2);not null" json:"amount"`
	Method         Method          `gorm:"column:method;size:20;not null" json:"method"`
	AccountNumber  string          `gorm:"column:account_number;size:50" json:"account_number"`
	AccountName    string          `gorm:"column:account_name;size:100" json:"account_name"`
	BankCode       string          `gorm:"column:bank_code;size:20" json:"bank_code"`
	Status         Status          `gorm:"column:status;size:20;not null" json:"status"`
	Attempts       int             `gorm:"column:attempts;not null;default:0" json:"attempts"`
	FailureReason  string          `gorm:"column:failure_reason;size:500" json:"failure_reason,omitempty"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DisbursedAt    *time.Time      `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`
}

func (Disbursement) TableName() string { return "disbursements" }

// Retryable reports whether a new attempt may start from the current record.
func (d *Disbursement) Retryable() error {
	switch d.Status {
	case StatusFailed:
		return nil
	case StatusCompleted:
		return ErrAlreadyCompleted
	default:
		return ErrInProgress
	}
}

// Abandoned reports whether a PROCESSING attempt has gone without an update
// for longer than after, i.e. its process died before settling it.
func (d *Disbursement) Abandoned(now time.Time, after time.Duration) bool {
	return d.Status == StatusProcessing && !d.UpdatedAt.IsZero() && now.Sub(d.UpdatedAt) > after
}

func (d *Disbursement) StartProcessing() {
	d.Status = StatusProcessing
	d.Attempts++
	d.FailureReason = ""
}

func (d *Disbursement) Complete(at time.Time) {
	d.Status = StatusCompleted
	d.DisbursedAt = &at
	d.FailureReason = ""
}

func (d *Disbursement) Fail(reason string) {
	d.Status = StatusFailed
	d.FailureReason = reason
}
