package disbursement

import (
	"time"

	"github.com/shopspring/decimal"

	domain "los-backend/internal/domain/disbursement"
)

type DisburseInput struct {
	LoanID        string
	Method        string `json:"method"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BankCode      string `json:"bank_code"`
}

type DisbursementDTO struct {
	DisbursementID string          `json:"disbursement_id"`
	LoanID         string          `json:"loan_id"`
	LoanStatus     string          `json:"loan_status"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	AccountNumber  string          `json:"account_number,omitempty"`
	AccountName    string          `json:"account_name,omitempty"`
	BankCode       string          `json:"bank_code,omitempty"`
	Status         string          `json:"status"`
	Attempts       int             `json:"attempts"`
	FailureReason  string          `json:"failure_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	DisbursedAt    *time.Time      `json:"disbursed_at,omitempty"`
}

func toDTO(d *domain.Disbursement, loanID, loanStatus string) *DisbursementDTO {
	return &DisbursementDTO{
		DisbursementID: d.DisbursementID,
		LoanID:         loanID,
		LoanStatus:     loanStatus,
		Amount:         d.Amount,
		Method:         string(d.Method),
		AccountNumber:  d.AccountNumber,
		AccountName:    d.AccountName,
		BankCode:       d.BankCode,
		Status:         string(d.Status),
		Attempts:       d.Attempts,
		FailureReason:  d.FailureReason,
		CreatedAt:      d.CreatedAt,
		DisbursedAt:    d.DisbursedAt,
	}
}
