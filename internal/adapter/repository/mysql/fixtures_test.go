package mysql

import (
	approvalDomain "los-backend/internal/domain/approval"
	disbursementDomain "los-backend/internal/domain/disbursement"
	loanDomain "los-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
)

func makeLoan(loanID, customerID string) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:             loanID,
		CustomerID:         customerID,
		ProductID:          "MOTOR-STD",
		RequestedAmount:    decimal.NewFromInt(15_000_000),
		DownPayment:        decimal.NewFromInt(3_000_000),
		Tenor:              12,
		Purpose:            "motorcycle",
		InterestRate:       decimal.NewFromInt(12),
		MonthlyRate:        decimal.RequireFromString("0.01"),
		FinancedAmount:     decimal.NewFromInt(15_000_000),
		MonthlyInstallment: decimal.RequireFromString("1332731.83"),
		TotalPayable:       decimal.RequireFromString("15992781.96"),
		Status:             loanDomain.StatusPending,
	}
}

func makeCheckpoint(id string, loanNumericID uint64, role approvalDomain.Role) *approvalDomain.Checkpoint {
	return &approvalDomain.Checkpoint{
		CheckpointID: id,
		LoanID:       loanNumericID,
		Role:         role,
		Decision:     approvalDomain.DecisionPending,
	}
}

func makeDisbursement(id string, loanNumericID uint64) *disbursementDomain.Disbursement {
	return &disbursementDomain.Disbursement{
		DisbursementID: id,
		LoanID:         loanNumericID,
		Amount:         decimal.NewFromInt(12_000_000),
		Method:         disbursementDomain.MethodBankTransfer,
		AccountNumber:  "1234567890",
		AccountName:    "Budi",
		BankCode:       "BCA",
		Status:         disbursementDomain.StatusPending,
	}
}
