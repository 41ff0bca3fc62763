package loan

import (
	"time"

	"github.com/shopspring/decimal"

	domain "los-backend/internal/domain/loan"
)

type ApplyInput struct {
	CustomerID      string          `json:"customer_id"`
	ProductID       string          `json:"product_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	DownPayment     decimal.Decimal `json:"down_payment"`
	Tenor           int             `json:"tenor"`
	Purpose         string          `json:"purpose"`
}

type CancelInput struct {
	LoanID string
	Reason string
}

type LoanDTO struct {
	LoanID             string           `json:"loan_id"`
	CustomerID         string           `json:"customer_id"`
	ProductID          string           `json:"product_id"`
	RequestedAmount    decimal.Decimal  `json:"requested_amount"`
	DownPayment        decimal.Decimal  `json:"down_payment"`
	Tenor              int              `json:"tenor"`
	Purpose            string           `json:"purpose,omitempty"`
	InterestRate       decimal.Decimal  `json:"interest_rate"`
	MonthlyRate        decimal.Decimal  `json:"monthly_rate"`
	FinancedAmount     decimal.Decimal  `json:"financed_amount"`
	MonthlyInstallment decimal.Decimal  `json:"monthly_installment"`
	TotalPayable       decimal.Decimal  `json:"total_payable"`
	ApprovedAmount     *decimal.Decimal `json:"approved_amount,omitempty"`
	Status             string           `json:"status"`
	Remarks            string           `json:"remarks,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	ApprovedAt         *time.Time       `json:"approved_at,omitempty"`
	DisbursedAt        *time.Time       `json:"disbursed_at,omitempty"`
	CancelledAt        *time.Time       `json:"cancelled_at,omitempty"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	dto := &LoanDTO{
		LoanID:             l.LoanID,
		CustomerID:         l.CustomerID,
		ProductID:          l.ProductID,
		RequestedAmount:    l.RequestedAmount,
		DownPayment:        l.DownPayment,
		Tenor:              l.Tenor,
		Purpose:            l.Purpose,
		InterestRate:       l.InterestRate,
		MonthlyRate:        l.MonthlyRate,
		FinancedAmount:     l.FinancedAmount,
		MonthlyInstallment: l.MonthlyInstallment,
		TotalPayable:       l.TotalPayable,
		Status:             string(l.Status),
		Remarks:            l.Remarks,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
		ApprovedAt:         l.ApprovedAt,
		DisbursedAt:        l.DisbursedAt,
		CancelledAt:        l.CancelledAt,
	}
	if l.ApprovedAmount.Valid {
		amt := l.ApprovedAmount.Decimal
		dto.ApprovedAmount = &amt
	}
	return dto
}

func toDTOs(ls []domain.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out
}
