package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending     Status = "PENDING"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusDisbursed   Status = "DISBURSED"
	StatusCancelled   Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	StatusPending:     {StatusUnderReview, StatusApproved, StatusRejected, StatusCancelled},
	StatusUnderReview: {StatusUnderReview, StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:    {StatusDisbursed, StatusCancelled},
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal is true for REJECTED, DISBURSED and CANCELLED.
func (s Status) IsTerminal() bool { return len(transitions[s]) == 0 }

// InReview is true while checkpoints may still be resolved.
func (s Status) InReview() bool { return s == StatusPending || s == StatusUnderReview }

// Loan is owned by the approval workflow. The financed amount, installment and
// total payable are computed once at application time and never rewritten.
type Loan struct {
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID     string `gorm:"column:loan_id;size:64;not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	CustomerID string `gorm:"column:customer_id;size:64;not null;index:idx_loans_customer" json:"customer_id"`
	ProductID  string `gorm:"column:product_id;size:64;not null" json:"product_id"`

	RequestedAmount    decimal.Decimal     `gorm:"column:requested_amount;type:decimal(15,2);not null" json:"requested_amount"`
	DownPayment        decimal.Decimal     `gorm:"column:down_payment;type:decimal(15,2);not null" json:"down_payment"`
	Tenor              int                 `gorm:"column:tenor;not null" json:"tenor"`
	Purpose            string              `gorm:"column:purpose;size:500" json:"purpose"`
	InterestRate       decimal.Decimal     `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interest_rate"`
	MonthlyRate        decimal.Decimal     `gorm:"column:monthly_rate;type:decimal(8,4);not null" json:"monthly_rate"`
	FinancedAmount     decimal.Decimal     `gorm:"column:financed_amount;type:decimal(15,2);not null" json:"financed_amount"`
	MonthlyInstallment decimal.Decimal     `gorm:"column:monthly_installment;type:decimal(15,2);not null" json:"monthly_installment"`
	TotalPayable       decimal.Decimal     `gorm:"column:total_payable;type:decimal(17,2);not null" json:"total_payable"`
	ApprovedAmount     decimal.NullDecimal `gorm:"column:approved_amount;type:decimal(15,2)" json:"approved_amount"`

	Status  Status `gorm:"column:status;size:20;not null;index:idx_loans_status" json:"status"`
	Remarks string `gorm:"column:remarks;size:1000" json:"remarks"`

	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	ApprovedAt  *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	DisbursedAt *time.Time `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
}

func (Loan) TableName() string { return "loans" }

// TransitionTo moves the loan to next or returns ErrInvalidTransition.
func (l *Loan) TransitionTo(next Status) error {
	if !l.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	l.Status = next
	return nil
}

// Approve records full approval: approvedAmount = requestedAmount.
func (l *Loan) Approve(at time.Time) error {
	if err := l.TransitionTo(StatusApproved); err != nil {
		return err
	}
	l.ApprovedAmount = decimal.NewNullDecimal(l.RequestedAmount)
	l.ApprovedAt = &at
	return nil
}

func (l *Loan) Reject(remarks string) error {
	if err := l.TransitionTo(StatusRejected); err != nil {
		return err
	}
	l.Remarks = remarks
	return nil
}

func (l *Loan) MarkDisbursed(at time.Time) error {
	if err := l.TransitionTo(StatusDisbursed); err != nil {
		return err
	}
	l.DisbursedAt = &at
	return nil
}

func (l *Loan) Cancel(reason string, at time.Time) error {
	if err := l.TransitionTo(StatusCancelled); err != nil {
		return err
	}
	l.Remarks = reason
	l.CancelledAt = &at
	return nil
}

// DisbursableAmount is approvedAmount − downPayment; zero before approval.
func (l *Loan) DisbursableAmount() decimal.Decimal {
	if !l.ApprovedAmount.Valid {
		return decimal.Zero
	}
	return l.ApprovedAmount.Decimal.Sub(l.DownPayment)
}
