package approval

import (
	"time"

	"los-backend/internal/domain/errs"
	"los-backend/internal/domain/loan"
)

var (
	ErrNotFound        = errs.New(errs.ErrNotFound, "approval checkpoint not found")
	ErrInvalidRole     = errs.New(errs.ErrValidation, "unknown approval role")
	ErrInvalidDecision = errs.New(errs.ErrValidation, "decision must be APPROVED or REJECTED")
)

type Role string

const (
	RoleSurveyor      Role = "SURVEYOR"
	RoleCreditAnalyst Role = "CREDIT_ANALYST"
	RoleManager       Role = "MANAGER"
)

// Roles is the fixed checkpoint set opened for every loan. The order is only
// the creation order; checkpoints may be resolved in any order.
var Roles = []Role{RoleSurveyor, RoleCreditAnalyst, RoleManager}

func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", ErrInvalidRole
}

type Decision string

const (
	DecisionPending  Decision = "PENDING"
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

// ParseResolution accepts only the two resolving decisions.
func ParseResolution(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionApproved, DecisionRejected:
		return Decision(s), nil
	}
	return "", ErrInvalidDecision
}

// Checkpoint is one role's decision on a loan (table: approvals).
// Exactly one row per (loan_id, role).
type Checkpoint struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	CheckpointID string     `gorm:"column:checkpoint_id;size:64;not null;uniqueIndex:ux_approvals_checkpoint_id" json:"checkpoint_id"`
	LoanID       uint64     `gorm:"column:loan_id;not null;uniqueIndex:ux_approvals_loan_role,priority:1" json:"-"`
	Role         Role       `gorm:"column:role;size:20;not null;uniqueIndex:ux_approvals_loan_role,priority:2" json:"role"`
	Decision     Decision   `gorm:"column:decision;size:20;not null" json:"decision"`
	ReviewerName string     `gorm:"column:reviewer_name;size:100" json:"reviewer_name,omitempty"`
	Notes        string     `gorm:"column:notes;size:1000" json:"notes,omitempty"`
	DecidedAt    *time.Time `gorm:"column:decided_at" json:"decided_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Checkpoint) TableName() string { return "approvals" }

// Resolve overwrites any earlier decision.
func (c *Checkpoint) Resolve(d Decision, notes, reviewer string, at time.Time) {
	c.Decision = d
	c.Notes = notes
	c.ReviewerName = reviewer
	c.DecidedAt = &at
}

// Aggregate derives the loan status after `latest` was applied, scanning the
// whole checkpoint set each time:
// REJECTED if the latest decision rejects, APPROVED if every checkpoint is
// approved, UNDER_REVIEW otherwise.
func Aggregate(latest Decision, all []Checkpoint) loan.Status {
	if latest == DecisionRejected {
		return loan.StatusRejected
	}
	if len(all) == 0 {
		return loan.StatusUnderReview
	}
	for _, c := range all {
		if c.Decision != DecisionApproved {
			return loan.StatusUnderReview
		}
	}
	return loan.StatusApproved
}
