package approval

import (
	"time"

	"github.com/shopspring/decimal"

	domain "los-backend/internal/domain/approval"
)

type ResolveInput struct {
	LoanID       string
	Role         string
	Decision     string
	Notes        string
	ReviewerName string
}

type CheckpointDTO struct {
	CheckpointID string     `json:"checkpoint_id"`
	Role         string     `json:"role"`
	Decision     string     `json:"decision"`
	ReviewerName string     `json:"reviewer_name,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
}

// ResolutionDTO is the loan as left by a checkpoint resolution.
type ResolutionDTO struct {
	LoanID         string           `json:"loan_id"`
	LoanStatus     string           `json:"loan_status"`
	ApprovedAmount *decimal.Decimal `json:"approved_amount,omitempty"`
	Remarks        string           `json:"remarks,omitempty"`
	Checkpoint     CheckpointDTO    `json:"checkpoint"`
	Checkpoints    []CheckpointDTO  `json:"checkpoints"`
}

func toCheckpointDTO(c *domain.Checkpoint) CheckpointDTO {
	return CheckpointDTO{
		CheckpointID: c.CheckpointID,
		Role:         string(c.Role),
		Decision:     string(c.Decision),
		ReviewerName: c.ReviewerName,
		Notes:        c.Notes,
		DecidedAt:    c.DecidedAt,
	}
}

func toCheckpointDTOs(cs []domain.Checkpoint) []CheckpointDTO {
	out := make([]CheckpointDTO, 0, len(cs))
	for i := range cs {
		out = append(out, toCheckpointDTO(&cs[i]))
	}
	return out
}
