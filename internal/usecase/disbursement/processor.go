package disbursement

import (
	"context"
	"fmt"
	"time"

	domain "los-backend/internal/domain/disbursement"
)

// Processor moves the money. It must honour ctx: the caller bounds every
// attempt with a deadline and records an interrupted attempt as FAILED.
type Processor interface {
	Process(ctx context.Context, d domain.Disbursement) error
}

// SimulatedProcessor stands in for the payment rail with a fixed delay.
type SimulatedProcessor struct {
	Delay time.Duration
}

func (p SimulatedProcessor) Process(ctx context.Context, d domain.Disbursement) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("processing %s interrupted: %w", d.DisbursementID, ctx.Err())
	}
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx context.Context, d domain.Disbursement) error

func (f ProcessorFunc) Process(ctx context.Context, d domain.Disbursement) error { return f(ctx, d) }
