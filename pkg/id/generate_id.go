package id

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator hands out public identifiers for loans, checkpoints, disbursements
// and credit checks. Wall-clock time is never used as an identifier.
type Generator interface {
	NewID() string
}

// UUID generates random v4 UUIDs in canonical 36-char form.
type UUID struct{}

func (UUID) NewID() string { return uuid.NewString() }

// Sequence generates "<prefix>-000001", "<prefix>-000002", ... and is safe for
// concurrent use. Intended for tests and fixtures.
type Sequence struct {
	Prefix string
	n      atomic.Uint64
}

func NewSequence(prefix string) *Sequence { return &Sequence{Prefix: prefix} }

func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%06d", s.Prefix, s.n.Add(1))
}
