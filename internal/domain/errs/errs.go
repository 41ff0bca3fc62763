// Package errs defines the error kinds every domain sentinel belongs to.
// Callers branch on the kind with errors.Is; the sentinel keeps the message.
package errs

import "errors"

var (
	// ErrValidation: input rejected before any state was created.
	ErrValidation = errors.New("validation error")
	// ErrNotFound: unknown loan, checkpoint, disbursement or product.
	ErrNotFound = errors.New("not found")
	// ErrPrecondition: the entity exists but is in the wrong state.
	ErrPrecondition = errors.New("precondition failed")
	// ErrArithmetic: caller violated a numeric contract (e.g. zero divisor).
	ErrArithmetic = errors.New("arithmetic error")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// New returns a sentinel error of the given kind.
func New(kind error, msg string) error { return &kindError{kind: kind, msg: msg} }
