package loan

import "los-backend/internal/domain/errs"

var (
	ErrNotFound          = errs.New(errs.ErrNotFound, "loan not found")
	ErrInvalidInput      = errs.New(errs.ErrValidation, "invalid loan application")
	ErrInvalidTransition = errs.New(errs.ErrPrecondition, "invalid loan status transition")
	ErrAlreadyDecided    = errs.New(errs.ErrPrecondition, "loan is no longer under review")
	ErrNotApproved       = errs.New(errs.ErrPrecondition, "loan must be approved before disbursement")
)
