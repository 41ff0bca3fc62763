package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Routes groups the handlers served by the API process.
type Routes struct {
	Health        *Handler
	Loans         *LoanHandler
	Approvals     *ApprovalHandler
	Disbursements *DisbursementHandler
	Credit        *CreditHandler
	Products      *ProductHandler
	Metrics       http.Handler
}

// Register mounts every route on e. mutating wraps the POST routes only
// (idempotency in production).
func (r Routes) Register(e *echo.Echo, mutating ...echo.MiddlewareFunc) {
	e.GET("/health", r.Health.Health)
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}

	e.POST("/loans", r.Loans.Apply, mutating...)
	e.GET("/loans", r.Loans.List)
	e.GET("/loans/:loan_id", r.Loans.Get)
	e.POST("/loans/:loan_id/cancel", r.Loans.Cancel, mutating...)
	e.GET("/customers/:customer_id/loans", r.Loans.ListByCustomer)

	e.POST("/loans/:loan_id/checkpoints", r.Approvals.Resolve, mutating...)
	e.GET("/loans/:loan_id/checkpoints", r.Approvals.List)

	e.POST("/loans/:loan_id/disbursement", r.Disbursements.Disburse, mutating...)
	e.GET("/loans/:loan_id/disbursement", r.Disbursements.Get)

	e.POST("/credit-checks", r.Credit.Check, mutating...)

	e.GET("/products", r.Products.List)
	e.GET("/products/:product_id", r.Products.Get)
}
