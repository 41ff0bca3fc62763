package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"los-backend/internal/usecase/credit"
)

type CreditHandler struct{ uc *credit.Usecase }

func NewCreditHandler(uc *credit.Usecase) *CreditHandler { return &CreditHandler{uc: uc} }

type creditCheckReq struct {
	CustomerID      string      `json:"customer_id"      validate:"required,max=64,token"`
	LoanID          string      `json:"loan_id"          validate:"omitempty,max=64,token"`
	MonthlyIncome   json.Number `json:"monthly_income"   validate:"required,money"`
	ExistingDebt    json.Number `json:"existing_debt"    validate:"omitempty,money"`
	RequestedAmount json.Number `json:"requested_amount" validate:"required,money"`
}

func (h *CreditHandler) Check(c echo.Context) error {
	var req creditCheckReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Check(c.Request().Context(), credit.CheckInput{
		CustomerID:      req.CustomerID,
		LoanID:          req.LoanID,
		MonthlyIncome:   amount(req.MonthlyIncome),
		ExistingDebt:    amount(req.ExistingDebt),
		RequestedAmount: amount(req.RequestedAmount),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
