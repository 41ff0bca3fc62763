package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "los-backend/internal/domain/disbursement"
	"los-backend/internal/usecase/disbursement"
)

type DisbursementHandler struct{ uc *disbursement.Usecase }

func NewDisbursementHandler(uc *disbursement.Usecase) *DisbursementHandler {
	return &DisbursementHandler{uc: uc}
}

type disburseReq struct {
	Method        string `json:"method"         validate:"required,oneof=BANK_TRANSFER CASH CHECK"`
	AccountNumber string `json:"account_number" validate:"required_if=Method BANK_TRANSFER,max=50"`
	AccountName   string `json:"account_name"   validate:"max=100"`
	BankCode      string `json:"bank_code"      validate:"required_if=Method BANK_TRANSFER,max=20"`
}

// Disburse answers 200 for a completed payout and 502 when the processor
// failed; the body carries the attempt either way.
func (h *DisbursementHandler) Disburse(c echo.Context) error {
	var req disburseReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Disburse(c.Request().Context(), disbursement.DisburseInput{
		LoanID:        c.Param("loan_id"),
		Method:        req.Method,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		BankCode:      req.BankCode,
	})
	if err != nil {
		return writeError(c, err)
	}
	if dto.Status == string(domain.StatusFailed) {
		return c.JSON(http.StatusBadGateway, dto)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DisbursementHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
