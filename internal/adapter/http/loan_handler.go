package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"los-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type applyLoanReq struct {
	CustomerID      string      `json:"customer_id"      validate:"required,max=64,token"`
	ProductID       string      `json:"product_id"       validate:"required,max=64,token"`
	RequestedAmount json.Number `json:"requested_amount" validate:"required,money"`
	DownPayment     json.Number `json:"down_payment"     validate:"omitempty,money"`
	Tenor           int         `json:"tenor"            validate:"required,gte=1,lte=360"`
	Purpose         string      `json:"purpose"          validate:"max=255"`
}

type cancelLoanReq struct {
	Reason string `json:"reason" validate:"max=500"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Apply(c.Request().Context(), loan.ApplyInput{
		CustomerID:      req.CustomerID,
		ProductID:       req.ProductID,
		RequestedAmount: amount(req.RequestedAmount),
		DownPayment:     amount(req.DownPayment),
		Tenor:           req.Tenor,
		Purpose:         req.Purpose,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) List(c echo.Context) error {
	dtos, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) ListByCustomer(c echo.Context) error {
	dtos, err := h.uc.ListByCustomer(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) Cancel(c echo.Context) error {
	var req cancelLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Cancel(c.Request().Context(), loan.CancelInput{
		LoanID: c.Param("loan_id"),
		Reason: req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
