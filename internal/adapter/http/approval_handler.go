package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"los-backend/internal/usecase/approval"
)

type ApprovalHandler struct{ uc *approval.Usecase }

func NewApprovalHandler(uc *approval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type resolveCheckpointReq struct {
	Role         string `json:"role"          validate:"required"`
	Decision     string `json:"decision"      validate:"required"`
	ReviewerName string `json:"reviewer_name" validate:"max=100"`
	Notes        string `json:"notes"         validate:"max=1000"`
}

// Resolve records one role's decision; role and decision values are checked
// by the workflow so the error kinds stay in one place.
func (h *ApprovalHandler) Resolve(c echo.Context) error {
	var req resolveCheckpointReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Resolve(c.Request().Context(), approval.ResolveInput{
		LoanID:       c.Param("loan_id"),
		Role:         req.Role,
		Decision:     req.Decision,
		Notes:        req.Notes,
		ReviewerName: req.ReviewerName,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) List(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
