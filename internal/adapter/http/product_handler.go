package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"los-backend/internal/usecase/product"
)

type ProductHandler struct{ uc *product.Usecase }

func NewProductHandler(uc *product.Usecase) *ProductHandler { return &ProductHandler{uc: uc} }

func (h *ProductHandler) List(c echo.Context) error {
	includeInactive := false
	if raw := c.QueryParam("include_inactive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "include_inactive must be a boolean"})
		}
		includeInactive = v
	}
	dtos, err := h.uc.List(c.Request().Context(), includeInactive)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ProductHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
