package http

import (
	"errors"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"los-backend/internal/domain/credit"
	"los-backend/internal/domain/disbursement"
	"los-backend/internal/domain/loan"
	"los-backend/internal/domain/product"
)

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{loan.ErrInvalidInput, stdhttp.StatusUnprocessableEntity},
		{fmt.Errorf("apply: %w", product.ErrAmountOutOfRange), stdhttp.StatusUnprocessableEntity},
		{credit.ErrZeroIncome, stdhttp.StatusUnprocessableEntity},
		{loan.ErrNotFound, stdhttp.StatusNotFound},
		{disbursement.ErrNotFound, stdhttp.StatusNotFound},
		{loan.ErrNotApproved, stdhttp.StatusConflict},
		{disbursement.ErrInProgress, stdhttp.StatusConflict},
		{errors.New("db gone"), stdhttp.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Fatalf("statusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(stdhttp.MethodGet, "/", nil), rec)

	if err := writeError(c, errors.New("dial tcp 10.0.0.1:3306: refused")); err != nil {
		t.Fatalf("writeError: %v", err)
	}
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.1") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}
