package http

import (
	stdhttp "net/http"
	"testing"

	"los-backend/internal/usecase/credit"
)

func TestCreditCheck_Verdicts(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		income  any
		debt    any
		amount  any
		dti     string
		score   int
		verdict string
	}{
		{"needs review", 5000000, 500000, 10000000, "19.41", 750, "REVIEW"},
		{"strong applicant", "30000000", "1000000", "10000000", "4.90", 850, "APPROVED"},
		{"over-leveraged", 5000000, 3000000, 5000000, "64.71", 450, "REJECTED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, stdhttp.MethodPost, "/credit-checks", map[string]any{
				"customer_id":      "CUST-1",
				"loan_id":          "LN-000001",
				"monthly_income":   tt.income,
				"existing_debt":    tt.debt,
				"requested_amount": tt.amount,
			})
			if rec.Code != stdhttp.StatusOK {
				t.Fatalf("status = %d; body=%s", rec.Code, rec.Body.String())
			}
			dto := decode[credit.CheckDTO](t, rec)
			if dto.DTIRatio.StringFixed(2) != tt.dti || dto.CreditScore != tt.score || dto.Verdict != tt.verdict {
				t.Fatalf("got dti=%s score=%d verdict=%s", dto.DTIRatio.StringFixed(2), dto.CreditScore, dto.Verdict)
			}
			if dto.CheckID == "" || dto.LoanID != "LN-000001" {
				t.Fatalf("unexpected identifiers %+v", dto)
			}
		})
	}
}

func TestCreditCheck_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
		code int
	}{
		{"zero income", map[string]any{"customer_id": "C", "monthly_income": 0, "requested_amount": 1000}, stdhttp.StatusUnprocessableEntity},
		{"negative debt", map[string]any{"customer_id": "C", "monthly_income": 1000, "existing_debt": -5, "requested_amount": 1000}, stdhttp.StatusUnprocessableEntity},
		{"missing customer", map[string]any{"monthly_income": 1000, "requested_amount": 1000}, stdhttp.StatusUnprocessableEntity},
		{"not a number", map[string]any{"customer_id": "C", "monthly_income": true, "requested_amount": 1000}, stdhttp.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, stdhttp.MethodPost, "/credit-checks", tt.body)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d; body=%s", rec.Code, tt.code, rec.Body.String())
			}
		})
	}
}
