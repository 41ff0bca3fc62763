package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"los-backend/internal/adapter/repository/mysql"
	domainCredit "los-backend/internal/domain/credit"
	domainDisb "los-backend/internal/domain/disbursement"
	"los-backend/internal/testutil/sqlitedb"
	"los-backend/internal/usecase/approval"
	"los-backend/internal/usecase/credit"
	"los-backend/internal/usecase/disbursement"
	"los-backend/internal/usecase/loan"
	"los-backend/internal/usecase/product"
	"los-backend/pkg/id"
)

// -------- helpers --------

type testServer struct {
	e  *echo.Echo
	db *gorm.DB
	// processor result for the next disbursement; nil means success
	payoutErr error
}

func newTestServer(t *testing.T, mutating ...echo.MiddlewareFunc) *testServer {
	t.Helper()
	db := sqlitedb.Open(t)
	if err := mysql.SeedDefaultProducts(context.Background(), db); err != nil {
		t.Fatalf("seed products: %v", err)
	}

	s := &testServer{db: db}
	loans := mysql.NewLoanRepository(db)
	tx := mysql.NewGormUoW(db)
	processor := disbursement.ProcessorFunc(func(context.Context, domainDisb.Disbursement) error {
		return s.payoutErr
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	Routes{
		Health:    NewHandler("log"),
		Loans:     NewLoanHandler(loan.NewUsecase(loans, mysql.NewProductRepository(db), tx, loan.WithIDGenerator(id.NewSequence("LN")))),
		Approvals: NewApprovalHandler(approval.NewUsecase(loans, mysql.NewApprovalRepository(db), tx)),
		Disbursements: NewDisbursementHandler(disbursement.NewUsecase(loans, mysql.NewDisbursementRepository(db), tx,
			disbursement.WithProcessor(processor),
			disbursement.WithTimeout(time.Second),
			disbursement.WithIDGenerator(id.NewSequence("DSB")),
		)),
		Credit:   NewCreditHandler(credit.NewUsecase(domainCredit.NewEngine(), credit.WithIDGenerator(id.NewSequence("CC")))),
		Products: NewProductHandler(product.NewUsecase(mysql.NewProductRepository(db))),
		Metrics: stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
			_, _ = io.WriteString(w, "# metrics\n")
		}),
	}.Register(e, mutating...)
	s.e = e
	return s
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = mustJSON(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
	}
	return v
}

func motorBody() map[string]any {
	return map[string]any{
		"customer_id":      "CUST-1",
		"product_id":       "MOTOR-STD",
		"requested_amount": 18000000,
		"down_payment":     "3000000",
		"tenor":            12,
		"purpose":          "motorcycle",
	}
}

// applyLoan creates a loan through the API and returns its id.
func (s *testServer) applyLoan(t *testing.T) string {
	t.Helper()
	rec := s.do(t, stdhttp.MethodPost, "/loans", motorBody())
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("apply: status = %d, body=%s", rec.Code, rec.Body.String())
	}
	return decode[loan.LoanDTO](t, rec).LoanID
}

// approveLoan resolves every checkpoint as APPROVED.
func (s *testServer) approveLoan(t *testing.T, loanID string) {
	t.Helper()
	for _, role := range []string{"SURVEYOR", "CREDIT_ANALYST", "MANAGER"} {
		rec := s.do(t, stdhttp.MethodPost, "/loans/"+loanID+"/checkpoints", map[string]any{
			"role":          role,
			"decision":      "APPROVED",
			"reviewer_name": "reviewer-" + role,
		})
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("resolve %s: status = %d, body=%s", role, rec.Code, rec.Body.String())
		}
	}
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	return decode[ErrorResponse](t, rec)
}
