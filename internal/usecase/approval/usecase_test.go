package approval

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"los-backend/internal/adapter/repository/mysql"
	"los-backend/internal/domain/approval"
	"los-backend/internal/domain/errs"
	"los-backend/internal/domain/event"
	"los-backend/internal/domain/loan"
	"los-backend/internal/domain/uow"
	"los-backend/internal/testutil/approvalmock"
	"los-backend/internal/testutil/eventmock"
	"los-backend/internal/testutil/loanmock"
	"los-backend/internal/testutil/sqlitedb"
	"los-backend/internal/testutil/uowmock"
	"los-backend/pkg/id"
)

var fixedNow = time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)

type env struct {
	db  *gorm.DB
	uc  *Usecase
	pub *eventmock.Publisher
}

func newEnv(t *testing.T) env {
	t.Helper()
	db := sqlitedb.Open(t)
	pub := &eventmock.Publisher{}
	uc := NewUsecase(mysql.NewLoanRepository(db), mysql.NewApprovalRepository(db), mysql.NewGormUoW(db),
		WithIDGenerator(id.NewSequence("EV")),
		WithClock(func() time.Time { return fixedNow }),
		WithNotifier(event.NewNotifier(pub, nil, time.Second)),
	)
	return env{db: db, uc: uc, pub: pub}
}

// seedLoan stores a PENDING loan with its three PENDING checkpoints.
func (e env) seedLoan(t *testing.T, loanID string) {
	t.Helper()
	ctx := context.Background()
	l := &loan.Loan{
		LoanID:             loanID,
		CustomerID:         "CUST-1",
		ProductID:          "MOTOR-STD",
		RequestedAmount:    decimal.NewFromInt(18_000_000),
		DownPayment:        decimal.NewFromInt(3_000_000),
		Tenor:              12,
		InterestRate:       decimal.NewFromInt(12),
		MonthlyRate:        decimal.RequireFromString("0.01"),
		FinancedAmount:     decimal.NewFromInt(15_000_000),
		MonthlyInstallment: decimal.RequireFromString("1332731.83"),
		TotalPayable:       decimal.RequireFromString("15992781.96"),
		Status:             loan.StatusPending,
	}
	require.NoError(t, mysql.NewLoanRepository(e.db).Create(ctx, l))
	for _, role := range approval.Roles {
		require.NoError(t, mysql.NewApprovalRepository(e.db).Create(ctx, &approval.Checkpoint{
			CheckpointID: loanID + "-" + string(role),
			LoanID:       l.ID,
			Role:         role,
			Decision:     approval.DecisionPending,
		}))
	}
}

func (e env) resolve(t *testing.T, loanID string, role approval.Role, d approval.Decision) *ResolutionDTO {
	t.Helper()
	out, err := e.uc.Resolve(context.Background(), ResolveInput{
		LoanID:       loanID,
		Role:         string(role),
		Decision:     string(d),
		Notes:        "notes from " + string(role),
		ReviewerName: "reviewer",
	})
	require.NoError(t, err)
	return out
}

func TestResolve_AllApprovedInAnyOrder(t *testing.T) {
	orders := map[string][]approval.Role{
		"forward": {approval.RoleSurveyor, approval.RoleCreditAnalyst, approval.RoleManager},
		"reverse": {approval.RoleManager, approval.RoleCreditAnalyst, approval.RoleSurveyor},
		"mixed":   {approval.RoleCreditAnalyst, approval.RoleManager, approval.RoleSurveyor},
	}
	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			e := newEnv(t)
			e.seedLoan(t, "LN-1")

			for i, role := range order {
				out := e.resolve(t, "LN-1", role, approval.DecisionApproved)
				if i < len(order)-1 {
					assert.Equal(t, string(loan.StatusUnderReview), out.LoanStatus)
					assert.Nil(t, out.ApprovedAmount)
					continue
				}
				assert.Equal(t, string(loan.StatusApproved), out.LoanStatus)
				require.NotNil(t, out.ApprovedAmount)
				assert.True(t, out.ApprovedAmount.Equal(decimal.NewFromInt(18_000_000)))
			}

			stored, err := mysql.NewLoanRepository(e.db).GetByLoanID(context.Background(), "LN-1")
			require.NoError(t, err)
			require.NotNil(t, stored.ApprovedAt)
			assert.True(t, stored.ApprovedAt.Equal(fixedNow))
			assert.True(t, stored.DisbursableAmount().Equal(decimal.NewFromInt(15_000_000)))

			assert.Equal(t, []event.Type{event.LoanApproved}, e.pub.Types())
		})
	}
}

func TestResolve_RepeatedApprovalDoesNotCount(t *testing.T) {
	e := newEnv(t)
	e.seedLoan(t, "LN-1")

	e.resolve(t, "LN-1", approval.RoleManager, approval.DecisionApproved)
	out := e.resolve(t, "LN-1", approval.RoleManager, approval.DecisionApproved)
	assert.Equal(t, string(loan.StatusUnderReview), out.LoanStatus)
	out = e.resolve(t, "LN-1", approval.RoleSurveyor, approval.DecisionApproved)
	assert.Equal(t, string(loan.StatusUnderReview), out.LoanStatus)
	out = e.resolve(t, "LN-1", approval.RoleSurveyor, approval.DecisionApproved)
	assert.Equal(t, string(loan.StatusUnderReview), out.LoanStatus)

	out = e.resolve(t, "LN-1", approval.RoleCreditAnalyst, approval.DecisionApproved)
	assert.Equal(t, string(loan.StatusApproved), out.LoanStatus)
	require.Len(t, out.Checkpoints, 3)
	for _, cp := range out.Checkpoints {
		assert.Equal(t, string(approval.DecisionApproved), cp.Decision)
	}
}

func TestResolve_AnyRejectionRejects(t *testing.T) {
	for _, rejecting := range approval.Roles {
		t.Run(string(rejecting), func(t *testing.T) {
			e := newEnv(t)
			e.seedLoan(t, "LN-1")

			// approve every other role first
			for _, r := range approval.Roles {
				if r != rejecting {
					e.resolve(t, "LN-1", r, approval.DecisionApproved)
				}
			}
			out := e.resolve(t, "LN-1", rejecting, approval.DecisionRejected)
			assert.Equal(t, string(loan.StatusRejected), out.LoanStatus)
			assert.Equal(t, "notes from "+string(rejecting), out.Remarks)
			assert.Nil(t, out.ApprovedAmount)
			assert.Equal(t, []event.Type{event.LoanRejected}, e.pub.Types())
		})
	}
}

func TestResolve_DecidedLoanIsFrozen(t *testing.T) {
	e := newEnv(t)
	e.seedLoan(t, "LN-REJ")
	e.resolve(t, "LN-REJ", approval.RoleSurveyor, approval.DecisionRejected)

	_, err := e.uc.Resolve(context.Background(), ResolveInput{
		LoanID: "LN-REJ", Role: string(approval.RoleSurveyor), Decision: string(approval.DecisionApproved),
	})
	require.ErrorIs(t, err, loan.ErrAlreadyDecided)
	assert.ErrorIs(t, err, errs.ErrPrecondition)

	cps, err := e.uc.List(context.Background(), "LN-REJ")
	require.NoError(t, err)
	assert.Equal(t, string(approval.DecisionRejected), cps[0].Decision)

	e.seedLoan(t, "LN-OK")
	for _, r := range approval.Roles {
		e.resolve(t, "LN-OK", r, approval.DecisionApproved)
	}
	_, err = e.uc.Resolve(context.Background(), ResolveInput{
		LoanID: "LN-OK", Role: string(approval.RoleManager), Decision: string(approval.DecisionRejected),
	})
	require.ErrorIs(t, err, loan.ErrAlreadyDecided)

	stored, err := mysql.NewLoanRepository(e.db).GetByLoanID(context.Background(), "LN-OK")
	require.NoError(t, err)
	assert.Equal(t, loan.StatusApproved, stored.Status)
}

func TestResolve_InputErrors(t *testing.T) {
	e := newEnv(t)
	e.seedLoan(t, "LN-1")

	tests := []struct {
		name    string
		in      ResolveInput
		wantErr error
	}{
		{"unknown role", ResolveInput{LoanID: "LN-1", Role: "AUDITOR", Decision: "APPROVED"}, approval.ErrInvalidRole},
		{"pending is not a resolution", ResolveInput{LoanID: "LN-1", Role: "MANAGER", Decision: "PENDING"}, approval.ErrInvalidDecision},
		{"unknown loan", ResolveInput{LoanID: "LN-404", Role: "MANAGER", Decision: "APPROVED"}, loan.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.uc.Resolve(context.Background(), tc.in)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
	assert.Empty(t, e.pub.Types())
}

func TestResolve_MissingCheckpoint(t *testing.T) {
	saved := false
	repos := uow.Repos{
		Loans: &loanmock.Repo{
			GetByLoanIDForUpdateFn: func(context.Context, string) (*loan.Loan, error) {
				return &loan.Loan{ID: 7, LoanID: "LN-7", Status: loan.StatusPending}, nil
			},
			SaveFn: func(context.Context, *loan.Loan) error {
				saved = true
				return nil
			},
		},
		Approvals: &approvalmock.Repo{
			GetByLoanAndRoleFn: func(_ context.Context, loanID uint64, role approval.Role) (*approval.Checkpoint, error) {
				if loanID != 7 || role != approval.RoleManager {
					t.Fatalf("unexpected lookup (%d, %s)", loanID, role)
				}
				return nil, approval.ErrNotFound
			},
		},
	}
	uc := NewUsecase(repos.Loans, repos.Approvals, uowmock.Passthrough(repos))

	_, err := uc.Resolve(context.Background(), ResolveInput{LoanID: "LN-7", Role: "MANAGER", Decision: "APPROVED"})
	require.ErrorIs(t, err, approval.ErrNotFound)
	assert.False(t, saved)
}

func TestResolve_SaveFailureSkipsEvent(t *testing.T) {
	boom := errors.New("write failed")
	repos := uow.Repos{
		Loans: &loanmock.Repo{
			GetByLoanIDForUpdateFn: func(context.Context, string) (*loan.Loan, error) {
				return &loan.Loan{ID: 1, LoanID: "LN-1", Status: loan.StatusUnderReview}, nil
			},
			SaveFn: func(context.Context, *loan.Loan) error { return boom },
		},
		Approvals: &approvalmock.Repo{
			GetByLoanAndRoleFn: func(_ context.Context, _ uint64, role approval.Role) (*approval.Checkpoint, error) {
				return &approval.Checkpoint{Role: role, Decision: approval.DecisionPending}, nil
			},
			ListByLoanIDFn: func(context.Context, uint64) ([]approval.Checkpoint, error) {
				return []approval.Checkpoint{{Role: approval.RoleSurveyor, Decision: approval.DecisionPending}}, nil
			},
		},
	}
	pub := &eventmock.Publisher{}
	uc := NewUsecase(repos.Loans, repos.Approvals, uowmock.Passthrough(repos),
		WithNotifier(event.NewNotifier(pub, nil, time.Second)))

	_, err := uc.Resolve(context.Background(), ResolveInput{LoanID: "LN-1", Role: "SURVEYOR", Decision: "REJECTED"})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, pub.Events())
}

func TestResolve_ConcurrentApprovalsConverge(t *testing.T) {
	e := newEnv(t)
	e.seedLoan(t, "LN-RACE")

	var wg sync.WaitGroup
	errCh := make(chan error, len(approval.Roles))
	for _, role := range approval.Roles {
		wg.Add(1)
		go func(role approval.Role) {
			defer wg.Done()
			_, err := e.uc.Resolve(context.Background(), ResolveInput{
				LoanID: "LN-RACE", Role: string(role), Decision: string(approval.DecisionApproved),
			})
			errCh <- err
		}(role)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	stored, err := mysql.NewLoanRepository(e.db).GetByLoanID(context.Background(), "LN-RACE")
	require.NoError(t, err)
	assert.Equal(t, loan.StatusApproved, stored.Status)
	assert.Equal(t, []event.Type{event.LoanApproved}, e.pub.Types())
}

func TestList(t *testing.T) {
	e := newEnv(t)
	e.seedLoan(t, "LN-1")
	e.resolve(t, "LN-1", approval.RoleCreditAnalyst, approval.DecisionApproved)

	cps, err := e.uc.List(context.Background(), "LN-1")
	require.NoError(t, err)
	require.Len(t, cps, 3)
	assert.Equal(t, string(approval.RoleSurveyor), cps[0].Role)
	assert.Equal(t, string(approval.DecisionPending), cps[0].Decision)
	assert.Equal(t, string(approval.DecisionApproved), cps[1].Decision)
	assert.Equal(t, "reviewer", cps[1].ReviewerName)
	require.NotNil(t, cps[1].DecidedAt)

	_, err = e.uc.List(context.Background(), "LN-404")
	require.ErrorIs(t, err, loan.ErrNotFound)
}

func TestResolve_NoUnitOfWork(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, &approvalmock.Repo{}, nil)
	_, err := uc.Resolve(context.Background(), ResolveInput{LoanID: "LN-1", Role: "MANAGER", Decision: "APPROVED"})
	require.ErrorIs(t, err, errNoUnitOfWork)
}
