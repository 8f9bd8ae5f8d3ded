package postgresqltest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestPayrollRepository_GetOrCreateForPeriod(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewPayrollRepository(setup.DB)
	ctx := context.Background()

	first, err := repo.GetOrCreateForPeriod(ctx, "worker-1", 3, 2025)
	require.NoError(t, err)
	assert.True(t, first.BaseSalary.IsZero())
	assert.False(t, first.IsLocked)

	second, err := repo.GetOrCreateForPeriod(ctx, "worker-1", 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := repo.GetOrCreateForPeriod(ctx, "worker-1", 4, 2025)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	assert.Equal(t, 2, setup.count(t, "payrolls"))
}

func TestPayrollRepository_ConcurrentGetOrCreate(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewPayrollRepository(setup.DB)
	ctx := context.Background()

	const callers = 8
	ids := make([]string, callers)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			p, err := repo.GetOrCreateForPeriod(gctx, "worker-1", 3, 2025)
			ids[i] = p.ID
			return err
		})
	}
	require.NoError(t, g.Wait())

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Equal(t, 1, setup.count(t, "payrolls"))
}

func TestPayrollRepository_DeductionsAndList(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewPayrollRepository(setup.DB)
	attRepo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()

	att, err := attRepo.Create(ctx, newAttendance("worker-1", attendance.TypeCheckIn, time.Date(2025, 3, 10, 7, 45, 0, 0, wib)))
	require.NoError(t, err)

	p, err := repo.GetOrCreateForPeriod(ctx, "worker-1", 3, 2025)
	require.NoError(t, err)

	notes := string(attendance.StatusLate)
	d, err := repo.CreateDeduction(ctx, payroll.PayrollDeduction{
		ID:           uuid.NewString(),
		PayrollID:    p.ID,
		AttendanceID: &att.ID,
		Type:         payroll.DeductionTypeLate,
		Amount:       decimal.NewFromInt(50000),
		Notes:        &notes,
	})
	require.NoError(t, err)
	assert.True(t, d.Amount.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, payroll.DeductionTypeLate, d.Type)

	_, err = repo.GetOrCreateForPeriod(ctx, "worker-2", 2, 2025)
	require.NoError(t, err)

	t.Run("list all newest period first", func(t *testing.T) {
		payrolls, total, err := repo.List(ctx, payroll.PayrollFilter{Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, payrolls, 2)
		assert.Equal(t, 3, payrolls[0].Month)
	})

	t.Run("filter by worker", func(t *testing.T) {
		worker := "worker-2"
		payrolls, total, err := repo.List(ctx, payroll.PayrollFilter{WorkerID: &worker, Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "worker-2", payrolls[0].WorkerID)
	})

	t.Run("deductions by payroll ids", func(t *testing.T) {
		deductions, err := repo.GetDeductionsByPayrollIDs(ctx, []string{p.ID})
		require.NoError(t, err)
		require.Len(t, deductions, 1)
		assert.Equal(t, p.ID, deductions[0].PayrollID)
		require.NotNil(t, deductions[0].AttendanceID)
		assert.Equal(t, att.ID, *deductions[0].AttendanceID)
	})
}

func TestPayrollRepository_SetLocked(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewPayrollRepository(setup.DB)
	ctx := context.Background()

	p, err := repo.GetOrCreateForPeriod(ctx, "worker-1", 3, 2025)
	require.NoError(t, err)

	locked, err := repo.SetLocked(ctx, p.ID, true)
	require.NoError(t, err)
	assert.Equal(t, p.ID, locked.ID)
	assert.Equal(t, "worker-1", locked.WorkerID)
	assert.True(t, locked.IsLocked)
	assert.False(t, locked.UpdatedAt.Before(p.UpdatedAt))

	again, err := repo.GetOrCreateForPeriod(ctx, "worker-1", 3, 2025)
	require.NoError(t, err)
	assert.True(t, again.IsLocked)

	unlocked, err := repo.SetLocked(ctx, p.ID, false)
	require.NoError(t, err)
	assert.False(t, unlocked.IsLocked)

	_, err = repo.SetLocked(ctx, uuid.NewString(), true)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	setup := NewTestDatabase(t)
	transactor := postgresql.NewTransactor(setup.DB)
	attRepo := postgresql.NewAttendanceRepository(setup.DB)
	payrollRepo := postgresql.NewPayrollRepository(setup.DB)
	ctx := context.Background()

	boom := errors.New("ledger unavailable")
	err := transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := attRepo.Create(txCtx, newAttendance("worker-1", attendance.TypeCheckIn, time.Date(2025, 3, 10, 8, 0, 0, 0, wib))); err != nil {
			return err
		}
		if _, err := payrollRepo.GetOrCreateForPeriod(txCtx, "worker-1", 3, 2025); err != nil {
			return err
		}
		// Nested call joins the outer transaction.
		return transactor.WithinTransaction(txCtx, func(context.Context) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 0, setup.count(t, "attendances"))
	assert.Equal(t, 0, setup.count(t, "payrolls"))
}
