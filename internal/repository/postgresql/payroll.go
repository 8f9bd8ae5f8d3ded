package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== PAYROLL PERIODS ==========

// GetOrCreateForPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetOrCreateForPeriod(ctx context.Context, workerID string, month, year int) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to generate payroll id: %w", err)
	}

	// The no-op update makes RETURNING yield the existing row on conflict.
	query := `
		INSERT INTO payrolls (id, worker_id, month, year, base_salary)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT ON CONSTRAINT uq_payrolls_worker_period
		DO UPDATE SET updated_at = payrolls.updated_at
		RETURNING id, worker_id, month, year, base_salary, is_locked, created_at, updated_at
	`

	var p payroll.Payroll
	err = q.QueryRow(ctx, query, id.String(), workerID, month, year).Scan(
		&p.ID, &p.WorkerID, &p.Month, &p.Year, &p.BaseSalary, &p.IsLocked, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to get or create payroll: %w", err)
	}

	return p, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		baseWhere += fmt.Sprintf(" AND worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.Month != nil {
		baseWhere += fmt.Sprintf(" AND month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM payrolls WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT id, worker_id, month, year, base_salary, is_locked, created_at, updated_at
		FROM payrolls
		WHERE %s
		ORDER BY year DESC, month DESC, worker_id ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		var p payroll.Payroll
		if err := rows.Scan(
			&p.ID, &p.WorkerID, &p.Month, &p.Year, &p.BaseSalary, &p.IsLocked, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payrolls: %w", err)
	}

	return payrolls, total, nil
}

// SetLocked implements payroll.PayrollRepository.
func (r *payrollRepository) SetLocked(ctx context.Context, payrollID string, locked bool) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET is_locked = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, worker_id, month, year, base_salary, is_locked, created_at, updated_at
	`

	var p payroll.Payroll
	err := q.QueryRow(ctx, query, payrollID, locked).Scan(
		&p.ID, &p.WorkerID, &p.Month, &p.Year, &p.BaseSalary, &p.IsLocked, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to update payroll lock: %w", err)
	}

	return p, nil
}

// ========== DEDUCTIONS ==========

// CreateDeduction implements payroll.PayrollRepository.
func (r *payrollRepository) CreateDeduction(ctx context.Context, deduction payroll.PayrollDeduction) (payroll.PayrollDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_deductions (id, payroll_id, attendance_id, type, amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, payroll_id, attendance_id, type, amount, notes, created_at
	`

	var d payroll.PayrollDeduction
	err := q.QueryRow(ctx, query,
		deduction.ID, deduction.PayrollID, deduction.AttendanceID,
		deduction.Type, deduction.Amount, deduction.Notes,
	).Scan(
		&d.ID, &d.PayrollID, &d.AttendanceID, &d.Type, &d.Amount, &d.Notes, &d.CreatedAt,
	)
	if err != nil {
		return payroll.PayrollDeduction{}, fmt.Errorf("failed to create payroll deduction: %w", err)
	}

	return d, nil
}

// GetDeductionsByPayrollIDs implements payroll.PayrollRepository.
func (r *payrollRepository) GetDeductionsByPayrollIDs(ctx context.Context, payrollIDs []string) ([]payroll.PayrollDeduction, error) {
	if len(payrollIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, attendance_id, type, amount, notes, created_at
		FROM payroll_deductions
		WHERE payroll_id = ANY($1::uuid[])
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, payrollIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll deductions: %w", err)
	}
	defer rows.Close()

	deductions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (payroll.PayrollDeduction, error) {
		var d payroll.PayrollDeduction
		err := row.Scan(&d.ID, &d.PayrollID, &d.AttendanceID, &d.Type, &d.Amount, &d.Notes, &d.CreatedAt)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payroll deductions: %w", err)
	}

	return deductions, nil
}
