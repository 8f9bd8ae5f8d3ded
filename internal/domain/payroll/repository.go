package payroll

import "context"

// PayrollRepository defines data access methods for payroll periods and deductions.
type PayrollRepository interface {
	// GetOrCreateForPeriod returns the single payroll row of (worker, month, year),
	// inserting it with a zero base salary when absent. Safe under concurrent callers.
	GetOrCreateForPeriod(ctx context.Context, workerID string, month, year int) (Payroll, error)

	// SetLocked updates the lock flag of one payroll or returns ErrPayrollNotFound
	SetLocked(ctx context.Context, payrollID string, locked bool) (Payroll, error)

	// CreateDeduction appends a ledger entry
	CreateDeduction(ctx context.Context, deduction PayrollDeduction) (PayrollDeduction, error)

	// List retrieves payroll periods, newest period first
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int64, error)

	// GetDeductionsByPayrollIDs loads ledger entries for the given payrolls, oldest first
	GetDeductionsByPayrollIDs(ctx context.Context, payrollIDs []string) ([]PayrollDeduction, error)
}
