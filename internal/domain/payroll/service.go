package payroll

import "context"

// DeductionLedger appends lateness deductions to the worker's payroll period.
type DeductionLedger interface {
	// AppendLateDeduction finds or creates the payroll of entry.OccurredAt's
	// (month, year) and appends one LATE entry. When ctx carries a transaction
	// both writes join it.
	AppendLateDeduction(ctx context.Context, entry LateDeductionEntry) (PayrollDeduction, error)
}

// PayrollService exposes payroll periods with their deductions.
type PayrollService interface {
	DeductionLedger

	// GetMyPayrolls lists the worker's own periods; filter.WorkerID is ignored
	GetMyPayrolls(ctx context.Context, workerID string, filter PayrollFilter) (ListPayrollResponse, error)

	// ListPayrolls lists every worker's periods (admin)
	ListPayrolls(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)

	// SetPayrollLock locks or unlocks one period (admin)
	SetPayrollLock(ctx context.Context, payrollID string, req SetPayrollLockRequest) (PayrollResponse, error)
}
