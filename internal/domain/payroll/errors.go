package payroll

import "errors"

var (
	ErrPayrollNotFound        = errors.New("payroll not found")
	ErrNonPositiveDeduction   = errors.New("deduction amount must be positive")
	ErrDeductionWithoutWorker = errors.New("deduction entry has no worker")
)
