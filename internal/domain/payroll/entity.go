package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductionType enum
type DeductionType string

const (
	DeductionTypeLate DeductionType = "LATE"
)

// Payroll is one (worker, month, year) period. Rows created by the deduction
// ledger start with a zero base salary; payroll processing fills it later.
type Payroll struct {
	ID         string
	WorkerID   string
	Month      int
	Year       int
	BaseSalary decimal.Decimal
	IsLocked   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	Deductions []PayrollDeduction
}

// TotalDeductions sums the loaded deduction entries.
func (p Payroll) TotalDeductions() decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.Deductions {
		total = total.Add(d.Amount)
	}
	return total
}

// PayrollDeduction is an append-only ledger entry.
type PayrollDeduction struct {
	ID           string
	PayrollID    string
	AttendanceID *string
	Type         DeductionType
	Amount       decimal.Decimal
	Notes        *string
	CreatedAt    time.Time
}

// LateDeductionEntry is what the attendance recorder hands to the ledger.
type LateDeductionEntry struct {
	WorkerID     string
	AttendanceID string
	OccurredAt   time.Time // already in the application timezone
	Amount       decimal.Decimal
	Notes        string
}
