package payroll

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollFilter struct {
	WorkerID *string `json:"worker_id,omitempty"`
	Month    *int    `json:"month,omitempty"`
	Year     *int    `json:"year,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PayrollFilter) Validate() error {
	errs := validator.Pagination(&f.Page, &f.Limit)

	if f.Month != nil && !validator.IsValidMonth(*f.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}

	if f.Year != nil && (*f.Year < 2000 || *f.Year > 2100) {
		errs.Add("year", "year must be between 2000 and 2100")
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SetPayrollLockRequest locks or unlocks one payroll period.
type SetPayrollLockRequest struct {
	IsLocked *bool `json:"is_locked"`
}

func (r *SetPayrollLockRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.IsLocked == nil {
		errs.Add("is_locked", "is_locked is required")
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DeductionResponse struct {
	ID           string          `json:"id"`
	AttendanceID *string         `json:"attendance_id,omitempty"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

type PayrollResponse struct {
	ID              string              `json:"id"`
	WorkerID        string              `json:"worker_id"`
	Month           int                 `json:"month"`
	Year            int                 `json:"year"`
	BaseSalary      decimal.Decimal     `json:"base_salary"`
	IsLocked        bool                `json:"is_locked"`
	TotalDeductions decimal.Decimal     `json:"total_deductions"`
	Deductions      []DeductionResponse `json:"deductions"`
}

type ListPayrollResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Showing    string            `json:"showing"`
	Payrolls   []PayrollResponse `json:"payrolls"`
}
