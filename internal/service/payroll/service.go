package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	transactor  database.Transactor
	payrollRepo payroll.PayrollRepository
	loc         *time.Location
}

func NewPayrollService(
	transactor database.Transactor,
	payrollRepo payroll.PayrollRepository,
	loc *time.Location,
) payroll.PayrollService {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollServiceImpl{
		transactor:  transactor,
		payrollRepo: payrollRepo,
		loc:         loc,
	}
}

// AppendLateDeduction implements payroll.DeductionLedger.
func (s *PayrollServiceImpl) AppendLateDeduction(ctx context.Context, entry payroll.LateDeductionEntry) (payroll.PayrollDeduction, error) {
	if entry.WorkerID == "" {
		return payroll.PayrollDeduction{}, payroll.ErrDeductionWithoutWorker
	}
	if !entry.Amount.IsPositive() {
		return payroll.PayrollDeduction{}, payroll.ErrNonPositiveDeduction
	}

	occurred := entry.OccurredAt.In(s.loc)
	month, year := int(occurred.Month()), occurred.Year()

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollDeduction{}, fmt.Errorf("failed to generate deduction id: %w", err)
	}

	var created payroll.PayrollDeduction
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		period, err := s.payrollRepo.GetOrCreateForPeriod(txCtx, entry.WorkerID, month, year)
		if err != nil {
			return err
		}

		deduction := payroll.PayrollDeduction{
			ID:        id.String(),
			PayrollID: period.ID,
			Type:      payroll.DeductionTypeLate,
			Amount:    entry.Amount,
		}
		if entry.AttendanceID != "" {
			deduction.AttendanceID = &entry.AttendanceID
		}
		if entry.Notes != "" {
			deduction.Notes = &entry.Notes
		}

		created, err = s.payrollRepo.CreateDeduction(txCtx, deduction)
		return err
	})
	if err != nil {
		return payroll.PayrollDeduction{}, fmt.Errorf("failed to append late deduction: %w", err)
	}

	return created, nil
}

// GetMyPayrolls implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetMyPayrolls(ctx context.Context, workerID string, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	filter.WorkerID = &workerID
	return s.ListPayrolls(ctx, filter)
}

// ListPayrolls implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	payrolls, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payrolls: %w", err)
	}

	responses, err := s.withDeductions(ctx, payrolls)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return payroll.ListPayrollResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Payrolls:   responses,
	}, nil
}

// SetPayrollLock implements payroll.PayrollService.
func (s *PayrollServiceImpl) SetPayrollLock(ctx context.Context, payrollID string, req payroll.SetPayrollLockRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}
	if _, err := uuid.Parse(payrollID); err != nil {
		return payroll.PayrollResponse{}, payroll.ErrPayrollNotFound
	}

	updated, err := s.payrollRepo.SetLocked(ctx, payrollID, *req.IsLocked)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	slog.Info("payroll lock updated", "payroll_id", updated.ID, "is_locked", updated.IsLocked)

	responses, err := s.withDeductions(ctx, []payroll.Payroll{updated})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return responses[0], nil
}

func (s *PayrollServiceImpl) withDeductions(ctx context.Context, payrolls []payroll.Payroll) ([]payroll.PayrollResponse, error) {
	ids := make([]string, 0, len(payrolls))
	for _, p := range payrolls {
		ids = append(ids, p.ID)
	}

	deductions, err := s.payrollRepo.GetDeductionsByPayrollIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll deductions: %w", err)
	}

	byPayroll := make(map[string][]payroll.PayrollDeduction, len(payrolls))
	for _, d := range deductions {
		byPayroll[d.PayrollID] = append(byPayroll[d.PayrollID], d)
	}

	responses := make([]payroll.PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		p.Deductions = byPayroll[p.ID]
		responses = append(responses, mapPayrollToResponse(p))
	}
	return responses, nil
}

func mapPayrollToResponse(p payroll.Payroll) payroll.PayrollResponse {
	deductions := make([]payroll.DeductionResponse, 0, len(p.Deductions))
	for _, d := range p.Deductions {
		deductions = append(deductions, payroll.DeductionResponse{
			ID:           d.ID,
			AttendanceID: d.AttendanceID,
			Type:         string(d.Type),
			Amount:       d.Amount,
			Notes:        d.Notes,
			CreatedAt:    d.CreatedAt.Format(time.RFC3339),
		})
	}

	return payroll.PayrollResponse{
		ID:              p.ID,
		WorkerID:        p.WorkerID,
		Month:           p.Month,
		Year:            p.Year,
		BaseSalary:      p.BaseSalary,
		IsLocked:        p.IsLocked,
		TotalDeductions: p.TotalDeductions(),
		Deductions:      deductions,
	}
}
