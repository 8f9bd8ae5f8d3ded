package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	transactor database.Transactor
	attendance.AttendanceRepository
	location.OfficeLocationRepository
	ledger   payroll.DeductionLedger
	resolver *ScheduleResolver
	policy   *WindowPolicy
	loc      *time.Location
	now      func() time.Time
}

func NewAttendanceService(
	transactor database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	officeLocationRepo location.OfficeLocationRepository,
	workScheduleRepo schedule.WorkScheduleRepository,
	ledger payroll.DeductionLedger,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		transactor:               transactor,
		AttendanceRepository:     attendanceRepo,
		OfficeLocationRepository: officeLocationRepo,
		ledger:                   ledger,
		resolver:                 NewScheduleResolver(workScheduleRepo, loc),
		policy:                   NewWindowPolicy(loc, DefaultWindowRules()),
		loc:                      loc,
		now:                      time.Now,
	}
}

// storageFailure logs err and hides it behind ErrStorageFailure.
func storageFailure(op string, err error) error {
	slog.Error("attendance storage failure", "op", op, "error", err)
	return fmt.Errorf("%w: %w", attendance.ErrStorageFailure, err)
}

// Submit implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Submit(ctx context.Context, req attendance.SubmitAttendanceRequest) (attendance.SubmitAttendanceResponse, error) {
	if strings.TrimSpace(req.WorkerID) == "" {
		return attendance.SubmitAttendanceResponse{}, attendance.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return attendance.SubmitAttendanceResponse{}, err
	}
	typ, _ := attendance.ParseType(req.Type)
	now := a.now().In(a.loc)

	// Geofence
	office, err := a.OfficeLocationRepository.GetActive(ctx)
	if err != nil {
		if errors.Is(err, location.ErrNoActiveOfficeLocation) {
			return attendance.SubmitAttendanceResponse{}, attendance.ErrNoActiveGeofence
		}
		return attendance.SubmitAttendanceResponse{}, storageFailure("get active office location", err)
	}
	if !utils.IsWithin(req.Point(), office.Center(), office.Radius) {
		return attendance.SubmitAttendanceResponse{}, &attendance.OutsideRadiusError{
			Distance: utils.Distance(req.Point(), office.Center()),
			Radius:   office.Radius,
		}
	}

	// Schedule
	ws, err := a.resolver.Resolve(ctx, req.WorkerID, now)
	if err != nil {
		if errors.Is(err, attendance.ErrNoActiveSchedule) {
			return attendance.SubmitAttendanceResponse{}, err
		}
		return attendance.SubmitAttendanceResponse{}, storageFailure("resolve schedule", err)
	}
	workDate := a.resolver.WorkDate(now)

	// Window
	window := a.policy.Compute(ws, workDate)
	if err := window.Check(typ, now); err != nil {
		return attendance.SubmitAttendanceResponse{}, err
	}

	status, deduction, lateMinutes := attendance.StatusOnTime, decimal.Zero, 0
	if typ == attendance.TypeCheckIn {
		lateMinutes = MinutesLate(window.ScheduledStart, now)
		status, deduction = CalculateLateTier(lateMinutes)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.SubmitAttendanceResponse{}, storageFailure("generate attendance id", err)
	}

	record := attendance.Attendance{
		ID:        id.String(),
		WorkerID:  req.WorkerID,
		Type:      typ,
		WorkDate:  workDate,
		PhotoRef:  req.PhotoRef,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Notes:     req.Notes,
		Status:    status,
		CreatedAt: now,
	}

	var created attendance.Attendance
	err = a.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		exists, err := a.AttendanceRepository.ExistsForDay(txCtx, req.WorkerID, typ, workDate)
		if err != nil {
			return err
		}
		if exists {
			return attendance.ErrDuplicateSubmission
		}

		created, err = a.AttendanceRepository.Create(txCtx, record)
		if err != nil {
			return err
		}

		if deduction.IsPositive() {
			_, err = a.ledger.AppendLateDeduction(txCtx, payroll.LateDeductionEntry{
				WorkerID:     created.WorkerID,
				AttendanceID: created.ID,
				OccurredAt:   now,
				Amount:       deduction,
				Notes:        string(status),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateSubmission) {
			return attendance.SubmitAttendanceResponse{}, attendance.ErrDuplicateSubmission
		}
		return attendance.SubmitAttendanceResponse{}, storageFailure("record attendance", err)
	}

	slog.Info("attendance recorded",
		"attendance_id", created.ID,
		"worker_id", created.WorkerID,
		"type", created.Type,
		"status", created.Status,
		"late_minutes", lateMinutes,
	)

	return attendance.SubmitAttendanceResponse{
		Attendance:  a.mapAttendanceToResponse(created),
		Status:      string(status),
		Deduction:   deduction,
		LateMinutes: lateMinutes,
	}, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, workerID string, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if strings.TrimSpace(workerID) == "" {
		return attendance.ListAttendanceResponse{}, attendance.ErrUnauthenticated
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := a.AttendanceRepository.ListByWorker(ctx, workerID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	// Map to response
	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, a.mapAttendanceToResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// GetAttendanceReport implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendanceReport(ctx context.Context, filter attendance.AttendanceReportFilter) (attendance.AttendanceReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.AttendanceReportResponse{}, err
	}

	attendances, total, err := a.AttendanceRepository.ListForPeriod(ctx, filter)
	if err != nil {
		return attendance.AttendanceReportResponse{}, fmt.Errorf("failed to get attendance report: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, a.mapAttendanceToResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.AttendanceReportResponse{
		Month:       filter.Month,
		Year:        filter.Year,
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// GetTodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, workerID string) (attendance.TodayStatusResponse, error) {
	if strings.TrimSpace(workerID) == "" {
		return attendance.TodayStatusResponse{}, attendance.ErrUnauthenticated
	}

	now := a.now().In(a.loc)
	workDate := a.resolver.WorkDate(now)

	resp := attendance.TodayStatusResponse{
		Date: workDate.Format(validator.DateLayout),
	}

	records, err := a.AttendanceRepository.GetByWorkerAndDate(ctx, workerID, workDate)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	for _, r := range records {
		switch r.Type {
		case attendance.TypeCheckIn:
			resp.HasCheckedIn = true
		case attendance.TypeCheckOut:
			resp.HasCheckedOut = true
		}
	}

	ws, err := a.resolver.Resolve(ctx, workerID, now)
	if err != nil {
		if errors.Is(err, attendance.ErrNoActiveSchedule) {
			resp.Message = attendance.ErrNoActiveSchedule.Error()
			return resp, nil
		}
		return attendance.TodayStatusResponse{}, err
	}

	window := a.policy.Compute(ws, workDate)
	resp.HasScheduleToday = true
	resp.ScheduleInfo = &attendance.ScheduleInfo{
		Department:       ws.Department.Name,
		ScheduledStart:   window.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:     window.ScheduledEnd.Format(time.RFC3339),
		CheckInOpensAt:   window.CheckInOpensAt.Format(time.RFC3339),
		CheckOutClosesAt: window.CheckOutClosesAt.Format(time.RFC3339),
	}
	if ws.Shift != nil {
		resp.ScheduleInfo.Shift = &ws.Shift.Name
	}

	resp.CanCheckIn = !resp.HasCheckedIn && window.Check(attendance.TypeCheckIn, now) == nil
	resp.CanCheckOut = !resp.HasCheckedOut && window.Check(attendance.TypeCheckOut, now) == nil

	switch {
	case resp.HasCheckedIn && resp.HasCheckedOut:
		resp.Message = "You have completed attendance for today"
	case resp.CanCheckIn:
		resp.Message = "You can check in now"
	case !resp.HasCheckedIn && now.Before(window.CheckInOpensAt):
		resp.Message = "Check-in opens at " + window.CheckInOpensAt.Format("15:04")
	case resp.CanCheckOut:
		resp.Message = "You can check out now"
	default:
		resp.Message = attendance.ErrWindowClosed.Error()
	}

	return resp, nil
}

// GetActiveOfficeLocation implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetActiveOfficeLocation(ctx context.Context) (location.OfficeLocationResponse, error) {
	office, err := a.OfficeLocationRepository.GetActive(ctx)
	if err != nil {
		if errors.Is(err, location.ErrNoActiveOfficeLocation) {
			return location.OfficeLocationResponse{}, err
		}
		return location.OfficeLocationResponse{}, fmt.Errorf("failed to get active office location: %w", err)
	}
	return location.NewOfficeLocationResponse(office), nil
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func (a *AttendanceServiceImpl) mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:        att.ID,
		WorkerID:  att.WorkerID,
		Type:      string(att.Type),
		Date:      att.WorkDate.Format(validator.DateLayout),
		Timestamp: att.CreatedAt.In(a.loc).Format(time.RFC3339),
		PhotoRef:  att.PhotoRef,
		Latitude:  att.Latitude,
		Longitude: att.Longitude,
		Notes:     att.Notes,
		Status:    string(att.Status),
	}
}
