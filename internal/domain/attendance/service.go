package attendance

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Submit validates a presence event and records it, with its lateness
	// deduction when applicable, in one transaction
	Submit(ctx context.Context, req SubmitAttendanceRequest) (SubmitAttendanceResponse, error)

	// GetMyAttendance retrieves attendance records for the authenticated worker
	GetMyAttendance(ctx context.Context, workerID string, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// GetTodayStatus reports today's schedule, windows and recorded events
	GetTodayStatus(ctx context.Context, workerID string) (TodayStatusResponse, error)

	// GetAttendanceReport lists every worker's records of one month (admin)
	GetAttendanceReport(ctx context.Context, filter AttendanceReportFilter) (AttendanceReportResponse, error)

	// GetActiveOfficeLocation returns the geofence submissions are checked against
	GetActiveOfficeLocation(ctx context.Context) (location.OfficeLocationResponse, error)
}
