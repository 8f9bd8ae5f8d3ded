package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new record. It returns ErrDuplicateSubmission when a
	// record of the same type already exists for the worker on WorkDate; the
	// storage unique constraint is the authority, not a prior read.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// ExistsForDay reports whether a record of typ exists for the worker on workDate.
	ExistsForDay(ctx context.Context, workerID string, typ Type, workDate time.Time) (bool, error)

	// GetByWorkerAndDate returns every record of the worker on workDate.
	GetByWorkerAndDate(ctx context.Context, workerID string, workDate time.Time) ([]Attendance, error)

	// ListByWorker retrieves the worker's records, newest first, with pagination
	ListByWorker(ctx context.Context, workerID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// ListForPeriod retrieves every worker's records of the filter's month, oldest first
	ListForPeriod(ctx context.Context, filter AttendanceReportFilter) ([]Attendance, int64, error)
}
