package schedule

import (
	"context"
	"time"
)

// WorkScheduleRepository reads schedules produced by the scheduling module.
type WorkScheduleRepository interface {
	// GetByWorkerAndDate returns the schedule for workDate (date part only) joined
	// with its shift and department, or ErrWorkScheduleNotFound.
	GetByWorkerAndDate(ctx context.Context, workerID string, workDate time.Time) (WorkSchedule, error)
}
