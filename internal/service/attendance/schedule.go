package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

// ScheduleResolver finds the working schedule of a worker on a date.
type ScheduleResolver struct {
	repo schedule.WorkScheduleRepository
	loc  *time.Location
}

func NewScheduleResolver(repo schedule.WorkScheduleRepository, loc *time.Location) *ScheduleResolver {
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleResolver{repo: repo, loc: loc}
}

// WorkDate truncates t to local midnight.
func (r *ScheduleResolver) WorkDate(t time.Time) time.Time {
	y, m, d := t.In(r.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.loc)
}

// Resolve returns the schedule for the worker on the date of t. A missing
// schedule and a day off both yield ErrNoActiveSchedule.
func (r *ScheduleResolver) Resolve(ctx context.Context, workerID string, t time.Time) (schedule.WorkSchedule, error) {
	ws, err := r.repo.GetByWorkerAndDate(ctx, workerID, r.WorkDate(t))
	if err != nil {
		if errors.Is(err, schedule.ErrWorkScheduleNotFound) {
			return schedule.WorkSchedule{}, attendance.ErrNoActiveSchedule
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}
	if !ws.IsWorking() {
		return schedule.WorkSchedule{}, attendance.ErrNoActiveSchedule
	}
	return ws, nil
}
