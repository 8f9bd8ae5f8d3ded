package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

// GetByWorkerAndDate implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) GetByWorkerAndDate(ctx context.Context, workerID string, workDate time.Time) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT ws.id, ws.worker_id, ws.work_date, ws.shift_id, ws.department_id, ws.is_off, ws.created_at,
			   d.id, d.name,
			   s.name, s.start_time, s.end_time
		FROM work_schedules ws
		JOIN departments d ON d.id = ws.department_id
		LEFT JOIN shifts s ON s.id = ws.shift_id
		WHERE ws.worker_id = $1
		  AND ws.work_date = $2::date
	`

	var (
		ws         schedule.WorkSchedule
		shiftName  *string
		shiftStart *time.Time
		shiftEnd   *time.Time
	)
	err := q.QueryRow(ctx, query, workerID, workDate.Format(dateLayout)).Scan(
		&ws.ID, &ws.WorkerID, &ws.WorkDate, &ws.ShiftID, &ws.DepartmentID, &ws.IsOff, &ws.CreatedAt,
		&ws.Department.ID, &ws.Department.Name,
		&shiftName, &shiftStart, &shiftEnd,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	if ws.ShiftID != nil && shiftName != nil && shiftStart != nil && shiftEnd != nil {
		ws.Shift = &schedule.Shift{
			ID:        *ws.ShiftID,
			Name:      *shiftName,
			StartTime: *shiftStart,
			EndTime:   *shiftEnd,
		}
	}

	return ws, nil
}
