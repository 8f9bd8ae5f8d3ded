package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const dateLayout = "2006-01-02"

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, worker_id, type, work_date, photo_ref,
			latitude, longitude, notes, status, created_at
		) VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10)
		ON CONFLICT ON CONSTRAINT uq_attendances_worker_type_day DO NOTHING
		RETURNING id, worker_id, type, work_date, photo_ref,
			latitude, longitude, notes, status, created_at
	`

	var created attendance.Attendance
	err := q.QueryRow(ctx, query,
		newAttendance.ID, newAttendance.WorkerID, newAttendance.Type,
		newAttendance.WorkDate.Format(dateLayout), newAttendance.PhotoRef,
		newAttendance.Latitude, newAttendance.Longitude, newAttendance.Notes,
		newAttendance.Status, newAttendance.CreatedAt,
	).Scan(
		&created.ID, &created.WorkerID, &created.Type, &created.WorkDate, &created.PhotoRef,
		&created.Latitude, &created.Longitude, &created.Notes, &created.Status, &created.CreatedAt,
	)
	if err != nil {
		// DO NOTHING returns no row when the unique constraint fired.
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrDuplicateSubmission
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// ExistsForDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) ExistsForDay(ctx context.Context, workerID string, typ attendance.Type, workDate time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendances
			WHERE worker_id = $1
			  AND type = $2
			  AND work_date = $3::date
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, workerID, typ, workDate.Format(dateLayout)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing attendance: %w", err)
	}

	return exists, nil
}

// GetByWorkerAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByWorkerAndDate(ctx context.Context, workerID string, workDate time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, worker_id, type, work_date, photo_ref,
			   latitude, longitude, notes, status, created_at
		FROM attendances
		WHERE worker_id = $1
		  AND work_date = $2::date
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, workerID, workDate.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	attendances, err := scanAttendances(rows)
	if err != nil {
		return nil, err
	}

	return attendances, nil
}

// ListByWorker implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByWorker(ctx context.Context, workerID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	criteria := attendanceCriteria{
		workerID:  &workerID,
		date:      filter.Date,
		startDate: filter.StartDate,
		endDate:   filter.EndDate,
		typ:       filter.Type,
	}
	return a.list(ctx, criteria, "created_at DESC", filter.Page, filter.Limit)
}

// ListForPeriod implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListForPeriod(ctx context.Context, filter attendance.AttendanceReportFilter) ([]attendance.Attendance, int64, error) {
	start, end := filter.Period()
	criteria := attendanceCriteria{
		workerID:  filter.WorkerID,
		startDate: &start,
		endDate:   &end,
		typ:       filter.Type,
	}
	return a.list(ctx, criteria, "created_at ASC, worker_id ASC", filter.Page, filter.Limit)
}

// attendanceCriteria holds optional predicates; nil or empty fields are ignored.
type attendanceCriteria struct {
	workerID  *string
	date      *string // YYYY-MM-DD
	startDate *string // YYYY-MM-DD, inclusive
	endDate   *string // YYYY-MM-DD, inclusive
	typ       *string
}

func (c attendanceCriteria) where() (string, []interface{}) {
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	add := func(clause string, value *string) {
		if value == nil || *value == "" {
			return
		}
		baseWhere += fmt.Sprintf(clause, argIdx)
		args = append(args, *value)
		argIdx++
	}

	add(" AND worker_id = $%d", c.workerID)
	add(" AND work_date = $%d::date", c.date)
	add(" AND work_date >= $%d::date", c.startDate)
	add(" AND work_date <= $%d::date", c.endDate)
	add(" AND type = $%d", c.typ)

	return baseWhere, args
}

func (a *attendanceRepository) list(ctx context.Context, criteria attendanceCriteria, orderBy string, page, limit int) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere, args := criteria.where()

	countQuery := "SELECT COUNT(*) FROM attendances WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	if limit == 0 {
		limit = 20
	}
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit

	argIdx := len(args) + 1
	selectQuery := fmt.Sprintf(`
		SELECT id, worker_id, type, work_date, photo_ref,
			   latitude, longitude, notes, status, created_at
		FROM attendances
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderBy, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	attendances, err := scanAttendances(rows)
	if err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

func scanAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.WorkerID, &att.Type, &att.WorkDate, &att.PhotoRef,
			&att.Latitude, &att.Longitude, &att.Notes, &att.Status, &att.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return attendances, nil
}
