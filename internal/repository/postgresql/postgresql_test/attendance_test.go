package postgresqltest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var wib = time.FixedZone("WIB", 7*3600)

func newAttendance(workerID string, typ attendance.Type, at time.Time) attendance.Attendance {
	return attendance.Attendance{
		ID:        uuid.NewString(),
		WorkerID:  workerID,
		Type:      typ,
		WorkDate:  time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location()),
		PhotoRef:  "photos/" + workerID + ".jpg",
		Latitude:  -6.2,
		Longitude: 106.8,
		Status:    attendance.StatusOnTime,
		CreatedAt: at,
	}
}

func TestAttendanceRepository_CreateAndRead(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()

	at := time.Date(2025, 3, 10, 8, 15, 0, 0, wib)
	notes := "traffic"
	in := newAttendance("worker-1", attendance.TypeCheckIn, at)
	in.Notes = &notes
	in.Status = attendance.StatusLate

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, in.ID, created.ID)
	assert.Equal(t, attendance.StatusLate, created.Status)
	assert.Equal(t, "2025-03-10", created.WorkDate.Format("2006-01-02"))
	require.NotNil(t, created.Notes)
	assert.Equal(t, notes, *created.Notes)
	assert.True(t, created.CreatedAt.Equal(at))

	exists, err := repo.ExistsForDay(ctx, "worker-1", attendance.TypeCheckIn, at)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForDay(ctx, "worker-1", attendance.TypeCheckOut, at)
	require.NoError(t, err)
	assert.False(t, exists)

	records, err := repo.GetByWorkerAndDate(ctx, "worker-1", at)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttendanceRepository_CreateDuplicate(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()

	at := time.Date(2025, 3, 10, 7, 0, 0, 0, wib)
	_, err := repo.Create(ctx, newAttendance("worker-1", attendance.TypeCheckIn, at))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newAttendance("worker-1", attendance.TypeCheckIn, at.Add(time.Hour)))
	assert.ErrorIs(t, err, attendance.ErrDuplicateSubmission)

	// A different type on the same day is allowed.
	_, err = repo.Create(ctx, newAttendance("worker-1", attendance.TypeCheckOut, at.Add(9*time.Hour)))
	assert.NoError(t, err)

	assert.Equal(t, 2, setup.count(t, "attendances"))
}

func TestAttendanceRepository_ConcurrentDuplicate(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()

	at := time.Date(2025, 3, 10, 7, 0, 0, 0, wib)
	const attempts = 8

	results := make([]error, attempts)
	var g errgroup.Group
	for i := 0; i < attempts; i++ {
		g.Go(func() error {
			_, results[i] = repo.Create(ctx, newAttendance("worker-1", attendance.TypeCheckIn, at))
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var ok, dup int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, attendance.ErrDuplicateSubmission):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, dup)
	assert.Equal(t, 1, setup.count(t, "attendances"))
}

func TestAttendanceRepository_ListByWorker(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		at := time.Date(2025, 3, day, 7, 0, 0, 0, wib)
		_, err := repo.Create(ctx, newAttendance("worker-1", attendance.TypeCheckIn, at))
		require.NoError(t, err)
		_, err = repo.Create(ctx, newAttendance("worker-1", attendance.TypeCheckOut, at.Add(9*time.Hour)))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, newAttendance("worker-2", attendance.TypeCheckIn, time.Date(2025, 3, 1, 7, 0, 0, 0, wib)))
	require.NoError(t, err)

	t.Run("newest first with pagination", func(t *testing.T) {
		records, total, err := repo.ListByWorker(ctx, "worker-1", attendance.MyAttendanceFilter{Page: 1, Limit: 4})
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		require.Len(t, records, 4)
		assert.Equal(t, attendance.TypeCheckOut, records[0].Type)
		assert.Equal(t, "2025-03-03", records[0].WorkDate.Format("2006-01-02"))
	})

	t.Run("date filter", func(t *testing.T) {
		date := "2025-03-02"
		records, total, err := repo.ListByWorker(ctx, "worker-1", attendance.MyAttendanceFilter{Date: &date, Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, records, 2)
	})

	t.Run("range and type filter", func(t *testing.T) {
		start, end, typ := "2025-03-02", "2025-03-03", string(attendance.TypeCheckIn)
		records, total, err := repo.ListByWorker(ctx, "worker-1", attendance.MyAttendanceFilter{
			StartDate: &start, EndDate: &end, Type: &typ, Page: 1, Limit: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, r := range records {
			assert.Equal(t, attendance.TypeCheckIn, r.Type)
		}
	})
}

func TestAttendanceRepository_ListForPeriod(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()

	for _, rec := range []attendance.Attendance{
		newAttendance("worker-1", attendance.TypeCheckIn, time.Date(2025, 2, 28, 7, 0, 0, 0, wib)),
		newAttendance("worker-2", attendance.TypeCheckIn, time.Date(2025, 3, 31, 7, 5, 0, 0, wib)),
		newAttendance("worker-1", attendance.TypeCheckIn, time.Date(2025, 3, 1, 7, 0, 0, 0, wib)),
		newAttendance("worker-1", attendance.TypeCheckOut, time.Date(2025, 3, 1, 16, 0, 0, 0, wib)),
		newAttendance("worker-1", attendance.TypeCheckIn, time.Date(2025, 4, 1, 7, 0, 0, 0, wib)),
	} {
		_, err := repo.Create(ctx, rec)
		require.NoError(t, err)
	}

	t.Run("month bounds oldest first", func(t *testing.T) {
		records, total, err := repo.ListForPeriod(ctx, attendance.AttendanceReportFilter{Month: 3, Year: 2025, Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, records, 3)
		assert.Equal(t, "2025-03-01", records[0].WorkDate.Format("2006-01-02"))
		assert.Equal(t, attendance.TypeCheckIn, records[0].Type)
		assert.Equal(t, attendance.TypeCheckOut, records[1].Type)
		assert.Equal(t, "2025-03-31", records[2].WorkDate.Format("2006-01-02"))
	})

	t.Run("worker and type filter", func(t *testing.T) {
		worker, typ := "worker-1", string(attendance.TypeCheckIn)
		records, total, err := repo.ListForPeriod(ctx, attendance.AttendanceReportFilter{
			Month: 3, Year: 2025, WorkerID: &worker, Type: &typ, Page: 1, Limit: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, records, 1)
		assert.Equal(t, "worker-1", records[0].WorkerID)
	})

	t.Run("pagination", func(t *testing.T) {
		records, total, err := repo.ListForPeriod(ctx, attendance.AttendanceReportFilter{Month: 3, Year: 2025, Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, records, 1)
		assert.Equal(t, "worker-2", records[0].WorkerID)
	})
}

func TestWorkScheduleRepository_GetByWorkerAndDate(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewWorkScheduleRepository(setup.DB)
	ctx := context.Background()

	security := setup.createDepartment(t, "Security")
	reception := setup.createDepartment(t, "Receptionist")
	night := setup.createShift(t, "Night",
		time.Date(1970, 1, 1, 19, 0, 0, 0, wib),
		time.Date(1970, 1, 1, 7, 0, 0, 0, wib))

	setup.createSchedule(t, "worker-1", "2025-03-10", security, &night, false)
	setup.createSchedule(t, "worker-2", "2025-03-10", reception, nil, false)
	setup.createSchedule(t, "worker-3", "2025-03-10", reception, nil, true)

	workDate := time.Date(2025, 3, 10, 0, 0, 0, 0, wib)

	t.Run("with shift", func(t *testing.T) {
		ws, err := repo.GetByWorkerAndDate(ctx, "worker-1", workDate)
		require.NoError(t, err)
		assert.Equal(t, "Security", ws.Department.Name)
		require.NotNil(t, ws.Shift)
		assert.Equal(t, "Night", ws.Shift.Name)
		assert.Equal(t, 19, ws.Shift.StartTime.In(wib).Hour())
		assert.True(t, ws.IsWorking())
	})

	t.Run("without shift", func(t *testing.T) {
		ws, err := repo.GetByWorkerAndDate(ctx, "worker-2", workDate)
		require.NoError(t, err)
		assert.Equal(t, "Receptionist", ws.Department.Name)
		assert.Nil(t, ws.Shift)
	})

	t.Run("day off", func(t *testing.T) {
		ws, err := repo.GetByWorkerAndDate(ctx, "worker-3", workDate)
		require.NoError(t, err)
		assert.False(t, ws.IsWorking())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByWorkerAndDate(ctx, "worker-1", workDate.AddDate(0, 0, 1))
		assert.ErrorIs(t, err, schedule.ErrWorkScheduleNotFound)
	})
}

func TestOfficeLocationRepository_GetActive(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewOfficeLocationRepository(setup.DB)
	ctx := context.Background()

	_, err := repo.GetActive(ctx)
	assert.ErrorIs(t, err, location.ErrNoActiveOfficeLocation)

	_, err = setup.DB.Exec(ctx, `
		INSERT INTO office_locations (id, name, latitude, longitude, radius, is_active)
		VALUES ($1, 'Old Office', -6.1, 106.7, 50, FALSE),
		       ($2, 'Head Office', -6.2, 106.8, 100, TRUE)
	`, uuid.NewString(), uuid.NewString())
	require.NoError(t, err)

	office, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Head Office", office.Name)
	assert.Equal(t, 100.0, office.Radius)
	assert.True(t, office.IsActive)
}
