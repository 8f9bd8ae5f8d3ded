package postgresqltest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup wraps the integration database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// Tests are skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))

	t.Cleanup(func() {
		_ = setup.TruncateAllTables(context.Background())
		setup.Close()
	})

	return setup
}

// TruncateAllTables removes every row from the engine tables
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"payroll_deductions",
		"payrolls",
		"attendances",
		"work_schedules",
		"shifts",
		"departments",
		"office_locations",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database connection
func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}

func (s *TestDatabaseSetup) createDepartment(t *testing.T, name string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := s.DB.Exec(context.Background(),
		`INSERT INTO departments (id, name) VALUES ($1, $2)`, id, name)
	require.NoError(t, err)
	return id
}

func (s *TestDatabaseSetup) createShift(t *testing.T, name string, start, end time.Time) string {
	t.Helper()
	id := uuid.NewString()
	_, err := s.DB.Exec(context.Background(),
		`INSERT INTO shifts (id, name, start_time, end_time) VALUES ($1, $2, $3, $4)`, id, name, start, end)
	require.NoError(t, err)
	return id
}

func (s *TestDatabaseSetup) createSchedule(t *testing.T, workerID, workDate, departmentID string, shiftID *string, isOff bool) {
	t.Helper()
	_, err := s.DB.Exec(context.Background(), `
		INSERT INTO work_schedules (id, worker_id, work_date, shift_id, department_id, is_off)
		VALUES ($1, $2, $3::date, $4, $5, $6)
	`, uuid.NewString(), workerID, workDate, shiftID, departmentID, isOff)
	require.NoError(t, err)
}

func (s *TestDatabaseSetup) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	err := s.DB.QueryRow(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n)
	require.NoError(t, err)
	return n
}
