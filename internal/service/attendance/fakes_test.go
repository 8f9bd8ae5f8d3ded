package attendance

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

// memStore is an in-memory stand-in for the database shared by the fake
// repositories. The fake transactor snapshots it and restores on failure.
type memStore struct {
	mu          sync.Mutex
	attendances []attendance.Attendance
	payrolls    []payroll.Payroll
	deductions  []payroll.PayrollDeduction
}

type memSnapshot struct {
	attendances []attendance.Attendance
	payrolls    []payroll.Payroll
	deductions  []payroll.PayrollDeduction
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		attendances: slices.Clone(s.attendances),
		payrolls:    slices.Clone(s.payrolls),
		deductions:  slices.Clone(s.deductions),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendances = snap.attendances
	s.payrolls = snap.payrolls
	s.deductions = snap.deductions
}

func (s *memStore) counts() (attendances, payrolls, deductions int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attendances), len(s.payrolls), len(s.deductions)
}

type fakeTxKey struct{}

// fakeTransactor serializes transactions and rolls the store back on error.
type fakeTransactor struct {
	store *memStore
	txMu  sync.Mutex
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}

	f.txMu.Lock()
	defer f.txMu.Unlock()

	snap := f.store.snapshot()
	if err := fn(context.WithValue(ctx, fakeTxKey{}, true)); err != nil {
		f.store.restore(snap)
		return err
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

type fakeAttendanceRepo struct {
	store     *memStore
	createErr error
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if r.createErr != nil {
		return attendance.Attendance{}, r.createErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.attendances {
		if existing.WorkerID == a.WorkerID && existing.Type == a.Type && sameDay(existing.WorkDate, a.WorkDate) {
			return attendance.Attendance{}, attendance.ErrDuplicateSubmission
		}
	}
	r.store.attendances = append(r.store.attendances, a)
	return a, nil
}

func (r *fakeAttendanceRepo) ExistsForDay(_ context.Context, workerID string, typ attendance.Type, workDate time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.attendances {
		if a.WorkerID == workerID && a.Type == typ && sameDay(a.WorkDate, workDate) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAttendanceRepo) GetByWorkerAndDate(_ context.Context, workerID string, workDate time.Time) ([]attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.store.attendances {
		if a.WorkerID == workerID && sameDay(a.WorkDate, workDate) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListByWorker(_ context.Context, workerID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.store.attendances {
		if a.WorkerID != workerID {
			continue
		}
		if filter.Type != nil && string(a.Type) != *filter.Type {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	start := min((filter.Page-1)*filter.Limit, len(out))
	end := min(start+filter.Limit, len(out))
	return out[start:end], total, nil
}

func (r *fakeAttendanceRepo) ListForPeriod(_ context.Context, filter attendance.AttendanceReportFilter) ([]attendance.Attendance, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.store.attendances {
		if a.WorkDate.Year() != filter.Year || int(a.WorkDate.Month()) != filter.Month {
			continue
		}
		if filter.WorkerID != nil && a.WorkerID != *filter.WorkerID {
			continue
		}
		if filter.Type != nil && string(a.Type) != *filter.Type {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	total := int64(len(out))
	start := min((filter.Page-1)*filter.Limit, len(out))
	end := min(start+filter.Limit, len(out))
	return out[start:end], total, nil
}

type fakeOfficeRepo struct {
	office *location.OfficeLocation
	err    error
}

func (r *fakeOfficeRepo) GetActive(context.Context) (location.OfficeLocation, error) {
	if r.err != nil {
		return location.OfficeLocation{}, r.err
	}
	if r.office == nil {
		return location.OfficeLocation{}, location.ErrNoActiveOfficeLocation
	}
	return *r.office, nil
}

type fakeScheduleRepo struct {
	schedules map[string]schedule.WorkSchedule // key: worker|date
	err       error
}

func (r *fakeScheduleRepo) put(ws schedule.WorkSchedule) {
	if r.schedules == nil {
		r.schedules = map[string]schedule.WorkSchedule{}
	}
	r.schedules[ws.WorkerID+"|"+ws.WorkDate.Format("2006-01-02")] = ws
}

func (r *fakeScheduleRepo) GetByWorkerAndDate(_ context.Context, workerID string, workDate time.Time) (schedule.WorkSchedule, error) {
	if r.err != nil {
		return schedule.WorkSchedule{}, r.err
	}
	ws, ok := r.schedules[workerID+"|"+workDate.Format("2006-01-02")]
	if !ok {
		return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
	}
	return ws, nil
}

type fakePayrollRepo struct {
	store        *memStore
	deductionErr error
	seq          int
}

func (r *fakePayrollRepo) GetOrCreateForPeriod(_ context.Context, workerID string, month, year int) (payroll.Payroll, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.payrolls {
		if p.WorkerID == workerID && p.Month == month && p.Year == year {
			return p, nil
		}
	}
	r.seq++
	p := payroll.Payroll{
		ID:       fmt.Sprintf("payroll-%d", r.seq),
		WorkerID: workerID,
		Month:    month,
		Year:     year,
	}
	r.store.payrolls = append(r.store.payrolls, p)
	return p, nil
}

func (r *fakePayrollRepo) CreateDeduction(_ context.Context, d payroll.PayrollDeduction) (payroll.PayrollDeduction, error) {
	if r.deductionErr != nil {
		return payroll.PayrollDeduction{}, r.deductionErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.deductions = append(r.store.deductions, d)
	return d, nil
}

func (r *fakePayrollRepo) SetLocked(context.Context, string, bool) (payroll.Payroll, error) {
	return payroll.Payroll{}, errors.New("not used")
}

func (r *fakePayrollRepo) List(context.Context, payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	return nil, 0, errors.New("not used")
}

func (r *fakePayrollRepo) GetDeductionsByPayrollIDs(context.Context, []string) ([]payroll.PayrollDeduction, error) {
	return nil, errors.New("not used")
}
