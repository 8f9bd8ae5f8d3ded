package schedule

import "time"

type Department struct {
	ID   string
	Name string
}

// Shift is a named time-of-day interval. StartTime and EndTime are anchored to
// an arbitrary date; only their clock part is meaningful.
type Shift struct {
	ID        string
	Name      string
	StartTime time.Time
	EndTime   time.Time
}

// WorkSchedule assigns a worker to a department (and optionally a shift) on one date.
type WorkSchedule struct {
	ID           string
	WorkerID     string
	WorkDate     time.Time
	ShiftID      *string
	DepartmentID string
	IsOff        bool
	CreatedAt    time.Time

	// Joined fields
	Shift      *Shift
	Department Department
}

// IsWorking reports whether the schedule allows presence events.
func (w WorkSchedule) IsWorking() bool {
	return !w.IsOff
}
