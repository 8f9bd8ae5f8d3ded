package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

// ClockTime is a wall-clock time of day.
type ClockTime struct {
	Hour, Minute, Second, Nanosecond int
}

// Clock builds a ClockTime with whole minutes.
func Clock(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// EndOfDay is 23:59:59.999.
var EndOfDay = ClockTime{Hour: 23, Minute: 59, Second: 59, Nanosecond: 999 * int(time.Millisecond)}

// On places c on the calendar date of day, in loc.
func (c ClockTime) On(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, c.Hour, c.Minute, c.Second, c.Nanosecond, loc)
}

func clockOf(t time.Time, loc *time.Location) ClockTime {
	t = t.In(loc)
	return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}
}

// WindowRule overrides the check-in opening and check-out closing times for a
// department, optionally restricted to one shift. Names match exactly.
type WindowRule struct {
	Department      string
	Shift           string // empty matches any shift, including none
	CheckInOpens    ClockTime
	CheckOutCloses  ClockTime
	CheckOutNextDay bool
}

func (r WindowRule) matches(ws schedule.WorkSchedule) bool {
	if r.Department != ws.Department.Name {
		return false
	}
	if r.Shift == "" {
		return true
	}
	return ws.Shift != nil && ws.Shift.Name == r.Shift
}

// DefaultWindowRules returns the override table, evaluated in order.
func DefaultWindowRules() []WindowRule {
	return []WindowRule{
		{Department: "Security", Shift: "Morning", CheckInOpens: Clock(6, 0), CheckOutCloses: EndOfDay},
		{Department: "Security", Shift: "Night", CheckInOpens: Clock(18, 0), CheckOutCloses: Clock(10, 0), CheckOutNextDay: true},
		{Department: "Receptionist", CheckInOpens: Clock(5, 30), CheckOutCloses: EndOfDay},
		{Department: "Cleaning staff", CheckInOpens: Clock(5, 0), CheckOutCloses: EndOfDay},
	}
}

var (
	defaultStart = Clock(7, 0)
	defaultEnd   = Clock(17, 0)
)

// Window holds the instants a submission on one work date is checked against.
type Window struct {
	ScheduledStart   time.Time
	ScheduledEnd     time.Time
	CheckInOpensAt   time.Time
	CheckOutClosesAt time.Time
}

// Check reports whether a submission of typ at now falls inside the window.
func (w Window) Check(typ attendance.Type, now time.Time) error {
	switch typ {
	case attendance.TypeCheckIn:
		if now.Before(w.CheckInOpensAt) {
			return attendance.ErrWindowNotOpen
		}
	case attendance.TypeCheckOut:
		if now.After(w.CheckOutClosesAt) {
			return attendance.ErrWindowClosed
		}
	}
	return nil
}

// WindowPolicy computes attendance windows from a resolved schedule.
type WindowPolicy struct {
	rules []WindowRule
	loc   *time.Location
}

func NewWindowPolicy(loc *time.Location, rules []WindowRule) *WindowPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return &WindowPolicy{rules: rules, loc: loc}
}

// Compute derives the window for ws on workDate. Without an override, check-in
// opens at the scheduled start and check-out closes at the scheduled end.
func (p *WindowPolicy) Compute(ws schedule.WorkSchedule, workDate time.Time) Window {
	startClock, endClock := defaultStart, defaultEnd
	if ws.Shift != nil {
		startClock = clockOf(ws.Shift.StartTime, p.loc)
		endClock = clockOf(ws.Shift.EndTime, p.loc)
	}

	start := startClock.On(workDate, p.loc)
	end := endClock.On(workDate, p.loc)
	if !end.After(start) {
		end = endClock.On(workDate.AddDate(0, 0, 1), p.loc)
	}

	w := Window{
		ScheduledStart:   start,
		ScheduledEnd:     end,
		CheckInOpensAt:   start,
		CheckOutClosesAt: end,
	}

	for _, r := range p.rules {
		if !r.matches(ws) {
			continue
		}
		w.CheckInOpensAt = r.CheckInOpens.On(workDate, p.loc)
		closeDay := workDate
		if r.CheckOutNextDay {
			closeDay = workDate.AddDate(0, 0, 1)
		}
		w.CheckOutClosesAt = r.CheckOutCloses.On(closeDay, p.loc)
		break
	}

	return w
}
