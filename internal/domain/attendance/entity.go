package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type Type string

const (
	TypeCheckIn  Type = "CHECK_IN"
	TypeCheckOut Type = "CHECK_OUT"
)

var TypeValues = []string{
	string(TypeCheckIn),
	string(TypeCheckOut),
}

// ParseType normalizes s to upper case and reports whether it names a known type.
func ParseType(s string) (Type, bool) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if !validator.IsInSlice(t, TypeValues) {
		return "", false
	}
	return Type(t), true
}

type Status string

const (
	StatusOnTime Status = "ON_TIME" // HADIR
	StatusLate   Status = "LATE"    // TERLAMBAT
)

// Attendance is an immutable presence event. CreatedAt is the event time;
// WorkDate is its calendar day in the application timezone.
type Attendance struct {
	ID        string
	WorkerID  string
	Type      Type
	WorkDate  time.Time
	PhotoRef  string
	Latitude  float64
	Longitude float64
	Notes     *string
	Status    Status
	CreatedAt time.Time
}
