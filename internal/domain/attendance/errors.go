package attendance

import (
	"errors"
	"fmt"
	"math"
)

// Attendance submission errors. Every gate failure is terminal for the
// submission; callers may resubmit after fixing the condition.
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrMissingField        = errors.New("required field is missing or invalid")
	ErrNoActiveGeofence    = errors.New("office location has not been configured")
	ErrOutsideRadius       = errors.New("you are outside the allowed radius")
	ErrNoActiveSchedule    = errors.New("you have no active work schedule today")
	ErrWindowNotOpen       = errors.New("check-in is not open yet")
	ErrWindowClosed        = errors.New("check-out window has already closed")
	ErrDuplicateSubmission = errors.New("attendance of this type has already been recorded today")
	ErrStorageFailure      = errors.New("storage failure")
)

// OutsideRadiusError carries the measured distance for user feedback.
type OutsideRadiusError struct {
	Distance float64 // meters
	Radius   float64 // meters
}

func (e *OutsideRadiusError) Error() string {
	return fmt.Sprintf("%s. distance: %.0fm, radius: %.0fm", ErrOutsideRadius, math.Round(e.Distance), e.Radius)
}

func (e *OutsideRadiusError) Is(target error) bool {
	return target == ErrOutsideRadius
}
