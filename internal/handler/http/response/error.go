package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// Error codes returned to clients
const (
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeForbidden           = "FORBIDDEN"
	CodeMissingField        = "MISSING_FIELD"
	CodeNoActiveGeofence    = "NO_ACTIVE_GEOFENCE"
	CodeOutsideRadius       = "OUTSIDE_RADIUS"
	CodeNoActiveSchedule    = "NO_ACTIVE_SCHEDULE"
	CodeWindowNotOpen       = "WINDOW_NOT_OPEN"
	CodeWindowClosed        = "WINDOW_CLOSED"
	CodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
	CodeStorageFailure      = "STORAGE_FAILURE"
)

const genericServerError = "An unexpected error occurred"

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Submission field errors carry per-field details
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		if errors.Is(err, attendance.ErrMissingField) {
			Error(w, http.StatusBadRequest, CodeMissingField, attendance.ErrMissingField.Error(), validationErrs.ToMap())
			return
		}
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity
	case errors.Is(err, attendance.ErrUnauthenticated):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, err.Error())

	// Attendance gates
	case errors.Is(err, attendance.ErrMissingField):
		Error(w, http.StatusBadRequest, CodeMissingField, err.Error(), nil)
	case errors.Is(err, attendance.ErrNoActiveGeofence):
		Error(w, http.StatusBadRequest, CodeNoActiveGeofence, err.Error(), nil)
	case errors.Is(err, attendance.ErrOutsideRadius):
		Error(w, http.StatusBadRequest, CodeOutsideRadius, err.Error(), nil)
	case errors.Is(err, attendance.ErrNoActiveSchedule):
		Error(w, http.StatusBadRequest, CodeNoActiveSchedule, err.Error(), nil)
	case errors.Is(err, attendance.ErrWindowNotOpen):
		Error(w, http.StatusBadRequest, CodeWindowNotOpen, err.Error(), nil)
	case errors.Is(err, attendance.ErrWindowClosed):
		Error(w, http.StatusBadRequest, CodeWindowClosed, err.Error(), nil)
	case errors.Is(err, attendance.ErrDuplicateSubmission):
		Error(w, http.StatusConflict, CodeDuplicateSubmission, attendance.ErrDuplicateSubmission.Error(), nil)
	case errors.Is(err, attendance.ErrStorageFailure):
		Error(w, http.StatusInternalServerError, CodeStorageFailure, genericServerError, nil)

	// Payroll
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, err.Error())

	// Location
	case errors.Is(err, location.ErrNoActiveOfficeLocation):
		NotFound(w, "Office location not found")

	// Default
	default:
		InternalServerError(w, genericServerError)
	}
}
