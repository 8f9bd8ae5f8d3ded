package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// SUBMISSION DTOs
// ========================================

type SubmitAttendanceRequest struct {
	WorkerID  string   `json:"-"` // from verified claims
	Type      string   `json:"type"`
	PhotoRef  string   `json:"photo_ref"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     *string  `json:"notes,omitempty"`
}

// Validate checks required fields. The returned error matches ErrMissingField
// and unwraps to validator.ValidationErrors.
func (r *SubmitAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Type) {
		errs.Add("type", "type is required")
	} else if _, ok := ParseType(r.Type); !ok {
		errs.Add("type", "type must be one of: "+strings.Join(TypeValues, ", "))
	}

	if validator.IsEmpty(r.PhotoRef) {
		errs.Add("photo_ref", "attendance photo is required")
	}

	if r.Latitude == nil {
		errs.Add("latitude", "latitude is required")
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}

	if r.Longitude == nil {
		errs.Add("longitude", "longitude is required")
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrMissingField, errs)
	}

	return nil
}

// Point returns the submitted coordinates. Call only after Validate.
func (r *SubmitAttendanceRequest) Point() utils.Coordinate {
	return utils.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

type AttendanceResponse struct {
	ID        string  `json:"id"`
	WorkerID  string  `json:"worker_id"`
	Type      string  `json:"type"`
	Date      string  `json:"date"`
	Timestamp string  `json:"timestamp"`
	PhotoRef  string  `json:"photo_ref"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Notes     *string `json:"notes,omitempty"`
	Status    string  `json:"status"`
}

type SubmitAttendanceResponse struct {
	Attendance  AttendanceResponse `json:"attendance"`
	Status      string             `json:"status"`
	Deduction   decimal.Decimal    `json:"deduction"`
	LateMinutes int                `json:"late_minutes"`
}

// ========================================
// HISTORY DTOs
// ========================================

type MyAttendanceFilter struct {
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Type      *string `json:"type,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *MyAttendanceFilter) Validate() error {
	errs := validator.Pagination(&f.Page, &f.Limit)

	if f.Type != nil && *f.Type != "" {
		t, ok := ParseType(*f.Type)
		if !ok {
			errs.Add("type", "type must be one of: "+strings.Join(TypeValues, ", "))
		} else {
			normalized := string(t)
			f.Type = &normalized
		}
	}

	// Date validation
	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}

	var start, end time.Time
	var hasStart, hasEnd bool
	if f.StartDate != nil && *f.StartDate != "" {
		if start, hasStart = validator.IsValidDate(*f.StartDate); !hasStart {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if end, hasEnd = validator.IsValidDate(*f.EndDate); !hasEnd {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	if hasStart && hasEnd && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// TODAY STATUS DTOs
// ========================================

type TodayStatusResponse struct {
	Date             string        `json:"date"`
	HasScheduleToday bool          `json:"has_schedule_today"`
	ScheduleInfo     *ScheduleInfo `json:"schedule_info,omitempty"`
	HasCheckedIn     bool          `json:"has_checked_in"`
	HasCheckedOut    bool          `json:"has_checked_out"`
	CanCheckIn       bool          `json:"can_check_in"`
	CanCheckOut      bool          `json:"can_check_out"`
	Message          string        `json:"message"`
}

type ScheduleInfo struct {
	Department       string  `json:"department"`
	Shift            *string `json:"shift,omitempty"`
	ScheduledStart   string  `json:"scheduled_start"`
	ScheduledEnd     string  `json:"scheduled_end"`
	CheckInOpensAt   string  `json:"check_in_opens_at"`
	CheckOutClosesAt string  `json:"check_out_closes_at"`
}

// ========================================
// REPORT DTOs
// ========================================

// AttendanceReportFilter selects every worker's records of one month.
type AttendanceReportFilter struct {
	Month    int     `json:"month"`
	Year     int     `json:"year"`
	WorkerID *string `json:"worker_id,omitempty"`
	Type     *string `json:"type,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AttendanceReportFilter) Validate() error {
	errs := validator.Pagination(&f.Page, &f.Limit)

	if f.Month == 0 {
		errs.Add("month", "month is required")
	} else if !validator.IsValidMonth(f.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}

	if f.Year == 0 {
		errs.Add("year", "year is required")
	} else if f.Year < 2000 || f.Year > 2100 {
		errs.Add("year", "year must be between 2000 and 2100")
	}

	if f.Type != nil && *f.Type != "" {
		t, ok := ParseType(*f.Type)
		if !ok {
			errs.Add("type", "type must be one of: "+strings.Join(TypeValues, ", "))
		} else {
			normalized := string(t)
			f.Type = &normalized
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Period returns the first and last work date of the month. Call only after Validate.
func (f AttendanceReportFilter) Period() (start, end string) {
	first := time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(validator.DateLayout), last.Format(validator.DateLayout)
}

type AttendanceReportResponse struct {
	Month       int                  `json:"month"`
	Year        int                  `json:"year"`
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}
