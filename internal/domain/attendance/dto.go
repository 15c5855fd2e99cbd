package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	EmployeeID string  `json:"-"`
	Notes      *string `json:"notes"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Notes != nil && len(*r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	EmployeeID string  `json:"-"`
	Notes      *string `json:"notes"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest is an administrative correction; timestamps are RFC3339.
type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	ClockIn  *string `json:"clock_in"`
	ClockOut *string `json:"clock_out"`
	Notes    *string `json:"notes"`

	clockIn  *time.Time
	clockOut *time.Time
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if r.ClockIn != nil {
		t, ok := validator.IsValidDateTime(*r.ClockIn)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be an RFC3339 timestamp",
			})
		} else {
			r.clockIn = &t
		}
	}

	if r.ClockOut != nil {
		t, ok := validator.IsValidDateTime(*r.ClockOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be an RFC3339 timestamp",
			})
		} else {
			r.clockOut = &t
		}
	}

	if r.ClockIn == nil && r.ClockOut == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of clock_in, clock_out or notes is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedClockIn returns the clock-in parsed by Validate.
func (r *UpdateAttendanceRequest) ParsedClockIn() *time.Time { return r.clockIn }

// ParsedClockOut returns the clock-out parsed by Validate.
func (r *UpdateAttendanceRequest) ParsedClockOut() *time.Time { return r.clockOut }

type MonthlyAttendanceRequest struct {
	EmployeeID string
	// Month in "YYYY-MM"; defaults to the current month
	Month string
}

// Validate reports a malformed month as ErrInvalidDate before any field error.
func (r *MonthlyAttendanceRequest) Validate() error {
	if r.Month != "" {
		if _, _, err := ParseMonth(r.Month); err != nil {
			return err
		}
	}

	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID           string           `json:"id"`
	EmployeeID   string           `json:"employee_id"`
	EmployeeName *string          `json:"employee_name,omitempty"`
	Date         string           `json:"date"`
	ClockIn      *string          `json:"clock_in"`
	ClockOut     *string          `json:"clock_out"`
	TotalHours   *decimal.Decimal `json:"total_hours"`
	Status       string           `json:"status"`
	Notes        *string          `json:"notes"`

	// ConfigIncomplete is set when no late cutoff is configured
	ConfigIncomplete bool `json:"config_incomplete,omitempty"`
}

// NewAttendanceResponse renders clock times in loc.
func NewAttendanceResponse(a Attendance, loc *time.Location) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format("2006-01-02"),
		ClockIn:      formatInstant(a.ClockIn, loc),
		ClockOut:     formatInstant(a.ClockOut, loc),
		TotalHours:   a.TotalHours,
		Status:       string(a.Status),
		Notes:        a.Notes,
	}
}

type DayResponse struct {
	Date       string           `json:"date"`
	Status     string           `json:"status"`
	ClockIn    *string          `json:"clock_in"`
	ClockOut   *string          `json:"clock_out"`
	TotalHours *decimal.Decimal `json:"total_hours"`
	Notes      *string          `json:"notes,omitempty"`
}

type MonthlyStats struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	Leave   int `json:"leave"`
	WeekOff int `json:"week_off"`
}

type MonthlyAttendanceResponse struct {
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	Month        string        `json:"month"`
	Days         []DayResponse `json:"days"` // most recent first
	Stats        MonthlyStats  `json:"stats"`

	ConfigIncomplete bool `json:"config_incomplete,omitempty"`
}

func formatInstant(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}
