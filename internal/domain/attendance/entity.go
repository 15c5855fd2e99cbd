package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
	StatusWeekOff Status = "week_off"

	// StatusOpen marks a day that has not elapsed and has no clock-in yet.
	// It is never stored.
	StatusOpen Status = ""
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusLeave, StatusWeekOff:
		return true
	}
	return false
}

// Attendance is one row per employee and calendar date.
type Attendance struct {
	ID         string
	EmployeeID string

	// Date is the calendar date as midnight UTC
	Date time.Time

	ClockIn    *time.Time
	ClockOut   *time.Time
	TotalHours *decimal.Decimal
	Status     Status
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// DateOf returns the calendar date of instant t as seen in loc, as midnight UTC.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" calendar date. Malformed input is ErrInvalidDate.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseMonth parses a "YYYY-MM" month. Malformed input is ErrInvalidDate.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t.Year(), t.Month(), nil
}

// MonthRange returns the first and last calendar date of the month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
