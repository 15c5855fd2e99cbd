package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a record; ErrDuplicateRecord when employee+date exists
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID returns ErrAttendanceNotFound when no row matches
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil without error when there is no record
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// ListByEmployeeAndRange returns records in [start, end] ordered by date
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)

	// ListOpenByDate returns clocked-in records without clock-out on the date
	ListOpenByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// Update writes clock times, total hours, status and notes
	Update(ctx context.Context, attendance Attendance) error
}
