package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn records today's clock-in and classifies it as present or late
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes today's record and computes total hours
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// UpdateAttendance corrects a record (hr/admin); status is re-derived
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// GetMonthlyAttendance classifies every elapsed day of the month for an employee
	GetMonthlyAttendance(ctx context.Context, req MonthlyAttendanceRequest) (MonthlyAttendanceResponse, error)

	// ListMonthlyAttendance returns the monthly view of every active employee
	ListMonthlyAttendance(ctx context.Context, month string) ([]MonthlyAttendanceResponse, error)

	// CountLateDays counts late days of the month through the classifier.
	// The bool reports an incomplete configuration.
	CountLateDays(ctx context.Context, employeeID string, year int, month time.Month) (int, bool, error)

	// AutoClockOut closes today's open records once the auto clock-out time passed
	AutoClockOut(ctx context.Context) (int, error)

	// MarkDay stores the classification of an elapsed day that has no record.
	// Returns true when a row was written.
	MarkDay(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
