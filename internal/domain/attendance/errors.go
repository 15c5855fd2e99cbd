package attendance

import "errors"

// Attendance domain errors
var (
	// Input errors
	ErrInvalidDate            = errors.New("invalid date")
	ErrClockOutBeforeClockIn  = errors.New("clock-out must be after clock-in")
	ErrClockInOutsideOfRecord = errors.New("clock-in must fall on the attendance date")

	// Clock errors
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut = errors.New("you have already clocked out")
	ErrWeekOffClockIn    = errors.New("today is your week off")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDuplicateRecord    = errors.New("attendance record already exists for this date")
)
