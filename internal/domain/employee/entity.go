package employee

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, owns settings
	RoleHR       Role = "hr"       // Manages attendance and leave
	RoleEmployee Role = "employee" // Regular employee
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

type Employee struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	Role         Role
	PasswordHash *string

	// WeekOffDay is the weekday the employee never works, 0 = Sunday
	WeekOffDay *int
	IsActive   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// IsWeekOff reports whether the calendar date falls on the employee's week-off day.
func (e Employee) IsWeekOff(date time.Time) bool {
	if e.WeekOffDay == nil {
		return false
	}
	return int(date.Weekday()) == *e.WeekOffDay
}

// CanManageAttendance checks if the employee is HR or admin
func (e Employee) CanManageAttendance() bool {
	return e.Role == RoleAdmin || e.Role == RoleHR
}
