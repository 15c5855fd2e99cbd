package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

type HalfDayPeriod string

const (
	HalfDayFirstHalf  HalfDayPeriod = "first_half"  // 9am-1pm
	HalfDaySecondHalf HalfDayPeriod = "second_half" // 1pm-7pm
)

// LeaveType entity
type LeaveType struct {
	ID          string
	Name        string
	Description *string
	DefaultDays decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
}

// LeaveRequest entity. StartDate and EndDate are inclusive calendar dates.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	Reason    *string

	Status     LeaveRequestStatus
	ReviewedBy *string
	ReviewedAt *time.Time

	HalfDay       bool
	HalfDayPeriod *HalfDayPeriod

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the inclusive date range contains the calendar date.
func (r LeaveRequest) Covers(date time.Time) bool {
	d := date.Format("2006-01-02")
	return d >= r.StartDate.Format("2006-01-02") && d <= r.EndDate.Format("2006-01-02")
}

func (r LeaveRequest) IsApproved() bool {
	return r.Status == LeaveRequestStatusApproved
}

// LeaveBalance entity, one row per employee, leave type and year
type LeaveBalance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int
	TotalDays   decimal.Decimal
	UsedDays    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Remaining may be negative once late deductions exceed the entitlement.
func (b LeaveBalance) Remaining() decimal.Decimal {
	return b.TotalDays.Sub(b.UsedDays)
}
