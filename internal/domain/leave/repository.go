package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	// GetByID returns ErrLeaveTypeNotFound when no row matches
	GetByID(ctx context.Context, id string) (LeaveType, error)
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// ListApprovedInRange returns approved requests overlapping [start, end]
	ListApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveRequest, error)

	// UpdateStatus only moves a pending request; returns ErrLeaveRequestAlreadyProcessed otherwise
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, reviewedBy string, reviewedAt time.Time) error
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	// GetByEmployeeTypeYear returns ErrLeaveBalanceNotFound when no row matches
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)

	// IncrementUsedDays adds days to used_days of the balance row
	IncrementUsedDays(ctx context.Context, balanceID string, days decimal.Decimal) error
}
