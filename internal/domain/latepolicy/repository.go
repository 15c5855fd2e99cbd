package latepolicy

import (
	"context"

	"github.com/shopspring/decimal"
)

// LateDeductionLogRepository - interface for late_deduction_logs table
type LateDeductionLogRepository interface {
	// Get returns ErrLogNotFound when the month has no log yet
	Get(ctx context.Context, employeeID string, year, month int) (LateDeductionLog, error)

	// EnsureForUpdate creates a zero log when missing and returns the row locked
	// for the surrounding transaction.
	EnsureForUpdate(ctx context.Context, employeeID string, year, month int, leaveTypeID string) (LateDeductionLog, error)

	// CompareAndSet moves total_deducted from expected to total. It returns
	// ErrConcurrentDeduction when the stored total is no longer expected.
	CompareAndSet(ctx context.Context, id string, expected, total decimal.Decimal, lateCount int, leaveTypeID string) error
}
