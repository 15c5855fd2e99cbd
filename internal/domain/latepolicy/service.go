package latepolicy

import (
	"context"
	"time"
)

// LatePolicyService converts monthly late days into leave-balance deductions.
type LatePolicyService interface {
	// Evaluate applies the deduction for an already counted late total
	Evaluate(ctx context.Context, in EvaluateInput) (Result, error)

	// EvaluateMonth counts late days of the month and evaluates them
	EvaluateMonth(ctx context.Context, employeeID string, year int, month time.Month) (Result, error)

	// GetLog returns the deduction log of an employee-month
	GetLog(ctx context.Context, employeeID string, year int, month time.Month) (LogResponse, error)
}
