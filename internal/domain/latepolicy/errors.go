package latepolicy

import "errors"

var (
	// ErrUnresolvedLeaveType means the configured leave type has no balance row
	// for the employee and year. Nothing is written.
	ErrUnresolvedLeaveType = errors.New("late policy leave type has no balance for this employee and year")

	// ErrConcurrentDeduction is returned when another evaluation moved the log
	// first. Re-running the evaluation is safe.
	ErrConcurrentDeduction = errors.New("late deduction log changed concurrently")

	ErrLogNotFound = errors.New("late deduction log not found")
)
