package leave

import "errors"

var (
	ErrLeaveTypeNotFound            = errors.New("leave type not found")
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrLeaveBalanceNotFound         = errors.New("leave balance not found")
	ErrInvalidUsedDays              = errors.New("used days increment must be positive")
)
