package leave

import "context"

// LeaveService covers the leave review step that feeds attendance classification.
type LeaveService interface {
	// ReviewLeaveRequest approves or rejects a pending request. Approval
	// re-classifies existing attendance rows inside the range.
	ReviewLeaveRequest(ctx context.Context, req ReviewLeaveRequestRequest) (LeaveRequestResponse, error)
}
