package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
)

// RequestService moves pending leave requests to a reviewed status.
type RequestService struct {
	leave.LeaveRequestRepository
	now func() time.Time
}

func NewRequestService(leaveRequestRepository leave.LeaveRequestRepository, now func() time.Time) *RequestService {
	return &RequestService{
		LeaveRequestRepository: leaveRequestRepository,
		now:                    now,
	}
}

func (r *RequestService) Approve(ctx context.Context, requestID string, reviewerID string) (leave.LeaveRequest, error) {
	return r.review(ctx, requestID, reviewerID, leave.LeaveRequestStatusApproved)
}

func (r *RequestService) Reject(ctx context.Context, requestID string, reviewerID string) (leave.LeaveRequest, error) {
	return r.review(ctx, requestID, reviewerID, leave.LeaveRequestStatusRejected)
}

func (r *RequestService) review(ctx context.Context, requestID, reviewerID string, status leave.LeaveRequestStatus) (leave.LeaveRequest, error) {
	request, err := r.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	reviewedAt := r.now().UTC()
	if err := r.LeaveRequestRepository.UpdateStatus(ctx, request.ID, status, reviewerID, reviewedAt); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	request.Status = status
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &reviewedAt
	return request, nil
}
