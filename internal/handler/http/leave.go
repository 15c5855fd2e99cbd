package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

func (l *LeaveHandlerImpl) review(w http.ResponseWriter, r *http.Request, status leave.LeaveRequestStatus) {
	req := leave.ReviewLeaveRequestRequest{
		ID:         chi.URLParam(r, "id"),
		ReviewerID: middleware.EmployeeIDFromContext(r.Context()),
		Status:     status,
	}

	result, err := l.leaveService.ReviewLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request reviewed",
		"leave_request_id", req.ID,
		"status", status,
		"reclassified_days", result.ReclassifiedDays)
	response.SuccessWithMessage(w, "Leave request "+string(status), result)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	l.review(w, r, leave.LeaveRequestStatusApproved)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	l.review(w, r, leave.LeaveRequestStatusRejected)
}
