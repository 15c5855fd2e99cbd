package leave

import (
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

type ReviewLeaveRequestRequest struct {
	ID         string             `json:"-"`
	ReviewerID string             `json:"-"`
	Status     LeaveRequestStatus `json:"-"`
}

func (r *ReviewLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "reviewer_id",
			Message: "reviewer_id is required",
		})
	}

	if r.Status != LeaveRequestStatusApproved && r.Status != LeaveRequestStatusRejected {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be approved or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeID   string  `json:"leave_type_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Status        string  `json:"status"`
	HalfDay       bool    `json:"half_day"`
	HalfDayPeriod *string `json:"half_day_period,omitempty"`
	ReviewedBy    *string `json:"reviewed_by,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`

	// ReclassifiedDays counts attendance rows moved to leave by the approval
	ReclassifiedDays int `json:"reclassified_days"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		LeaveTypeID: r.LeaveTypeID,
		StartDate:   r.StartDate.Format("2006-01-02"),
		EndDate:     r.EndDate.Format("2006-01-02"),
		Status:      string(r.Status),
		HalfDay:     r.HalfDay,
		ReviewedBy:  r.ReviewedBy,
	}
	if r.HalfDayPeriod != nil {
		p := string(*r.HalfDayPeriod)
		resp.HalfDayPeriod = &p
	}
	if r.ReviewedAt != nil {
		at := r.ReviewedAt.Format("2006-01-02 15:04:05")
		resp.ReviewedAt = &at
	}
	return resp
}
