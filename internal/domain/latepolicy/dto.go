package latepolicy

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EvaluateMonthRequest struct {
	EmployeeID string `json:"employee_id"`
	// Month in "YYYY-MM"
	Month string `json:"month"`

	year  int
	month time.Month
}

// Validate reports a malformed month as attendance.ErrInvalidDate before any
// field error.
func (r *EvaluateMonthRequest) Validate() error {
	year, month, err := attendance.ParseMonth(r.Month)
	if err != nil {
		return err
	}
	r.year, r.month = year, month

	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Period returns the year and month parsed by Validate.
func (r *EvaluateMonthRequest) Period() (int, time.Month) { return r.year, r.month }

// EvaluateInput is one accumulator run with an already counted late total.
type EvaluateInput struct {
	EmployeeID string
	Year       int
	Month      time.Month
	LateCount  int
}

// Result describes the outcome of one evaluation.
type Result struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	LateCount  int    `json:"late_count"`
	Excess     int    `json:"excess"`

	Target        decimal.Decimal `json:"target"`
	Delta         decimal.Decimal `json:"delta"`
	TotalDeducted decimal.Decimal `json:"total_deducted"`

	// Applied is true when Delta was added to the leave balance
	Applied bool `json:"applied"`
	// Disabled is true when no late policy leave type is configured
	Disabled bool `json:"disabled"`
	// Shrunk is true when the late count fell below the last deducted count
	Shrunk bool `json:"shrunk"`
	// ConfigIncomplete is true when the late count was derived without a cutoff
	ConfigIncomplete bool `json:"config_incomplete,omitempty"`
}

type LogResponse struct {
	EmployeeID            string          `json:"employee_id"`
	Year                  int             `json:"year"`
	Month                 int             `json:"month"`
	LastDeductedLateCount int             `json:"last_deducted_late_count"`
	TotalDeducted         decimal.Decimal `json:"total_deducted"`
	LeaveTypeID           *string         `json:"leave_type_id"`
	UpdatedAt             string          `json:"updated_at"`
}

func NewLogResponse(l LateDeductionLog) LogResponse {
	return LogResponse{
		EmployeeID:            l.EmployeeID,
		Year:                  l.Year,
		Month:                 l.Month,
		LastDeductedLateCount: l.LastDeductedLateCount,
		TotalDeducted:         l.TotalDeducted,
		LeaveTypeID:           l.LeaveTypeID,
		UpdatedAt:             l.UpdatedAt.Format(time.RFC3339),
	}
}
