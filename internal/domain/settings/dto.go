package settings

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpdateSettingsRequest struct {
	MaxClockingTime           string          `json:"max_clocking_time"`
	AutoClockOutTime          string          `json:"auto_clock_out_time"`
	MaxLateDays               int             `json:"max_late_days"`
	LatePolicyDeductionPerDay decimal.Decimal `json:"late_policy_deduction_per_day"`
	LatePolicyLeaveTypeID     *string         `json:"late_policy_leave_type_id"`
	CompanyName               string          `json:"company_name"`
	CompanyAddress            []string        `json:"company_address"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.MaxClockingTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "max_clocking_time",
			Message: "max_clocking_time is required",
		})
	} else if _, err := ParseTimeOfDay(r.MaxClockingTime); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "max_clocking_time",
			Message: "max_clocking_time must look like 11:00 or 11:00 AM",
		})
	}

	if validator.IsEmpty(r.AutoClockOutTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "auto_clock_out_time",
			Message: "auto_clock_out_time is required",
		})
	} else if _, err := ParseTimeOfDay(r.AutoClockOutTime); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "auto_clock_out_time",
			Message: "auto_clock_out_time must look like 19:30 or 7:30 PM",
		})
	}

	if r.MaxLateDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_late_days",
			Message: "max_late_days must not be negative",
		})
	}

	if r.LatePolicyDeductionPerDay.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "late_policy_deduction_per_day",
			Message: "late_policy_deduction_per_day must not be negative",
		})
	}

	if r.LatePolicyLeaveTypeID != nil && *r.LatePolicyLeaveTypeID == "" {
		r.LatePolicyLeaveTypeID = nil
	}
	if r.LatePolicyLeaveTypeID != nil && !validator.IsValidUUID(*r.LatePolicyLeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "late_policy_leave_type_id",
			Message: "late_policy_leave_type_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	ID                        string          `json:"id"`
	MaxClockingTime           string          `json:"max_clocking_time"`
	AutoClockOutTime          string          `json:"auto_clock_out_time"`
	MaxLateDays               int             `json:"max_late_days"`
	LatePolicyDeductionPerDay decimal.Decimal `json:"late_policy_deduction_per_day"`
	LatePolicyLeaveTypeID     *string         `json:"late_policy_leave_type_id"`
	CompanyName               string          `json:"company_name"`
	CompanyAddress            []string        `json:"company_address"`
	UpdatedAt                 string          `json:"updated_at"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	address := s.CompanyAddress
	if address == nil {
		address = []string{}
	}
	return SettingsResponse{
		ID:                        s.ID,
		MaxClockingTime:           s.MaxClockingTime,
		AutoClockOutTime:          s.AutoClockOutTime,
		MaxLateDays:               s.MaxLateDays,
		LatePolicyDeductionPerDay: s.LatePolicyDeductionPerDay,
		LatePolicyLeaveTypeID:     s.LatePolicyLeaveTypeID,
		CompanyName:               s.CompanyName,
		CompanyAddress:            address,
		UpdatedAt:                 s.UpdatedAt.Format(time.RFC3339),
	}
}
