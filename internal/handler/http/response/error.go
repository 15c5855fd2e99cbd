package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/latepolicy"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrAdminAlreadyExists):
		Conflict(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, employee.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrClockOutBeforeClockIn),
		errors.Is(err, attendance.ErrClockInOutsideOfRecord):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut),
		errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrWeekOffClockIn),
		errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, err.Error())

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Settings have not been configured")
	case errors.Is(err, settings.ErrConfigIncomplete):
		UnprocessableEntity(w, "CONFIG_INCOMPLETE", err.Error())

	// Late policy domain errors
	case errors.Is(err, latepolicy.ErrUnresolvedLeaveType):
		UnprocessableEntity(w, "UNRESOLVED_LEAVE_TYPE", err.Error())
	case errors.Is(err, latepolicy.ErrConcurrentDeduction):
		Conflict(w, err.Error())
	case errors.Is(err, latepolicy.ErrLogNotFound):
		NotFound(w, "No late deduction recorded for this month")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrLeaveBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
