package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/export"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	GetEmployeeAttendance(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// decodeOptional decodes a JSON body when one was sent.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}

// monthQuery returns the "month" query parameter after checking its format.
// An empty value is allowed unless required.
func monthQuery(r *http.Request, required bool) (string, error) {
	month := r.URL.Query().Get("month")
	if month == "" && !required {
		return "", nil
	}
	if _, _, err := attendance.ParseMonth(month); err != nil {
		return "", err
	}
	return month, nil
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockInRequest
	if err := decodeOptional(r, &req); err != nil {
		slog.Error("ClockIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = middleware.EmployeeIDFromContext(r.Context())

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockOutRequest
	if err := decodeOptional(r, &req); err != nil {
		slog.Error("ClockOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = middleware.EmployeeIDFromContext(r.Context())

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

func (h *attendanceHandlerImpl) monthly(w http.ResponseWriter, r *http.Request, employeeID string) {
	month, err := monthQuery(r, false)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetMonthlyAttendance(r.Context(), attendance.MonthlyAttendanceRequest{
		EmployeeID: employeeID,
		Month:      month,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	h.monthly(w, r, middleware.EmployeeIDFromContext(r.Context()))
}

// GetEmployeeAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	h.monthly(w, r, chi.URLParam(r, "id"))
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.UpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Attendance corrected",
		"attendance_id", req.ID,
		"by", middleware.EmployeeIDFromContext(r.Context()))
	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	month, err := monthQuery(r, true)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	views, err := h.attendanceService.ListMonthlyAttendance(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	workbook, err := export.MonthlyWorkbook(month, views)
	if err != nil {
		slog.Error("Failed to build attendance workbook", "month", month, "error", err)
		response.InternalServerError(w, "Failed to build export")
		return
	}

	response.Attachment(w, export.ContentType, fmt.Sprintf("attendance-%s.xlsx", month), workbook.Bytes())
}
