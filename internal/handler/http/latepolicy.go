package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/latepolicy"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LatePolicyHandler interface {
	Evaluate(w http.ResponseWriter, r *http.Request)
	GetLog(w http.ResponseWriter, r *http.Request)
}

type latePolicyHandlerImpl struct {
	latePolicyService latepolicy.LatePolicyService
}

func NewLatePolicyHandler(latePolicyService latepolicy.LatePolicyService) LatePolicyHandler {
	return &latePolicyHandlerImpl{
		latePolicyService: latePolicyService,
	}
}

// Evaluate implements LatePolicyHandler.
func (h *latePolicyHandlerImpl) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req latepolicy.EvaluateMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Evaluate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	year, month := req.Period()
	result, err := h.latePolicyService.EvaluateMonth(r.Context(), req.EmployeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetLog implements LatePolicyHandler.
func (h *latePolicyHandlerImpl) GetLog(w http.ResponseWriter, r *http.Request) {
	year, month, err := attendance.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.latePolicyService.GetLog(r.Context(), chi.URLParam(r, "employeeID"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
