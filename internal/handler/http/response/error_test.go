package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/latepolicy"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "month", Message: "bad"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid date", fmt.Errorf("parse: %w", attendance.ErrInvalidDate), http.StatusBadRequest, "BAD_REQUEST"},
		{"unresolved leave type", fmt.Errorf("evaluate: %w", latepolicy.ErrUnresolvedLeaveType), http.StatusUnprocessableEntity, "UNRESOLVED_LEAVE_TYPE"},
		{"config incomplete", settings.ErrConfigIncomplete, http.StatusUnprocessableEntity, "CONFIG_INCOMPLETE"},
		{"concurrent deduction", latepolicy.ErrConcurrentDeduction, http.StatusConflict, "CONFLICT"},
		{"already clocked in", attendance.ErrAlreadyClockedIn, http.StatusConflict, "CONFLICT"},
		{"not found", attendance.ErrAttendanceNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"leave processed", leave.ErrLeaveRequestAlreadyProcessed, http.StatusConflict, "CONFLICT"},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.code, body.Error.Code)
		})
	}
}
