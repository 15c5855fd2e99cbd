package latepolicy

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateMonthRequest_Validate(t *testing.T) {
	for _, month := range []string{"", "2026-3", "2026-13", "03-2026"} {
		req := EvaluateMonthRequest{EmployeeID: "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", Month: month}
		assert.ErrorIs(t, req.Validate(), attendance.ErrInvalidDate, month)
	}

	req := EvaluateMonthRequest{EmployeeID: "someone", Month: "2026-03"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "employee_id")

	req = EvaluateMonthRequest{EmployeeID: "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", Month: "2026-02"}
	require.NoError(t, req.Validate())
	year, month := req.Period()
	assert.Equal(t, 2026, year)
	assert.Equal(t, time.February, month)
}
