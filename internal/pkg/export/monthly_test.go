package export

import (
	"testing"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMonthlyWorkbook(t *testing.T) {
	in := "2026-03-02T11:05:00+05:30"
	out := "2026-03-02T19:00:00+05:30"
	hours := decimal.RequireFromString("7.9")

	views := []attendance.MonthlyAttendanceResponse{
		{
			EmployeeID:   "emp-1",
			EmployeeName: "Asha Verma",
			Month:        "2026-03",
			Days: []attendance.DayResponse{
				{Date: "2026-03-03", Status: "absent"},
				{Date: "2026-03-02", Status: "late", ClockIn: &in, ClockOut: &out, TotalHours: &hours},
			},
			Stats: attendance.MonthlyStats{Late: 1, Absent: 1},
		},
		{
			EmployeeID:       "emp-2",
			EmployeeName:     "Ravi Rao",
			Month:            "2026-03",
			Days:             []attendance.DayResponse{},
			ConfigIncomplete: true,
		},
	}

	buf, err := MonthlyWorkbook("2026-03", views)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, DailySheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 5)
	assert.Equal(t, "2026-03", summary[0][1])
	assert.Equal(t, []string{"emp-1", "Asha Verma", "0", "1", "1", "0", "0", "no"}, summary[3])
	assert.Equal(t, "yes", summary[4][7])

	daily, err := f.GetRows(DailySheet)
	require.NoError(t, err)
	require.Len(t, daily, 3)
	assert.Equal(t, "2026-03-02", daily[1][2], "oldest day first")
	assert.Equal(t, "late", daily[1][3])
	assert.Equal(t, "7.9", daily[1][6])
	assert.Equal(t, "absent", daily[2][3])
}
