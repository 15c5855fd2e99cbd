package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC is already the next day in India
	instant := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), DateOf(instant, loc))
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), DateOf(instant, time.UTC))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"2026-13-01", "16-10-2026", "2026/10/16", ""} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestParseMonthAndRange(t *testing.T) {
	year, month, err := ParseMonth("2024-02")
	require.NoError(t, err)

	first, last := MonthRange(year, month)
	assert.Equal(t, "2024-02-01", first.Format("2006-01-02"))
	assert.Equal(t, "2024-02-29", last.Format("2006-01-02"))

	_, _, err = ParseMonth("2024-2")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUpdateAttendanceRequest_Validate(t *testing.T) {
	in := "2026-10-16T10:59:00+05:30"
	req := UpdateAttendanceRequest{ID: "0190a1b2-0000-7000-8000-000000000001", ClockIn: &in}
	require.NoError(t, req.Validate())
	require.NotNil(t, req.ParsedClockIn())
	assert.Nil(t, req.ParsedClockOut())

	bad := "yesterday"
	req = UpdateAttendanceRequest{ID: "x", ClockOut: &bad}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id")
	assert.Contains(t, err.Error(), "clock_out")

	empty := UpdateAttendanceRequest{ID: "0190a1b2-0000-7000-8000-000000000001"}
	assert.Error(t, empty.Validate())
}

func TestMonthlyAttendanceRequest_Validate(t *testing.T) {
	req := MonthlyAttendanceRequest{EmployeeID: "", Month: "2026-13"}
	assert.ErrorIs(t, req.Validate(), ErrInvalidDate, "a bad month wins over missing fields")

	req = MonthlyAttendanceRequest{EmployeeID: "emp-1"}
	assert.NoError(t, req.Validate(), "month defaults to the current one")

	req = MonthlyAttendanceRequest{Month: "2026-03"}
	assert.Error(t, req.Validate())
	assert.NotErrorIs(t, req.Validate(), ErrInvalidDate)
}
