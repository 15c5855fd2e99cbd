package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/repository/sqlite/sqlitetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *sqlitetest.Store
	now   time.Time
	svc   attendance.AttendanceService
	emp   employee.Employee
}

func newFixture(t *testing.T, withSettings bool) *fixture {
	t.Helper()
	f := &fixture{store: sqlitetest.New(t), now: at(10, 9, 0, 0)}
	f.svc = NewAttendanceService(
		f.store.Tx,
		f.store.Attendance,
		f.store.Employees,
		f.store.Requests,
		f.store.Settings,
		ist,
		func() time.Time { return f.now },
	)
	f.emp = f.store.Employee(t, "worker@example.com", employee.RoleEmployee, int(time.Sunday))
	if withSettings {
		f.store.SaveSettings(t, settings.Settings{MaxClockingTime: "11:00", AutoClockOutTime: "7:00 PM", MaxLateDays: 3})
	}
	return f
}

func TestAttendanceService_ClockIn(t *testing.T) {
	ctx := context.Background()

	t.Run("late clock-in and double clock-in", func(t *testing.T) {
		f := newFixture(t, true)
		f.now = at(10, 11, 30, 0)

		resp, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: f.emp.ID})
		require.NoError(t, err)
		assert.Equal(t, "late", resp.Status)
		assert.Equal(t, "2026-03-10", resp.Date)
		assert.False(t, resp.ConfigIncomplete)

		_, err = f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: f.emp.ID})
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	})

	t.Run("present before cutoff", func(t *testing.T) {
		f := newFixture(t, true)
		f.now = at(10, 10, 59, 0)

		resp, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: f.emp.ID})
		require.NoError(t, err)
		assert.Equal(t, "present", resp.Status)
	})

	t.Run("week off", func(t *testing.T) {
		f := newFixture(t, true)
		f.now = at(8, 9, 0, 0)

		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: f.emp.ID})
		assert.ErrorIs(t, err, attendance.ErrWeekOffClockIn)
	})

	t.Run("missing settings degrade to present", func(t *testing.T) {
		f := newFixture(t, false)
		f.now = at(10, 13, 0, 0)

		resp, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: f.emp.ID})
		require.NoError(t, err)
		assert.Equal(t, "present", resp.Status)
		assert.True(t, resp.ConfigIncomplete)
	})

	t.Run("approved leave wins over clock-in", func(t *testing.T) {
		f := newFixture(t, true)
		typeID := f.store.LeaveType(t, "Casual")
		f.store.LeaveRequest(t, f.emp.ID, typeID, "2026-03-10", "2026-03-10", leave.LeaveRequestStatusApproved, true)
		f.now = at(10, 14, 0, 0)

		resp, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: f.emp.ID})
		require.NoError(t, err)
		assert.Equal(t, "leave", resp.Status)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newFixture(t, true)
		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "0190d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestAttendanceService_ClockOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	_, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: f.emp.ID})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	f.now = at(10, 9, 15, 0)
	_, err = f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)

	f.now = at(10, 17, 45, 0)
	resp, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)
	require.NotNil(t, resp.TotalHours)
	assert.Equal(t, "8.5", resp.TotalHours.String())
	assert.Equal(t, "present", resp.Status)

	_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: f.emp.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestAttendanceService_MarkDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	typeID := f.store.LeaveType(t, "Annual")
	f.store.LeaveRequest(t, f.emp.ID, typeID, "2026-03-06", "2026-03-06", leave.LeaveRequestStatusApproved, false)

	written, err := f.svc.MarkDay(ctx, f.emp.ID, date(9))
	require.NoError(t, err)
	assert.True(t, written)

	written, err = f.svc.MarkDay(ctx, f.emp.ID, date(9))
	require.NoError(t, err)
	assert.False(t, written, "existing rows are left alone")

	written, err = f.svc.MarkDay(ctx, f.emp.ID, date(8))
	require.NoError(t, err)
	assert.False(t, written, "week-off days are not stored")

	written, err = f.svc.MarkDay(ctx, f.emp.ID, date(10))
	require.NoError(t, err)
	assert.False(t, written, "today is never absent")

	written, err = f.svc.MarkDay(ctx, f.emp.ID, date(6))
	require.NoError(t, err)
	assert.True(t, written)

	absent, err := f.store.Attendance.GetByEmployeeAndDate(ctx, f.emp.ID, date(9))
	require.NoError(t, err)
	require.NotNil(t, absent)
	assert.Equal(t, attendance.StatusAbsent, absent.Status)

	onLeave, err := f.store.Attendance.GetByEmployeeAndDate(ctx, f.emp.ID, date(6))
	require.NoError(t, err)
	require.NotNil(t, onLeave)
	assert.Equal(t, attendance.StatusLeave, onLeave.Status)
}

func TestAttendanceService_AutoClockOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	other := f.store.Employee(t, "night@example.com", employee.RoleEmployee, -1)

	f.store.ClockedIn(t, f.emp.ID, date(10), at(10, 9, 0, 0), attendance.StatusPresent)
	f.store.ClockedIn(t, other.ID, date(10), at(10, 19, 30, 0), attendance.StatusLate)
	f.store.ClockedIn(t, other.ID, date(9), at(9, 10, 0, 0), attendance.StatusPresent)

	f.now = at(10, 18, 0, 0)
	closed, err := f.svc.AutoClockOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, closed, "only yesterday's record is past its cutoff")

	f.now = at(10, 19, 45, 0)
	closed, err = f.svc.AutoClockOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, closed, "records clocked in after the cutoff stay open")

	rec, err := f.store.Attendance.GetByEmployeeAndDate(ctx, f.emp.ID, date(10))
	require.NoError(t, err)
	require.NotNil(t, rec.ClockOut)
	assert.True(t, rec.ClockOut.Equal(at(10, 19, 0, 0)))
	assert.Equal(t, "10", rec.TotalHours.String())
	require.NotNil(t, rec.Notes)
	assert.Contains(t, *rec.Notes, "auto clock-out")
}

func TestAttendanceService_AutoClockOut_ConfigIncomplete(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.svc.AutoClockOut(context.Background())
	assert.ErrorIs(t, err, settings.ErrConfigIncomplete)
}

func TestAttendanceService_UpdateAttendance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	rec := f.store.ClockedIn(t, f.emp.ID, date(9), at(9, 11, 30, 0), attendance.StatusLate)

	corrected := at(9, 10, 45, 0).Format(time.RFC3339)
	clockOut := at(9, 18, 45, 0).Format(time.RFC3339)
	resp, err := f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: rec.ID, ClockIn: &corrected, ClockOut: &clockOut})
	require.NoError(t, err)
	assert.Equal(t, "present", resp.Status)
	require.NotNil(t, resp.TotalHours)
	assert.Equal(t, "8", resp.TotalHours.String())

	early := at(9, 8, 0, 0).Format(time.RFC3339)
	_, err = f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: rec.ID, ClockOut: &early})
	assert.ErrorIs(t, err, attendance.ErrClockOutBeforeClockIn)

	otherDay := at(7, 10, 0, 0).Format(time.RFC3339)
	_, err = f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: rec.ID, ClockIn: &otherDay})
	assert.ErrorIs(t, err, attendance.ErrClockInOutsideOfRecord)

	notes := "forgot badge"
	_, err = f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: "0190d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", Notes: &notes})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceService_GetMonthlyAttendance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.store.ClockedIn(t, f.emp.ID, date(2), at(2, 10, 0, 0), attendance.StatusPresent)
	f.store.ClockedIn(t, f.emp.ID, date(3), at(3, 11, 15, 0), attendance.StatusLate)
	f.store.ClockedIn(t, f.emp.ID, date(9), at(9, 11, 1, 0), attendance.StatusLate)
	f.now = at(10, 9, 0, 0)

	resp, err := f.svc.GetMonthlyAttendance(ctx, attendance.MonthlyAttendanceRequest{EmployeeID: f.emp.ID, Month: "2026-03"})
	require.NoError(t, err)

	assert.Equal(t, "2026-03", resp.Month)
	require.Len(t, resp.Days, 9)
	assert.Equal(t, "2026-03-09", resp.Days[0].Date, "most recent first")
	assert.Equal(t, "late", resp.Days[0].Status)
	assert.Equal(t, attendance.MonthlyStats{Present: 1, Late: 2, Absent: 4, WeekOff: 2}, resp.Stats)

	current, err := f.svc.GetMonthlyAttendance(ctx, attendance.MonthlyAttendanceRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)
	assert.Equal(t, "2026-03", current.Month)

	late, incomplete, err := f.svc.CountLateDays(ctx, f.emp.ID, 2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, 2, late)
	assert.False(t, incomplete)

	all, err := f.svc.ListMonthlyAttendance(ctx, "2026-03")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = f.svc.ListMonthlyAttendance(ctx, "March")
	assert.ErrorIs(t, err, attendance.ErrInvalidDate)
}

func TestAttendanceService_GetMonthlyAttendance_MalformedMonth(t *testing.T) {
	f := newFixture(t, true)

	for _, month := range []string{"2026-13", "2026-3", "March"} {
		_, err := f.svc.GetMonthlyAttendance(context.Background(), attendance.MonthlyAttendanceRequest{
			EmployeeID: f.emp.ID,
			Month:      month,
		})
		assert.ErrorIs(t, err, attendance.ErrInvalidDate, month)
	}
}
