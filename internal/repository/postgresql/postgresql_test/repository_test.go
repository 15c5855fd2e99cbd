package postgresql_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/latepolicy"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_CreateAndList(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)

	empID := setup.createEmployee(t, "att@example.com", nil)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	clockIn := time.Date(2026, 3, 2, 4, 30, 0, 0, time.UTC)

	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: empID,
		Date:       date,
		ClockIn:    &clockIn,
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: empID, Date: date, Status: attendance.StatusAbsent})
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)

	got, err := repo.GetByEmployeeAndDate(ctx, empID, date)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.True(t, got.ClockIn.Equal(clockIn))
	require.NotNil(t, got.EmployeeName)
	assert.Equal(t, "Test Employee", *got.EmployeeName)

	open, err := repo.ListOpenByDate(ctx, date)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	hours := decimal.RequireFromString("8.5")
	clockOut := clockIn.Add(8*time.Hour + 30*time.Minute)
	got.ClockOut = &clockOut
	got.TotalHours = &hours
	require.NoError(t, repo.Update(ctx, *got))

	open, err = repo.ListOpenByDate(ctx, date)
	require.NoError(t, err)
	assert.Empty(t, open)

	list, err := repo.ListByEmployeeAndRange(ctx, empID, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].TotalHours.Equal(hours))

	missing, err := repo.GetByEmployeeAndDate(ctx, empID, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEmployeeRepository_LockRoleBlocksSecondTransaction(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	locked := make(chan struct{})
	var secondAcquired atomic.Bool
	done := make(chan error, 1)

	go func() {
		done <- tx.WithinTransaction(ctx, func(ctx context.Context) error {
			<-locked
			if err := repo.LockRole(ctx, employee.RoleAdmin); err != nil {
				return err
			}
			secondAcquired.Store(true)
			return nil
		})
	}()

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := repo.LockRole(ctx, employee.RoleAdmin); err != nil {
			return err
		}
		close(locked)
		time.Sleep(200 * time.Millisecond)
		assert.False(t, secondAcquired.Load(), "lock is held until commit")
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, <-done)
	assert.True(t, secondAcquired.Load())
}

func TestLeaveTypeRepository_GetByID(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveTypeRepository(setup.DB)
	typeID := setup.createLeaveType(t, "Annual")

	got, err := repo.GetByID(ctx, typeID)
	require.NoError(t, err)
	assert.Equal(t, "Annual", got.Name)
	assert.True(t, got.IsActive)
	assert.True(t, got.DefaultDays.Equal(decimal.NewFromInt(12)))

	_, err = repo.GetByID(ctx, "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b")
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestLeaveRequestRepository_ListApprovedInRange(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(setup.DB)

	empID := setup.createEmployee(t, "leave@example.com", nil)
	reviewer := setup.createEmployee(t, "hr@example.com", nil)
	typeID := setup.createLeaveType(t, "Annual")

	var id string
	err := setup.DB.QueryRow(ctx, `
		INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date)
		VALUES ($1, $2, '2026-03-10', '2026-03-12') RETURNING id
	`, empID, typeID).Scan(&id)
	require.NoError(t, err)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	list, err := repo.ListApprovedInRange(ctx, empID, start, end)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.UpdateStatus(ctx, id, leave.LeaveRequestStatusApproved, reviewer, time.Now()))
	err = repo.UpdateStatus(ctx, id, leave.LeaveRequestStatusRejected, reviewer, time.Now())
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	list, err = repo.ListApprovedInRange(ctx, empID, start, end)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Covers(time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)))
}

func TestSettingsRepository_Save(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewSettingsRepository(setup.DB)

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, settings.ErrSettingsNotFound)

	saved, err := repo.Save(ctx, settings.Settings{
		MaxClockingTime:           "11:00 AM",
		AutoClockOutTime:          "19:30",
		MaxLateDays:               3,
		LatePolicyDeductionPerDay: decimal.RequireFromString("0.5"),
		CompanyName:               "Acme",
		CompanyAddress:            []string{"Line 1", "Line 2"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	saved.MaxLateDays = 4
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, got.MaxLateDays)
	assert.Equal(t, []string{"Line 1", "Line 2"}, got.CompanyAddress)
	assert.True(t, got.LatePolicyDeductionPerDay.Equal(decimal.RequireFromString("0.5")))
}

func TestLateDeductionLogRepository_CompareAndSet(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	logs := postgresql.NewLateDeductionLogRepository(setup.DB)
	balances := postgresql.NewLeaveBalanceRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	empID := setup.createEmployee(t, "late@example.com", nil)
	typeID := setup.createLeaveType(t, "Casual")
	balanceID := setup.createBalance(t, empID, typeID, 2026)

	_, err := logs.Get(ctx, empID, 2026, 3)
	assert.ErrorIs(t, err, latepolicy.ErrLogNotFound)

	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		l, err := logs.EnsureForUpdate(ctx, empID, 2026, 3, typeID)
		if err != nil {
			return err
		}
		if err := balances.IncrementUsedDays(ctx, balanceID, decimal.RequireFromString("1.0")); err != nil {
			return err
		}
		return logs.CompareAndSet(ctx, l.ID, l.TotalDeducted, decimal.RequireFromString("1.0"), 5, typeID)
	})
	require.NoError(t, err)

	l, err := logs.Get(ctx, empID, 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, l.LastDeductedLateCount)
	assert.True(t, l.TotalDeducted.Equal(decimal.RequireFromString("1.0")))

	err = logs.CompareAndSet(ctx, l.ID, decimal.Zero, decimal.RequireFromString("2.0"), 7, typeID)
	assert.ErrorIs(t, err, latepolicy.ErrConcurrentDeduction)

	b, err := balances.GetByEmployeeTypeYear(ctx, empID, typeID, 2026)
	require.NoError(t, err)
	assert.True(t, b.UsedDays.Equal(decimal.RequireFromString("1.0")))

	_, err = balances.GetByEmployeeTypeYear(ctx, empID, typeID, 2027)
	assert.ErrorIs(t, err, leave.ErrLeaveBalanceNotFound)
}
