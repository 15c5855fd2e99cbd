// Package sqlitetest builds an in-memory store with seed helpers for service tests.
package sqlitetest

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/latepolicy"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine/internal/repository/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Store bundles every repository over one in-memory database.
type Store struct {
	DB         *database.SQLiteDB
	Tx         database.Transactor
	Employees  employee.EmployeeRepository
	Attendance attendance.AttendanceRepository
	LeaveTypes leave.LeaveTypeRepository
	Requests   leave.LeaveRequestRepository
	Balances   leave.LeaveBalanceRepository
	Settings   settings.SettingsRepository
	Logs       latepolicy.LateDeductionLogRepository
}

func New(t testing.TB) *Store {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	return &Store{
		DB:         db,
		Tx:         sqlite.NewTransactor(db),
		Employees:  sqlite.NewEmployeeRepository(db),
		Attendance: sqlite.NewAttendanceRepository(db),
		LeaveTypes: sqlite.NewLeaveTypeRepository(db),
		Requests:   sqlite.NewLeaveRequestRepository(db),
		Balances:   sqlite.NewLeaveBalanceRepository(db),
		Settings:   sqlite.NewSettingsRepository(db),
		Logs:       sqlite.NewLateDeductionLogRepository(db),
	}
}

func stamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Employee creates an active employee; weekOff < 0 means no week-off day.
func (s *Store) Employee(t testing.TB, email string, role employee.Role, weekOff int) employee.Employee {
	t.Helper()
	emp := employee.Employee{
		Email:     email,
		FirstName: "Test",
		LastName:  string(role),
		Role:      role,
		IsActive:  true,
	}
	if weekOff >= 0 {
		emp.WeekOffDay = &weekOff
	}
	emp, err := s.Employees.Create(context.Background(), emp)
	require.NoError(t, err)
	return emp
}

func (s *Store) LeaveType(t testing.TB, name string) string {
	t.Helper()
	id := uuid.Must(uuid.NewV7()).String()
	_, err := s.DB.Exec(`INSERT INTO leave_types (id, name, default_days, created_at) VALUES (?, ?, '12', ?)`,
		id, name, stamp())
	require.NoError(t, err)
	return id
}

func (s *Store) Balance(t testing.TB, employeeID, leaveTypeID string, year int, total decimal.Decimal) string {
	t.Helper()
	id := uuid.Must(uuid.NewV7()).String()
	now := stamp()
	_, err := s.DB.Exec(`
		INSERT INTO leave_balances (id, employee_id, leave_type_id, year, total_days, used_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, '0', ?, ?)
	`, id, employeeID, leaveTypeID, year, total.String(), now, now)
	require.NoError(t, err)
	return id
}

// LeaveRequest stores a request over the inclusive "YYYY-MM-DD" range.
func (s *Store) LeaveRequest(t testing.TB, employeeID, leaveTypeID, start, end string, status leave.LeaveRequestStatus, halfDay bool) string {
	t.Helper()
	id := uuid.Must(uuid.NewV7()).String()
	now := stamp()
	var period interface{}
	if halfDay {
		period = string(leave.HalfDayFirstHalf)
	}
	_, err := s.DB.Exec(`
		INSERT INTO leave_requests (id, employee_id, leave_type_id, start_date, end_date, status, half_day, half_day_period, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, employeeID, leaveTypeID, start, end, string(status), halfDay, period, now, now)
	require.NoError(t, err)
	return id
}

// SaveSettings stores cfg as the singleton settings row.
func (s *Store) SaveSettings(t testing.TB, cfg settings.Settings) settings.Settings {
	t.Helper()
	saved, err := s.Settings.Save(context.Background(), cfg)
	require.NoError(t, err)
	return saved
}

// ClockedIn stores a record for date with the given clock-in and status.
func (s *Store) ClockedIn(t testing.TB, employeeID string, date, clockIn time.Time, status attendance.Status) attendance.Attendance {
	t.Helper()
	rec, err := s.Attendance.Create(context.Background(), attendance.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		ClockIn:    &clockIn,
		Status:     status,
	})
	require.NoError(t, err)
	return rec
}
