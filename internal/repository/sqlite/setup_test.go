package sqlite

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *database.SQLiteDB {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))
	return db
}

func seedLeaveType(t *testing.T, db *database.SQLiteDB, name string) string {
	t.Helper()
	id := newID()
	_, err := db.Exec(`INSERT INTO leave_types (id, name, default_days, created_at) VALUES (?, ?, '12', ?)`,
		id, name, nowTimestamp())
	require.NoError(t, err)
	return id
}

func seedBalance(t *testing.T, db *database.SQLiteDB, employeeID, leaveTypeID string, year int) string {
	t.Helper()
	id := newID()
	now := nowTimestamp()
	_, err := db.Exec(`
		INSERT INTO leave_balances (id, employee_id, leave_type_id, year, total_days, used_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, '12', '0', ?, ?)
	`, id, employeeID, leaveTypeID, year, now, now)
	require.NoError(t, err)
	return id
}

func seedLeaveRequest(t *testing.T, db *database.SQLiteDB, employeeID, leaveTypeID, start, end string) string {
	t.Helper()
	id := newID()
	now := nowTimestamp()
	_, err := db.Exec(`
		INSERT INTO leave_requests (id, employee_id, leave_type_id, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, employeeID, leaveTypeID, start, end, now, now)
	require.NoError(t, err)
	return id
}
