package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds a connection to the integration test database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and migrates the schema.
// Tests are skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	require.NoError(t, postgresql.Migrate(ctx, db))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes every row of the engine tables
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"late_deduction_logs",
		"attendance",
		"leave_requests",
		"leave_balances",
		"settings",
		"leave_types",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database pool
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}

func (t *TestDatabaseSetup) createEmployee(tb testing.TB, email string, weekOff *int) string {
	tb.Helper()
	var id string
	err := t.DB.QueryRow(context.Background(), `
		INSERT INTO employees (email, first_name, last_name, role, week_off_day)
		VALUES ($1, 'Test', 'Employee', 'employee', $2)
		RETURNING id
	`, email, weekOff).Scan(&id)
	require.NoError(tb, err)
	return id
}

func (t *TestDatabaseSetup) createLeaveType(tb testing.TB, name string) string {
	tb.Helper()
	var id string
	err := t.DB.QueryRow(context.Background(), `
		INSERT INTO leave_types (name, default_days) VALUES ($1, 12) RETURNING id
	`, name).Scan(&id)
	require.NoError(tb, err)
	return id
}

func (t *TestDatabaseSetup) createBalance(tb testing.TB, employeeID, leaveTypeID string, year int) string {
	tb.Helper()
	var id string
	err := t.DB.QueryRow(context.Background(), `
		INSERT INTO leave_balances (employee_id, leave_type_id, year, total_days)
		VALUES ($1, $2, $3, 12) RETURNING id
	`, employeeID, leaveTypeID, year).Scan(&id)
	require.NoError(tb, err)
	return id
}
