package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/latepolicy"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type lateDeductionLogRepositoryImpl struct {
	db *database.DB
}

func NewLateDeductionLogRepository(db *database.DB) latepolicy.LateDeductionLogRepository {
	return &lateDeductionLogRepositoryImpl{db: db}
}

const lateDeductionLogColumns = `id, employee_id, year, month, last_deducted_late_count, total_deducted, leave_type_id, updated_at`

func scanLateDeductionLog(row pgx.Row) (latepolicy.LateDeductionLog, error) {
	var l latepolicy.LateDeductionLog
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.Year, &l.Month,
		&l.LastDeductedLateCount, &l.TotalDeducted, &l.LeaveTypeID, &l.UpdatedAt,
	)
	return l, err
}

// Get implements latepolicy.LateDeductionLogRepository.
func (r *lateDeductionLogRepositoryImpl) Get(ctx context.Context, employeeID string, year, month int) (latepolicy.LateDeductionLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + lateDeductionLogColumns + `
		FROM late_deduction_logs
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`

	l, err := scanLateDeductionLog(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return latepolicy.LateDeductionLog{}, latepolicy.ErrLogNotFound
		}
		return latepolicy.LateDeductionLog{}, fmt.Errorf("failed to get late deduction log: %w", err)
	}
	return l, nil
}

// EnsureForUpdate implements latepolicy.LateDeductionLogRepository.
// Must run inside a transaction for the row lock to hold.
func (r *lateDeductionLogRepositoryImpl) EnsureForUpdate(ctx context.Context, employeeID string, year, month int, leaveTypeID string) (latepolicy.LateDeductionLog, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO late_deduction_logs (employee_id, year, month, leave_type_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, year, month) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, employeeID, year, month, leaveTypeID); err != nil {
		return latepolicy.LateDeductionLog{}, fmt.Errorf("failed to create late deduction log: %w", err)
	}

	query := `
		SELECT ` + lateDeductionLogColumns + `
		FROM late_deduction_logs
		WHERE employee_id = $1 AND year = $2 AND month = $3
		FOR UPDATE
	`
	l, err := scanLateDeductionLog(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		return latepolicy.LateDeductionLog{}, fmt.Errorf("failed to lock late deduction log: %w", err)
	}
	return l, nil
}

// CompareAndSet implements latepolicy.LateDeductionLogRepository.
func (r *lateDeductionLogRepositoryImpl) CompareAndSet(ctx context.Context, id string, expected, total decimal.Decimal, lateCount int, leaveTypeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE late_deduction_logs
		SET total_deducted = $3, last_deducted_late_count = $4, leave_type_id = $5, updated_at = NOW()
		WHERE id = $1 AND total_deducted = $2
	`
	result, err := q.Exec(ctx, query, id, expected, total, lateCount, leaveTypeID)
	if err != nil {
		return fmt.Errorf("failed to update late deduction log: %w", err)
	}

	if result.RowsAffected() == 0 {
		return latepolicy.ErrConcurrentDeduction
	}

	return nil
}
