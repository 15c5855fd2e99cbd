package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/latepolicy"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type lateDeductionLogRepositoryImpl struct {
	db *database.SQLiteDB
	tx database.Transactor
}

func NewLateDeductionLogRepository(db *database.SQLiteDB) latepolicy.LateDeductionLogRepository {
	return &lateDeductionLogRepositoryImpl{db: db, tx: NewTransactor(db)}
}

const lateDeductionLogColumns = `id, employee_id, year, month, last_deducted_late_count, total_deducted, leave_type_id, updated_at`

func scanLateDeductionLog(row rowScanner) (latepolicy.LateDeductionLog, error) {
	var l latepolicy.LateDeductionLog
	var updatedAt string
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.Year, &l.Month,
		&l.LastDeductedLateCount, &l.TotalDeducted, &l.LeaveTypeID, &updatedAt,
	)
	if err != nil {
		return latepolicy.LateDeductionLog{}, err
	}
	if l.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return latepolicy.LateDeductionLog{}, err
	}
	return l, nil
}

// Get implements latepolicy.LateDeductionLogRepository.
func (r *lateDeductionLogRepositoryImpl) Get(ctx context.Context, employeeID string, year, month int) (latepolicy.LateDeductionLog, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLateDeductionLog(q.QueryRowContext(ctx, `
		SELECT `+lateDeductionLogColumns+`
		FROM late_deduction_logs
		WHERE employee_id = ? AND year = ? AND month = ?
	`, employeeID, year, month))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return latepolicy.LateDeductionLog{}, latepolicy.ErrLogNotFound
		}
		return latepolicy.LateDeductionLog{}, fmt.Errorf("failed to get late deduction log: %w", err)
	}
	return l, nil
}

// EnsureForUpdate implements latepolicy.LateDeductionLogRepository.
// SQLite has no row locks; the surrounding BEGIN IMMEDIATE holds the database
// write lock instead.
func (r *lateDeductionLogRepositoryImpl) EnsureForUpdate(ctx context.Context, employeeID string, year, month int, leaveTypeID string) (latepolicy.LateDeductionLog, error) {
	q := GetQuerier(ctx, r.db)

	_, err := q.ExecContext(ctx, `
		INSERT INTO late_deduction_logs (id, employee_id, year, month, total_deducted, leave_type_id, updated_at)
		VALUES (?, ?, ?, ?, '0', ?, ?)
		ON CONFLICT (employee_id, year, month) DO NOTHING
	`, newID(), employeeID, year, month, leaveTypeID, nowTimestamp())
	if err != nil {
		return latepolicy.LateDeductionLog{}, fmt.Errorf("failed to create late deduction log: %w", err)
	}

	l, err := scanLateDeductionLog(q.QueryRowContext(ctx, `
		SELECT `+lateDeductionLogColumns+`
		FROM late_deduction_logs
		WHERE employee_id = ? AND year = ? AND month = ?
	`, employeeID, year, month))
	if err != nil {
		return latepolicy.LateDeductionLog{}, fmt.Errorf("failed to load late deduction log: %w", err)
	}
	return l, nil
}

// CompareAndSet implements latepolicy.LateDeductionLogRepository.
func (r *lateDeductionLogRepositoryImpl) CompareAndSet(ctx context.Context, id string, expected, total decimal.Decimal, lateCount int, leaveTypeID string) error {
	return r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		var current decimal.Decimal
		err := q.QueryRowContext(ctx, `SELECT total_deducted FROM late_deduction_logs WHERE id = ?`, id).Scan(&current)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return latepolicy.ErrLogNotFound
			}
			return fmt.Errorf("failed to read late deduction log: %w", err)
		}
		if !current.Equal(expected) {
			return latepolicy.ErrConcurrentDeduction
		}

		_, err = q.ExecContext(ctx, `
			UPDATE late_deduction_logs
			SET total_deducted = ?, last_deducted_late_count = ?, leave_type_id = ?, updated_at = ?
			WHERE id = ?
		`, total.String(), lateCount, leaveTypeID, nowTimestamp(), id)
		if err != nil {
			return fmt.Errorf("failed to update late deduction log: %w", err)
		}
		return nil
	})
}
