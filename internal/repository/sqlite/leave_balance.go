package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type leaveBalanceRepositoryImpl struct {
	db *database.SQLiteDB
	tx database.Transactor
}

func NewLeaveBalanceRepository(db *database.SQLiteDB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db, tx: NewTransactor(db)}
}

// GetByEmployeeTypeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	var balance leave.LeaveBalance
	var createdAt, updatedAt string
	err := q.QueryRowContext(ctx, `
		SELECT id, employee_id, leave_type_id, year, total_days, used_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = ? AND leave_type_id = ? AND year = ?
	`, employeeID, leaveTypeID, year).Scan(
		&balance.ID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.Year,
		&balance.TotalDays, &balance.UsedDays, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	if balance.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return leave.LeaveBalance{}, err
	}
	if balance.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return leave.LeaveBalance{}, err
	}
	return balance, nil
}

// IncrementUsedDays implements leave.LeaveBalanceRepository.
// Decimals are stored as text, so the sum is computed here under the write lock.
func (r *leaveBalanceRepositoryImpl) IncrementUsedDays(ctx context.Context, balanceID string, days decimal.Decimal) error {
	if !days.IsPositive() {
		return leave.ErrInvalidUsedDays
	}

	return r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		var used decimal.Decimal
		err := q.QueryRowContext(ctx, `SELECT used_days FROM leave_balances WHERE id = ?`, balanceID).Scan(&used)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return leave.ErrLeaveBalanceNotFound
			}
			return fmt.Errorf("failed to read used days: %w", err)
		}

		_, err = q.ExecContext(ctx, `UPDATE leave_balances SET used_days = ?, updated_at = ? WHERE id = ?`,
			used.Add(days).String(), nowTimestamp(), balanceID)
		if err != nil {
			return fmt.Errorf("failed to increment used days: %w", err)
		}
		return nil
	})
}
