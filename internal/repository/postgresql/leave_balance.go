package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// GetByEmployeeTypeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, total_days, used_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	var balance leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&balance.ID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.Year,
		&balance.TotalDays, &balance.UsedDays, &balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return balance, nil
}

// IncrementUsedDays implements leave.LeaveBalanceRepository.
// A late deduction may push used_days past total_days.
func (r *leaveBalanceRepositoryImpl) IncrementUsedDays(ctx context.Context, balanceID string, days decimal.Decimal) error {
	if !days.IsPositive() {
		return leave.ErrInvalidUsedDays
	}

	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := q.Exec(ctx, query, days, balanceID)
	if err != nil {
		return fmt.Errorf("failed to increment used days: %w", err)
	}

	if result.RowsAffected() == 0 {
		return leave.ErrLeaveBalanceNotFound
	}

	return nil
}
