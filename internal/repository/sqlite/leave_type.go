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

type leaveTypeRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewLeaveTypeRepository(db *database.SQLiteDB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// GetByID implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	var lt leave.LeaveType
	var defaultDays, createdAt string
	err := q.QueryRowContext(ctx, `
		SELECT id, name, description, default_days, is_active, created_at
		FROM leave_types
		WHERE id = ?
	`, id).Scan(&lt.ID, &lt.Name, &lt.Description, &defaultDays, &lt.IsActive, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type by id: %w", err)
	}

	if lt.DefaultDays, err = decimal.NewFromString(defaultDays); err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to parse default days: %w", err)
	}
	if lt.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return leave.LeaveType{}, err
	}
	return lt, nil
}
