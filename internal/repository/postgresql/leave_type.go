package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// GetByID implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT id, name, description, default_days, is_active, created_at
		FROM leave_types
		WHERE id = $1
	`
	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Name, &lt.Description, &lt.DefaultDays, &lt.IsActive, &lt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type by id: %w", err)
	}
	return lt, nil
}
