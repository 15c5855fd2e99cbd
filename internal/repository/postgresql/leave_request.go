package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `id, employee_id, leave_type_id, start_date, end_date, reason, status,
	reviewed_by, reviewed_at, half_day, half_day_period, created_at, updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	var status string
	var period *string
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate, &lr.Reason, &status,
		&lr.ReviewedBy, &lr.ReviewedAt, &lr.HalfDay, &period, &lr.CreatedAt, &lr.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	lr.Status = leave.LeaveRequestStatus(status)
	if period != nil {
		p := leave.HalfDayPeriod(*period)
		lr.HalfDayPeriod = &p
	}
	return lr, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

// ListApprovedInRange implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
			AND status = 'approved'
			AND start_date <= $3
			AND end_date >= $2
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, reviewedBy string, reviewedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := q.Exec(ctx, query, id, string(status), reviewedBy, reviewedAt)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	return nil
}
