package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewLeaveRequestRepository(db *database.SQLiteDB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `id, employee_id, leave_type_id, start_date, end_date, reason, status,
	reviewed_by, reviewed_at, half_day, half_day_period, created_at, updated_at`

func scanLeaveRequest(row rowScanner) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	var startDate, endDate, status, createdAt, updatedAt string
	var reviewedAt sql.NullString
	var period *string
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &startDate, &endDate, &lr.Reason, &status,
		&lr.ReviewedBy, &reviewedAt, &lr.HalfDay, &period, &createdAt, &updatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	lr.Status = leave.LeaveRequestStatus(status)
	if period != nil {
		p := leave.HalfDayPeriod(*period)
		lr.HalfDayPeriod = &p
	}
	if lr.StartDate, err = parseDate(startDate); err != nil {
		return leave.LeaveRequest{}, err
	}
	if lr.EndDate, err = parseDate(endDate); err != nil {
		return leave.LeaveRequest{}, err
	}
	if lr.ReviewedAt, err = parseNullTimestamp(reviewedAt); err != nil {
		return leave.LeaveRequest{}, err
	}
	if lr.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return leave.LeaveRequest{}, err
	}
	if lr.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRowContext(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		WHERE employee_id = ?
			AND status = 'approved'
			AND start_date <= ?
			AND end_date >= ?
		ORDER BY start_date ASC
	`

	rows, err := q.QueryContext(ctx, query, employeeID, formatDate(end), formatDate(start))
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

	result, err := q.ExecContext(ctx, `
		UPDATE leave_requests
		SET status = ?, reviewed_by = ?, reviewed_at = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'
	`, string(status), reviewedBy, formatTimestamp(reviewedAt), nowTimestamp(), id)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if affected == 0 {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	return nil
}
