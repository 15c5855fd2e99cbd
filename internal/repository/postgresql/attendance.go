package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.total_hours,
	a.status, a.notes, a.created_at, a.updated_at,
	NULLIF(TRIM(e.first_name || ' ' || e.last_name), '') AS employee_name`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var status string
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut, &att.TotalHours,
		&status, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Status = attendance.Status(status)
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (
			employee_id, date, clock_in, clock_out, total_hours, status, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.ClockIn,
		newAttendance.ClockOut,
		newAttendance.TotalHours,
		string(newAttendance.Status),
		newAttendance.Notes,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateRecord
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date ASC
	`

	return a.list(ctx, q, query, employeeID, start, end)
}

// ListOpenByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.date = $1 AND a.clock_in IS NOT NULL AND a.clock_out IS NULL
		ORDER BY a.clock_in ASC
	`

	return a.list(ctx, q, query, date)
}

func (a *attendanceRepository) list(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Attendance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET clock_in = $2, clock_out = $3, total_hours = $4, status = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID, att.ClockIn, att.ClockOut, att.TotalHours, string(att.Status), att.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
