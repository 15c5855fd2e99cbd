package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.SQLiteDB
}

func NewAttendanceRepository(db *database.SQLiteDB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.total_hours,
	a.status, a.notes, a.created_at, a.updated_at,
	NULLIF(TRIM(e.first_name || ' ' || e.last_name), '') AS employee_name`

func scanAttendance(row rowScanner) (attendance.Attendance, error) {
	var att attendance.Attendance
	var date, status, createdAt, updatedAt string
	var clockIn, clockOut sql.NullString
	err := row.Scan(
		&att.ID, &att.EmployeeID, &date, &clockIn, &clockOut, &att.TotalHours,
		&status, &att.Notes, &createdAt, &updatedAt,
		&att.EmployeeName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Status = attendance.Status(status)
	if att.Date, err = parseDate(date); err != nil {
		return attendance.Attendance{}, err
	}
	if att.ClockIn, err = parseNullTimestamp(clockIn); err != nil {
		return attendance.Attendance{}, err
	}
	if att.ClockOut, err = parseNullTimestamp(clockOut); err != nil {
		return attendance.Attendance{}, err
	}
	if att.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return attendance.Attendance{}, err
	}
	if att.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return attendance.Attendance{}, err
	}
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	newAttendance.ID = newID()
	now := nowTimestamp()

	_, err := q.ExecContext(ctx, `
		INSERT INTO attendance (
			id, employee_id, date, clock_in, clock_out, total_hours, status, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		newAttendance.ID,
		newAttendance.EmployeeID,
		formatDate(newAttendance.Date),
		nullTimestamp(newAttendance.ClockIn),
		nullTimestamp(newAttendance.ClockOut),
		nullDecimal(newAttendance.TotalHours),
		string(newAttendance.Status),
		newAttendance.Notes,
		now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateRecord
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	created, _ := parseTimestamp(now)
	newAttendance.CreatedAt, newAttendance.UpdatedAt = created, created
	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = ?
	`

	att, err := scanAttendance(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		WHERE a.employee_id = ? AND a.date = ?
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRowContext(ctx, query, employeeID, formatDate(date)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &att, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = ? AND a.date >= ? AND a.date <= ?
		ORDER BY a.date ASC
	`
	return a.list(ctx, query, employeeID, formatDate(start), formatDate(end))
}

// ListOpenByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.date = ? AND a.clock_in IS NOT NULL AND a.clock_out IS NULL
		ORDER BY a.clock_in ASC
	`
	return a.list(ctx, query, formatDate(date))
}

func (a *attendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.QueryContext(ctx, query, args...)
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

	result, err := q.ExecContext(ctx, `
		UPDATE attendance
		SET clock_in = ?, clock_out = ?, total_hours = ?, status = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`,
		nullTimestamp(att.ClockIn), nullTimestamp(att.ClockOut), nullDecimal(att.TotalHours),
		string(att.Status), att.Notes, nowTimestamp(), att.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if affected == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
