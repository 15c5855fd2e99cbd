package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewEmployeeRepository(db *database.SQLiteDB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, email, first_name, last_name, role, password_hash, week_off_day, is_active, created_at, updated_at`

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var emp employee.Employee
	var role, createdAt, updatedAt string
	err := row.Scan(
		&emp.ID, &emp.Email, &emp.FirstName, &emp.LastName, &role, &emp.PasswordHash,
		&emp.WeekOffDay, &emp.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.Role = employee.Role(role)
	if emp.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return employee.Employee{}, err
	}
	if emp.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp, err := scanEmployee(q.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp, err := scanEmployee(q.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = ?`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE is_active = 1 ORDER BY first_name, last_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp.ID = newID()
	now := nowTimestamp()

	_, err := q.ExecContext(ctx, `
		INSERT INTO employees (id, email, first_name, last_name, role, password_hash, week_off_day, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, emp.ID, emp.Email, emp.FirstName, emp.LastName, string(emp.Role), emp.PasswordHash, emp.WeekOffDay, emp.IsActive, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmailAlreadyExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	created, _ := parseTimestamp(now)
	emp.CreatedAt, emp.UpdatedAt = created, created
	return emp, nil
}

// CountByRole implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountByRole(ctx context.Context, role employee.Role) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE role = ?`, string(role)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees by role: %w", err)
	}
	return count, nil
}

// LockRole implements employee.EmployeeRepository.
// Transactions begin IMMEDIATE, so the write lock is already held.
func (r *employeeRepositoryImpl) LockRole(ctx context.Context, role employee.Role) error {
	return nil
}
