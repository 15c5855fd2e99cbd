package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, email, first_name, last_name, role, password_hash, week_off_day, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var role string
	var weekOff *int16
	err := row.Scan(
		&emp.ID, &emp.Email, &emp.FirstName, &emp.LastName, &role, &emp.PasswordHash,
		&weekOff, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.Role = employee.Role(role)
	if weekOff != nil {
		d := int(*weekOff)
		emp.WeekOffDay = &d
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE LOWER(email) = LOWER($1)`

	emp, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active = TRUE ORDER BY first_name, last_name`

	rows, err := q.Query(ctx, query)
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

	query := `
		INSERT INTO employees (email, first_name, last_name, role, password_hash, week_off_day, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.Email, emp.FirstName, emp.LastName, string(emp.Role), emp.PasswordHash, emp.WeekOffDay, emp.IsActive,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmailAlreadyExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return emp, nil
}

// CountByRole implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountByRole(ctx context.Context, role employee.Role) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE role = $1`, string(role)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees by role: %w", err)
	}
	return count, nil
}

// LockRole implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) LockRole(ctx context.Context, role employee.Role) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "employees.role:"+string(role))
	if err != nil {
		return fmt.Errorf("failed to lock employee role %s: %w", role, err)
	}
	return nil
}
