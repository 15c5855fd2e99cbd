package employee

import "context"

// EmployeeRepository defines access to employee records.
// Employee maintenance beyond the first admin is owned by the HR dashboard.
type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when no row matches
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)

	// Create returns ErrEmailAlreadyExists when the email is taken
	Create(ctx context.Context, employee Employee) (Employee, error)
	CountByRole(ctx context.Context, role Role) (int, error)

	// LockRole serializes role checks until the surrounding transaction ends.
	// Must run inside a transaction.
	LockRole(ctx context.Context, role Role) error
}
