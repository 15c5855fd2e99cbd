package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeInactive   = errors.New("employee is not active")
	ErrEmailAlreadyExists = errors.New("email already exists")
)
