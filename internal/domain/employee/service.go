package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees lists every employee with the linked aid resolved
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// ListAids lists employees whose position is Aid
	ListAids(ctx context.Context) ([]EmployeeResponse, error)

	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee creates an employee and, when active, its timesheet entry in the current pay period
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// CreateEmployeesBulk creates each item independently and reports per-item failures
	CreateEmployeesBulk(ctx context.Context, req BulkCreateEmployeeRequest) (BulkCreateEmployeeResponse, error)

	// UpdateEmployee applies a partial update and patches the current timesheet entry
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee, its timesheet entries and any driver link to it
	DeleteEmployee(ctx context.Context, id string) error

	// DeleteEmployeesBulk removes many employees in one transaction
	DeleteEmployeesBulk(ctx context.Context, req BulkDeleteEmployeeRequest) (BulkDeleteEmployeeResponse, error)
}
