package employee

import (
	"context"
)

// EmployeeService defines business logic for the employee-management portal
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeesResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdateStatusBulk(ctx context.Context, req BulkStatusRequest) (int64, error)
	DeleteEmployee(ctx context.Context, id string) error
}
