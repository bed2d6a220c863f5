package payroll

import (
	"context"
)

// PayrollService defines business logic for payroll drafting and processing
type PayrollService interface {
	CreatePayroll(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	GetPayroll(ctx context.Context, id string) (PayrollResponse, error)
	ListPayrolls(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	UpdatePayroll(ctx context.Context, req UpdatePayrollRequest) (PayrollResponse, error)
	ProcessPayroll(ctx context.Context, processorID, id string) (PayrollResponse, error)
	GetPeriodSummary(ctx context.Context, filter PayrollFilter) (PeriodSummary, error)
}
