package payroll

import (
	"context"
)

type PayrollRepository interface {
	Create(ctx context.Context, record Payroll) (Payroll, error)
	GetByID(ctx context.Context, id string) (Payroll, error)
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int64, error)
	Update(ctx context.Context, record Payroll) (Payroll, error)
	GetPeriodSummary(ctx context.Context, filter PayrollFilter) (PeriodSummary, error)
}
