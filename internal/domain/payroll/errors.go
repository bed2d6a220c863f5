package payroll

import "errors"

var (
	ErrPayrollNotFound = errors.New("payroll record not found")
	ErrPeriodExists    = errors.New("payroll record already exists for this employee and period")

	// Processing errors
	ErrAlreadyProcessed = errors.New("payroll record has already been processed")
)
