package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/peopleops/hrms-backend-go/internal/pkg/validator"
)

type CreatePayrollRequest struct {
	EmployeeID     string          `json:"employee_id"`
	PayPeriodStart string          `json:"pay_period_start"`
	PayPeriodEnd   string          `json:"pay_period_end"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	OvertimePay    decimal.Decimal `json:"overtime_pay"`
	Bonus          decimal.Decimal `json:"bonus"`
	Deductions     decimal.Decimal `json:"deductions"`
	TaxDeduction   decimal.Decimal `json:"tax_deduction"`
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	start, startValid := validator.IsValidDate(r.PayPeriodStart)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_start",
			Message: "pay_period_start must be a valid date (YYYY-MM-DD)",
		})
	}

	end, endValid := validator.IsValidDate(r.PayPeriodEnd)
	if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_end",
			Message: "pay_period_end must be a valid date (YYYY-MM-DD)",
		})
	}

	if startValid && endValid && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_end",
			Message: "pay_period_end must not be before pay_period_start",
		})
	}

	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}
	if r.OvertimePay.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_pay",
			Message: "overtime_pay must not be negative",
		})
	}
	if r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "bonus",
			Message: "bonus must not be negative",
		})
	}
	if r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deductions",
			Message: "deductions must not be negative",
		})
	}
	if r.TaxDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "tax_deduction",
			Message: "tax_deduction must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdatePayrollRequest adjusts component amounts on a draft record.
// Nil fields are left untouched; gross and net are recomputed either way.
type UpdatePayrollRequest struct {
	ID           string           `json:"-"`
	OvertimePay  *decimal.Decimal `json:"overtime_pay"`
	Bonus        *decimal.Decimal `json:"bonus"`
	Deductions   *decimal.Decimal `json:"deductions"`
	TaxDeduction *decimal.Decimal `json:"tax_deduction"`
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "payroll id is required",
		})
	}

	if r.OvertimePay != nil && r.OvertimePay.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_pay",
			Message: "overtime_pay must not be negative",
		})
	}
	if r.Bonus != nil && r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "bonus",
			Message: "bonus must not be negative",
		})
	}
	if r.Deductions != nil && r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deductions",
			Message: "deductions must not be negative",
		})
	}
	if r.TaxDeduction != nil && r.TaxDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "tax_deduction",
			Message: "tax_deduction must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PayrollFilter struct {
	EmployeeID  *string
	PeriodStart *string
	PeriodEnd   *string
	Status      *string
	Page        int
	Limit       int
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.PeriodStart != nil {
		if _, ok := validator.IsValidDate(*f.PeriodStart); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "period_start",
				Message: "period_start must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if f.PeriodEnd != nil {
		if _, ok := validator.IsValidDate(*f.PeriodEnd); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "period_end",
				Message: "period_end must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if f.Status != nil && !IsValidStatus(Status(*f.Status)) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be draft or processed",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PayrollResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	PayPeriodStart string  `json:"pay_period_start"`
	PayPeriodEnd   string  `json:"pay_period_end"`
	BaseSalary     string  `json:"base_salary"`
	OvertimePay    string  `json:"overtime_pay"`
	Bonus          string  `json:"bonus"`
	Deductions     string  `json:"deductions"`
	TaxDeduction   string  `json:"tax_deduction"`
	GrossPay       string  `json:"gross_pay"`
	NetPay         string  `json:"net_pay"`
	Status         string  `json:"status"`
	ProcessedBy    *string `json:"processed_by,omitempty"`
	ProcessedAt    *string `json:"processed_at,omitempty"`
}

// PeriodSummary backs the payroll page summary panel.
type PeriodSummary struct {
	RecordCount    int64  `json:"record_count"`
	ProcessedCount int64  `json:"processed_count"`
	TotalGrossPay  string `json:"total_gross_pay"`
	TotalNetPay    string `json:"total_net_pay"`
	AverageSalary  string `json:"average_salary"`
}

type ListPayrollResponse struct {
	Records    []PayrollResponse `json:"records"`
	TotalItems int64             `json:"total_items"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
