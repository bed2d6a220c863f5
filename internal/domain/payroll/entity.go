package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusProcessed Status = "processed"
)

var ValidStatuses = []Status{StatusDraft, StatusProcessed}

func IsValidStatus(s Status) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Payroll is one employee's pay record for one period. Gross and net
// are always derived server-side from the component amounts, never
// taken from the client.
type Payroll struct {
	ID             string
	EmployeeID     string
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	BaseSalary     decimal.Decimal
	OvertimePay    decimal.Decimal
	Bonus          decimal.Decimal
	Deductions     decimal.Decimal
	TaxDeduction   decimal.Decimal
	GrossPay       decimal.Decimal
	NetPay         decimal.Decimal
	Status         Status

	// Set once on the draft to processed transition
	ProcessedBy *string
	ProcessedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeName *string
	EmployeeCode *string
	Department   *string
}

// Recompute derives gross and net from the component amounts.
func (p *Payroll) Recompute() {
	p.GrossPay = p.BaseSalary.Add(p.OvertimePay).Add(p.Bonus)
	p.NetPay = p.GrossPay.Sub(p.Deductions).Sub(p.TaxDeduction)
}
