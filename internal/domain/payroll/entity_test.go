package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecompute(t *testing.T) {
	p := Payroll{
		BaseSalary:   decimal.NewFromInt(3000),
		OvertimePay:  decimal.NewFromInt(200),
		Bonus:        decimal.NewFromInt(150),
		Deductions:   decimal.NewFromInt(100),
		TaxDeduction: decimal.NewFromInt(400),
	}
	p.Recompute()

	assert.True(t, p.GrossPay.Equal(decimal.NewFromInt(3350)), "gross = %s", p.GrossPay)
	assert.True(t, p.NetPay.Equal(decimal.NewFromInt(2850)), "net = %s", p.NetPay)
}

func TestRecomputeZeroComponents(t *testing.T) {
	p := Payroll{BaseSalary: decimal.NewFromInt(2500)}
	p.Recompute()

	assert.True(t, p.GrossPay.Equal(decimal.NewFromInt(2500)))
	assert.True(t, p.NetPay.Equal(decimal.NewFromInt(2500)))
}

func TestCreatePayrollRequestValidate(t *testing.T) {
	valid := CreatePayrollRequest{
		EmployeeID:     "e1",
		PayPeriodStart: "2024-06-01",
		PayPeriodEnd:   "2024-06-30",
		BaseSalary:     decimal.NewFromInt(3000),
	}
	assert.NoError(t, valid.Validate())

	badPeriod := valid
	badPeriod.PayPeriodEnd = "2024-05-31"
	assert.Error(t, badPeriod.Validate())

	negative := valid
	negative.Deductions = decimal.NewFromInt(-5)
	assert.Error(t, negative.Validate())
}
