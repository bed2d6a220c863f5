package payroll

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hrms-backend-go/internal/domain/payroll"
)

type fakePayrollRepo struct {
	records map[string]payroll.Payroll
	nextID  int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.Payroll)}
}

func (f *fakePayrollRepo) Create(ctx context.Context, record payroll.Payroll) (payroll.Payroll, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == record.EmployeeID && existing.PayPeriodStart.Equal(record.PayPeriodStart) {
			return payroll.Payroll{}, payroll.ErrPeriodExists
		}
	}
	f.nextID++
	record.ID = fmt.Sprintf("pay-%d", f.nextID)
	f.records[record.ID] = record
	return record, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	record, ok := f.records[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return record, nil
}

func (f *fakePayrollRepo) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	var result []payroll.Payroll
	for _, record := range f.records {
		result = append(result, record)
	}
	return result, int64(len(result)), nil
}

func (f *fakePayrollRepo) Update(ctx context.Context, record payroll.Payroll) (payroll.Payroll, error) {
	existing, ok := f.records[record.ID]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	if existing.Status == payroll.StatusProcessed {
		return payroll.Payroll{}, payroll.ErrAlreadyProcessed
	}
	f.records[record.ID] = record
	return record, nil
}

func (f *fakePayrollRepo) GetPeriodSummary(ctx context.Context, filter payroll.PayrollFilter) (payroll.PeriodSummary, error) {
	summary := payroll.PeriodSummary{}
	gross := decimal.Zero
	net := decimal.Zero
	for _, record := range f.records {
		summary.RecordCount++
		if record.Status == payroll.StatusProcessed {
			summary.ProcessedCount++
		}
		gross = gross.Add(record.GrossPay)
		net = net.Add(record.NetPay)
	}
	summary.TotalGrossPay = gross.String()
	summary.TotalNetPay = net.String()
	return summary, nil
}

func newTestService(repo *fakePayrollRepo) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		PayrollRepository: repo,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:               func() time.Time { return time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC) },
	}
}

func draftRequest() payroll.CreatePayrollRequest {
	return payroll.CreatePayrollRequest{
		EmployeeID:     "emp-1",
		PayPeriodStart: "2024-06-01",
		PayPeriodEnd:   "2024-06-30",
		BaseSalary:     decimal.NewFromInt(3000),
		OvertimePay:    decimal.NewFromInt(200),
		Bonus:          decimal.NewFromInt(150),
		Deductions:     decimal.NewFromInt(100),
		TaxDeduction:   decimal.NewFromInt(400),
	}
}

func TestCreatePayrollRecomputesTotals(t *testing.T) {
	svc := newTestService(newFakePayrollRepo())

	resp, err := svc.CreatePayroll(context.Background(), draftRequest())
	require.NoError(t, err)
	assert.Equal(t, "3350", resp.GrossPay)
	assert.Equal(t, "2850", resp.NetPay)
	assert.Equal(t, "draft", resp.Status)
}

func TestUpdatePayrollRecomputes(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestService(repo)

	created, err := svc.CreatePayroll(context.Background(), draftRequest())
	require.NoError(t, err)

	bonus := decimal.NewFromInt(500)
	resp, err := svc.UpdatePayroll(context.Background(), payroll.UpdatePayrollRequest{
		ID:    created.ID,
		Bonus: &bonus,
	})
	require.NoError(t, err)
	assert.Equal(t, "3700", resp.GrossPay)
	assert.Equal(t, "3200", resp.NetPay)
}

func TestProcessStampsAndIsOneWay(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestService(repo)

	created, err := svc.CreatePayroll(context.Background(), draftRequest())
	require.NoError(t, err)

	resp, err := svc.ProcessPayroll(context.Background(), "admin-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "processed", resp.Status)
	require.NotNil(t, resp.ProcessedBy)
	assert.Equal(t, "admin-1", *resp.ProcessedBy)
	require.NotNil(t, resp.ProcessedAt)

	_, err = svc.ProcessPayroll(context.Background(), "admin-2", created.ID)
	assert.ErrorIs(t, err, payroll.ErrAlreadyProcessed)
}

func TestUpdateProcessedRecordRejected(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestService(repo)

	created, err := svc.CreatePayroll(context.Background(), draftRequest())
	require.NoError(t, err)

	_, err = svc.ProcessPayroll(context.Background(), "admin-1", created.ID)
	require.NoError(t, err)

	bonus := decimal.NewFromInt(999)
	_, err = svc.UpdatePayroll(context.Background(), payroll.UpdatePayrollRequest{
		ID:    created.ID,
		Bonus: &bonus,
	})
	assert.ErrorIs(t, err, payroll.ErrAlreadyProcessed)
}

func TestCreateRejectsNegativeComponents(t *testing.T) {
	svc := newTestService(newFakePayrollRepo())

	req := draftRequest()
	req.Deductions = decimal.NewFromInt(-10)
	_, err := svc.CreatePayroll(context.Background(), req)
	assert.Error(t, err)
}
