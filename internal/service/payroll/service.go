package payroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/peopleops/hrms-backend-go/internal/domain/payroll"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewPayrollService(payrollRepo payroll.PayrollRepository, logger *slog.Logger) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository: payrollRepo,
		logger:            logger,
		now:               time.Now,
	}
}

func toResponse(record payroll.Payroll) payroll.PayrollResponse {
	resp := payroll.PayrollResponse{
		ID:             record.ID,
		EmployeeID:     record.EmployeeID,
		EmployeeName:   record.EmployeeName,
		PayPeriodStart: record.PayPeriodStart.Format("2006-01-02"),
		PayPeriodEnd:   record.PayPeriodEnd.Format("2006-01-02"),
		BaseSalary:     record.BaseSalary.String(),
		OvertimePay:    record.OvertimePay.String(),
		Bonus:          record.Bonus.String(),
		Deductions:     record.Deductions.String(),
		TaxDeduction:   record.TaxDeduction.String(),
		GrossPay:       record.GrossPay.String(),
		NetPay:         record.NetPay.String(),
		Status:         string(record.Status),
		ProcessedBy:    record.ProcessedBy,
	}
	if record.ProcessedAt != nil {
		t := record.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &t
	}
	return resp
}

// CreatePayroll implements payroll.PayrollService. Gross and net are
// always recomputed from the components; caller-supplied totals are
// never trusted.
func (s *PayrollServiceImpl) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.PayPeriodStart)
	end, _ := time.Parse("2006-01-02", req.PayPeriodEnd)

	record := payroll.Payroll{
		EmployeeID:     req.EmployeeID,
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		BaseSalary:     req.BaseSalary,
		OvertimePay:    req.OvertimePay,
		Bonus:          req.Bonus,
		Deductions:     req.Deductions,
		TaxDeduction:   req.TaxDeduction,
		Status:         payroll.StatusDraft,
	}
	record.Recompute()

	created, err := s.PayrollRepository.Create(ctx, record)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	s.logger.Info("payroll draft created",
		slog.String("payroll_id", created.ID),
		slog.String("employee_id", created.EmployeeID))

	return toResponse(created), nil
}

// GetPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := s.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return toResponse(record), nil
}

// ListPayrolls implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	records, total, err := s.PayrollRepository.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}

	return payroll.ListPayrollResponse{
		Records:    responses,
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdatePayroll implements payroll.PayrollService. Only draft records
// may change, and every change recomputes the totals.
func (s *PayrollServiceImpl) UpdatePayroll(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	existing, err := s.PayrollRepository.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if existing.Status == payroll.StatusProcessed {
		return payroll.PayrollResponse{}, payroll.ErrAlreadyProcessed
	}

	if req.OvertimePay != nil {
		existing.OvertimePay = *req.OvertimePay
	}
	if req.Bonus != nil {
		existing.Bonus = *req.Bonus
	}
	if req.Deductions != nil {
		existing.Deductions = *req.Deductions
	}
	if req.TaxDeduction != nil {
		existing.TaxDeduction = *req.TaxDeduction
	}
	existing.Recompute()

	updated, err := s.PayrollRepository.Update(ctx, existing)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return toResponse(updated), nil
}

// ProcessPayroll implements payroll.PayrollService. One-way
// draft to processed transition stamping the processor and time.
func (s *PayrollServiceImpl) ProcessPayroll(ctx context.Context, processorID, id string) (payroll.PayrollResponse, error) {
	existing, err := s.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if existing.Status == payroll.StatusProcessed {
		return payroll.PayrollResponse{}, payroll.ErrAlreadyProcessed
	}

	now := s.now().UTC()
	existing.Status = payroll.StatusProcessed
	existing.ProcessedBy = &processorID
	existing.ProcessedAt = &now
	existing.Recompute()

	updated, err := s.PayrollRepository.Update(ctx, existing)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	s.logger.Info("payroll processed",
		slog.String("payroll_id", updated.ID),
		slog.String("processed_by", processorID))

	return toResponse(updated), nil
}

// GetPeriodSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPeriodSummary(ctx context.Context, filter payroll.PayrollFilter) (payroll.PeriodSummary, error) {
	if err := filter.Validate(); err != nil {
		return payroll.PeriodSummary{}, err
	}
	return s.PayrollRepository.GetPeriodSummary(ctx, filter)
}
