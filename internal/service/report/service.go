package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/peopleops/hrms-backend-go/internal/domain/payroll"
	"github.com/peopleops/hrms-backend-go/internal/domain/report"
	"github.com/peopleops/hrms-backend-go/internal/pkg/paycalc"
	"github.com/peopleops/hrms-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	report.ReportRepository
	payrolls payroll.PayrollRepository
	logger   *slog.Logger
	now      func() time.Time
}

func NewReportService(reportRepo report.ReportRepository, payrollRepo payroll.PayrollRepository, logger *slog.Logger) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository: reportRepo,
		payrolls:         payrollRepo,
		logger:           logger,
		now:              time.Now,
	}
}

// GetDashboard implements report.ReportService.
func (s *ReportServiceImpl) GetDashboard(ctx context.Context) (report.DashboardResponse, error) {
	today := s.now().UTC()

	counts, err := s.ReportRepository.GetKPICounts(ctx, today)
	if err != nil {
		return report.DashboardResponse{}, err
	}

	departments, err := s.ReportRepository.GetDepartmentHeadcounts(ctx)
	if err != nil {
		return report.DashboardResponse{}, err
	}

	alerts, err := s.ReportRepository.ListAlerts(ctx, false, 10)
	if err != nil {
		return report.DashboardResponse{}, err
	}

	alertResponses := make([]report.AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		alertResponses = append(alertResponses, report.AlertResponse{
			ID:           alert.ID,
			Severity:     string(alert.Severity),
			Message:      alert.Message,
			Acknowledged: alert.Acknowledged,
			CreatedAt:    alert.CreatedAt.Format(time.RFC3339),
		})
	}

	return report.DashboardResponse{
		KPIs: report.DashboardKPIs{
			TotalEmployees:        counts.TotalEmployees,
			PresentToday:          counts.PresentToday,
			AttendanceRateToday:   paycalc.AttendanceRate(int(counts.PresentToday), int(counts.ActiveEmployees)),
			PendingLeaveRequests:  counts.PendingLeave,
			ProcessedPayrollCount: counts.ProcessedPayroll,
		},
		Departments: departments,
		Alerts:      alertResponses,
	}, nil
}

// AcknowledgeAlert implements report.ReportService.
func (s *ReportServiceImpl) AcknowledgeAlert(ctx context.Context, id string) error {
	if err := s.ReportRepository.AcknowledgeAlert(ctx, id); err != nil {
		return err
	}
	s.logger.Info("system alert acknowledged", slog.String("alert_id", id))
	return nil
}

func validateReportFilter(filter report.AttendanceReportFilter) error {
	var errs validator.ValidationErrors

	start, startValid := validator.IsValidDate(filter.StartDate)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	end, endValid := validator.IsValidDate(filter.EndDate)
	if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if startValid && endValid && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GetAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) GetAttendanceReport(ctx context.Context, filter report.AttendanceReportFilter) ([]report.AttendanceReportRow, error) {
	if err := validateReportFilter(filter); err != nil {
		return nil, err
	}

	rows, err := s.ReportRepository.GetAttendanceReportRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		present := int(rows[i].DaysPresent + rows[i].DaysLate)
		total := present + int(rows[i].DaysAbsent)
		rows[i].AttendanceRate = paycalc.AttendanceRate(present, total)
	}

	return rows, nil
}

// ExportAttendanceReport implements report.ReportService. Produces an
// xlsx workbook with one row per employee for the requested range.
func (s *ReportServiceImpl) ExportAttendanceReport(ctx context.Context, filter report.AttendanceReportFilter) ([]byte, string, error) {
	rows, err := s.GetAttendanceReport(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Employee ID", "Name", "Department", "Days Present", "Days Absent", "Days Late", "Total Work Hours", "Attendance Rate (%)"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.EmployeeCode,
			row.EmployeeName,
			row.Department,
			row.DaysPresent,
			row.DaysAbsent,
			row.DaysLate,
			row.TotalWorkHours,
			row.AttendanceRate,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance-report_%s_%s.xlsx", filter.StartDate, filter.EndDate)

	s.logger.Info("attendance report exported",
		slog.String("filename", filename),
		slog.Int("rows", len(rows)))

	return buf.Bytes(), filename, nil
}

// ExportPayrollReport implements report.ReportService.
func (s *ReportServiceImpl) ExportPayrollReport(ctx context.Context, filter payroll.PayrollFilter) ([]byte, string, error) {
	if err := filter.Validate(); err != nil {
		return nil, "", err
	}

	filter.Page = 1
	if filter.Limit <= 0 {
		filter.Limit = 10000
	}
	records, _, err := s.payrolls.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payroll Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Employee ID", "Name", "Period Start", "Period End", "Base Salary", "Overtime", "Bonus", "Deductions", "Tax", "Gross Pay", "Net Pay", "Status"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, record := range records {
		name := ""
		if record.EmployeeName != nil {
			name = *record.EmployeeName
		}
		code := ""
		if record.EmployeeCode != nil {
			code = *record.EmployeeCode
		}
		values := []interface{}{
			code,
			name,
			record.PayPeriodStart.Format("2006-01-02"),
			record.PayPeriodEnd.Format("2006-01-02"),
			record.BaseSalary.String(),
			record.OvertimePay.String(),
			record.Bonus.String(),
			record.Deductions.String(),
			record.TaxDeduction.String(),
			record.GrossPay.String(),
			record.NetPay.String(),
			string(record.Status),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	filename := fmt.Sprintf("payroll-report_%s.xlsx", s.now().UTC().Format("2006-01-02"))

	s.logger.Info("payroll report exported",
		slog.String("filename", filename),
		slog.Int("rows", len(records)))

	return buf.Bytes(), filename, nil
}
