package report

import (
	"context"

	"github.com/peopleops/hrms-backend-go/internal/domain/payroll"
)

// ReportService backs the admin dashboard and the reports pages
type ReportService interface {
	GetDashboard(ctx context.Context) (DashboardResponse, error)
	AcknowledgeAlert(ctx context.Context, id string) error
	GetAttendanceReport(ctx context.Context, filter AttendanceReportFilter) ([]AttendanceReportRow, error)
	ExportAttendanceReport(ctx context.Context, filter AttendanceReportFilter) ([]byte, string, error)
	ExportPayrollReport(ctx context.Context, filter payroll.PayrollFilter) ([]byte, string, error)
}
