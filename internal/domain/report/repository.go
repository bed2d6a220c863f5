package report

import (
	"context"
	"time"
)

// KPICounts are the raw counters the dashboard rate and cards are
// derived from.
type KPICounts struct {
	TotalEmployees   int64
	ActiveEmployees  int64
	PresentToday     int64
	PendingLeave     int64
	ProcessedPayroll int64
}

type ReportRepository interface {
	GetKPICounts(ctx context.Context, today time.Time) (KPICounts, error)
	GetDepartmentHeadcounts(ctx context.Context) ([]DepartmentHeadcount, error)
	ListAlerts(ctx context.Context, includeAcknowledged bool, limit int) ([]SystemAlert, error)
	AcknowledgeAlert(ctx context.Context, id string) error
	GetAttendanceReportRows(ctx context.Context, filter AttendanceReportFilter) ([]AttendanceReportRow, error)
}
