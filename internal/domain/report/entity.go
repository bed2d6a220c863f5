package report

import (
	"time"
)

// DashboardKPIs are the summary-card numbers on the admin dashboard.
type DashboardKPIs struct {
	TotalEmployees        int64  `json:"total_employees"`
	PresentToday          int64  `json:"present_today"`
	AttendanceRateToday   string `json:"attendance_rate_today"`
	PendingLeaveRequests  int64  `json:"pending_leave_requests"`
	ProcessedPayrollCount int64  `json:"processed_payroll_count"`
}

type DepartmentHeadcount struct {
	Department string `json:"department"`
	Headcount  int64  `json:"headcount"`
	OnLeave    int64  `json:"on_leave"`
}

type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

type SystemAlert struct {
	ID           string
	Severity     AlertSeverity
	Message      string
	Acknowledged bool
	CreatedAt    time.Time
}
