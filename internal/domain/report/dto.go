package report

type DashboardResponse struct {
	KPIs        DashboardKPIs         `json:"kpis"`
	Departments []DepartmentHeadcount `json:"departments"`
	Alerts      []AlertResponse       `json:"alerts"`
}

type AlertResponse struct {
	ID           string `json:"id"`
	Severity     string `json:"severity"`
	Message      string `json:"message"`
	Acknowledged bool   `json:"acknowledged"`
	CreatedAt    string `json:"created_at"`
}

// AttendanceReportRow is one row of the attendance summary export,
// aggregated per employee over the requested date range.
type AttendanceReportRow struct {
	EmployeeCode   string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	Department     string `json:"department"`
	DaysPresent    int64  `json:"days_present"`
	DaysAbsent     int64  `json:"days_absent"`
	DaysLate       int64  `json:"days_late"`
	TotalWorkHours string `json:"total_work_hours"`
	AttendanceRate string `json:"attendance_rate"`
}

type AttendanceReportFilter struct {
	StartDate  string
	EndDate    string
	Department *string
}
