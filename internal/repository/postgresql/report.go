package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/peopleops/hrms-backend-go/internal/domain/report"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// GetKPICounts implements report.ReportRepository. One round trip for
// all dashboard counters.
func (r *reportRepositoryImpl) GetKPICounts(ctx context.Context, today time.Time) (report.KPICounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees),
			(SELECT COUNT(*) FROM employees WHERE status = 'active'),
			(SELECT COUNT(*) FROM attendance WHERE attendance_date = $1 AND status IN ('present', 'late', 'overtime')),
			(SELECT COUNT(*) FROM leave_requests WHERE status = 'pending'),
			(SELECT COUNT(*) FROM payroll WHERE status = 'processed'
				AND pay_period_start >= date_trunc('month', $1::date)
				AND pay_period_start < date_trunc('month', $1::date) + interval '1 month')
	`

	var counts report.KPICounts
	err := q.QueryRow(ctx, query, today).Scan(
		&counts.TotalEmployees,
		&counts.ActiveEmployees,
		&counts.PresentToday,
		&counts.PendingLeave,
		&counts.ProcessedPayroll,
	)
	if err != nil {
		return report.KPICounts{}, fmt.Errorf("failed to get dashboard counters: %w", err)
	}

	return counts, nil
}

// GetDepartmentHeadcounts implements report.ReportRepository.
func (r *reportRepositoryImpl) GetDepartmentHeadcounts(ctx context.Context) ([]report.DepartmentHeadcount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT department,
			   COUNT(*) FILTER (WHERE status != 'terminated'),
			   COUNT(*) FILTER (WHERE status = 'on_leave')
		FROM employees
		GROUP BY department
		ORDER BY department
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get department headcounts: %w", err)
	}
	defer rows.Close()

	var breakdown []report.DepartmentHeadcount
	for rows.Next() {
		var dh report.DepartmentHeadcount
		if err := rows.Scan(&dh.Department, &dh.Headcount, &dh.OnLeave); err != nil {
			return nil, fmt.Errorf("failed to scan department headcount: %w", err)
		}
		breakdown = append(breakdown, dh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return breakdown, nil
}

// ListAlerts implements report.ReportRepository.
func (r *reportRepositoryImpl) ListAlerts(ctx context.Context, includeAcknowledged bool, limit int) ([]report.SystemAlert, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, severity, message, acknowledged, created_at
		FROM system_alerts
		WHERE acknowledged = false OR $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, includeAcknowledged, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list system alerts: %w", err)
	}
	defer rows.Close()

	var alerts []report.SystemAlert
	for rows.Next() {
		var alert report.SystemAlert
		if err := rows.Scan(&alert.ID, &alert.Severity, &alert.Message, &alert.Acknowledged, &alert.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan system alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}

// AcknowledgeAlert implements report.ReportRepository.
func (r *reportRepositoryImpl) AcknowledgeAlert(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE system_alerts SET acknowledged = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to acknowledge system alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return report.ErrAlertNotFound
	}
	return nil
}

// GetAttendanceReportRows implements report.ReportRepository. Work
// hours are summed from stored minutes and formatted by the service.
func (r *reportRepositoryImpl) GetAttendanceReportRows(ctx context.Context, filter report.AttendanceReportFilter) ([]report.AttendanceReportRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.employee_code,
			   COALESCE(u.full_name, ''),
			   e.department,
			   COUNT(*) FILTER (WHERE a.status IN ('present', 'overtime')),
			   COUNT(*) FILTER (WHERE a.status = 'absent'),
			   COUNT(*) FILTER (WHERE a.status = 'late'),
			   COALESCE(SUM(a.work_minutes), 0)
		FROM employees e
		LEFT JOIN user_profiles u ON u.id = e.user_id
		LEFT JOIN attendance a ON a.employee_id = e.id
			AND a.attendance_date BETWEEN $1 AND $2
		WHERE ($3::text IS NULL OR e.department = $3)
		GROUP BY e.employee_code, u.full_name, e.department
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, filter.StartDate, filter.EndDate, filter.Department)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance report rows: %w", err)
	}
	defer rows.Close()

	var result []reportRowWithMinutes
	for rows.Next() {
		var row reportRowWithMinutes
		if err := rows.Scan(
			&row.EmployeeCode,
			&row.EmployeeName,
			&row.Department,
			&row.DaysPresent,
			&row.DaysAbsent,
			&row.DaysLate,
			&row.TotalMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance report row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]report.AttendanceReportRow, 0, len(result))
	for _, row := range result {
		out = append(out, row.toRow())
	}
	return out, nil
}

type reportRowWithMinutes struct {
	EmployeeCode string
	EmployeeName string
	Department   string
	DaysPresent  int64
	DaysAbsent   int64
	DaysLate     int64
	TotalMinutes int64
}

func (r reportRowWithMinutes) toRow() report.AttendanceReportRow {
	return report.AttendanceReportRow{
		EmployeeCode:   r.EmployeeCode,
		EmployeeName:   r.EmployeeName,
		Department:     r.Department,
		DaysPresent:    r.DaysPresent,
		DaysAbsent:     r.DaysAbsent,
		DaysLate:       r.DaysLate,
		TotalWorkHours: fmt.Sprintf("%d:%02d", r.TotalMinutes/60, r.TotalMinutes%60),
	}
}
