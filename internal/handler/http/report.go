package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peopleops/hrms-backend-go/internal/domain/payroll"
	"github.com/peopleops/hrms-backend-go/internal/domain/report"
	"github.com/peopleops/hrms-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	AcknowledgeAlert(w http.ResponseWriter, r *http.Request)
	AttendanceReport(w http.ResponseWriter, r *http.Request)
	ExportAttendanceReport(w http.ResponseWriter, r *http.Request)
	ExportPayrollReport(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// Dashboard implements ReportHandler.
func (h *ReportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reportService.GetDashboard(r.Context())
	if err != nil {
		slog.Error("Dashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}

// AcknowledgeAlert implements ReportHandler.
func (h *ReportHandlerImpl) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.reportService.AcknowledgeAlert(r.Context(), id); err != nil {
		slog.Error("Acknowledge alert service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Alert acknowledged", nil)
}

func attendanceReportFilter(r *http.Request) report.AttendanceReportFilter {
	return report.AttendanceReportFilter{
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		Department: optionalQuery(r, "department"),
	}
}

// AttendanceReport implements ReportHandler.
func (h *ReportHandlerImpl) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.GetAttendanceReport(r.Context(), attendanceReportFilter(r))
	if err != nil {
		slog.Error("Attendance report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

func writeSpreadsheet(w http.ResponseWriter, content []byte, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// ExportAttendanceReport implements ReportHandler.
func (h *ReportHandlerImpl) ExportAttendanceReport(w http.ResponseWriter, r *http.Request) {
	content, filename, err := h.reportService.ExportAttendanceReport(r.Context(), attendanceReportFilter(r))
	if err != nil {
		slog.Error("Export attendance report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeSpreadsheet(w, content, filename)
}

// ExportPayrollReport implements ReportHandler.
func (h *ReportHandlerImpl) ExportPayrollReport(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayrollFilter{
		EmployeeID:  optionalQuery(r, "employee_id"),
		PeriodStart: optionalQuery(r, "period_start"),
		PeriodEnd:   optionalQuery(r, "period_end"),
		Status:      optionalQuery(r, "status"),
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	content, filename, err := h.reportService.ExportPayrollReport(r.Context(), filter)
	if err != nil {
		slog.Error("Export payroll report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeSpreadsheet(w, content, filename)
}
