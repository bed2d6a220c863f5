package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peopleops/hrms-backend-go/internal/domain/attendance"
	"github.com/peopleops/hrms-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler. Employees check themselves
// in; the employee ID comes from the token, not the body.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentEmployeeID(r)
	if !ok {
		response.BadRequest(w, "No employee record linked to this account", nil)
		return
	}

	checkInReq := attendance.CheckInRequest{EmployeeID: employeeID}
	if err := checkInReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	attendanceResp, err := h.attendanceService.CheckIn(r.Context(), checkInReq)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", attendanceResp)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentEmployeeID(r)
	if !ok {
		response.BadRequest(w, "No employee record linked to this account", nil)
		return
	}

	checkOutReq := attendance.CheckOutRequest{EmployeeID: employeeID}
	if err := checkOutReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	attendanceResp, err := h.attendanceService.CheckOut(r.Context(), checkOutReq)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", attendanceResp)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		Date:       optionalQuery(r, "date"),
		StartDate:  optionalQuery(r, "start_date"),
		EndDate:    optionalQuery(r, "end_date"),
		Status:     optionalQuery(r, "status"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	listResp, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("List attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, listResp.Records, &response.Meta{
		Page:       listResp.Page,
		Limit:      listResp.Limit,
		TotalItems: listResp.TotalItems,
		TotalPages: totalPages(listResp.TotalItems, listResp.Limit),
	})
}

// Today implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentEmployeeID(r)
	if !ok {
		response.BadRequest(w, "No employee record linked to this account", nil)
		return
	}

	attendanceResp, err := h.attendanceService.GetToday(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendanceResp)
}

// Correct implements AttendanceHandler. HR only, enforced by the router.
func (h *AttendanceHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	var correctionReq attendance.CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&correctionReq); err != nil {
		slog.Error("Correct attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	correctionReq.ID = chi.URLParam(r, "id")

	if err := correctionReq.Validate(); err != nil {
		slog.Error("Correct attendance validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	attendanceResp, err := h.attendanceService.Correct(r.Context(), userID, correctionReq)
	if err != nil {
		slog.Error("Correct attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record corrected", attendanceResp)
}

// Summary implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		StartDate:  optionalQuery(r, "start_date"),
		EndDate:    optionalQuery(r, "end_date"),
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.attendanceService.GetSummary(r.Context(), filter)
	if err != nil {
		slog.Error("Attendance summary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
