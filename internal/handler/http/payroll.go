package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peopleops/hrms-backend-go/internal/domain/payroll"
	"github.com/peopleops/hrms-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Create implements PayrollHandler.
func (h *PayrollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq payroll.CreatePayrollRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		slog.Error("Create payroll validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	payrollResp, err := h.payrollService.CreatePayroll(r.Context(), createReq)
	if err != nil {
		slog.Error("Create payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll record created", payrollResp)
}

// GetByID implements PayrollHandler.
func (h *PayrollHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payrollResp, err := h.payrollService.GetPayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payrollResp)
}

// List implements PayrollHandler.
func (h *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayrollFilter{
		EmployeeID:  optionalQuery(r, "employee_id"),
		PeriodStart: optionalQuery(r, "period_start"),
		PeriodEnd:   optionalQuery(r, "period_end"),
		Status:      optionalQuery(r, "status"),
		Page:        queryInt(r, "page"),
		Limit:       queryInt(r, "limit"),
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	listResp, err := h.payrollService.ListPayrolls(r.Context(), filter)
	if err != nil {
		slog.Error("List payroll service error", "error", err)
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

// Update implements PayrollHandler. Draft records only.
func (h *PayrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq payroll.UpdatePayrollRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	if err := updateReq.Validate(); err != nil {
		slog.Error("Update payroll validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	payrollResp, err := h.payrollService.UpdatePayroll(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record updated", payrollResp)
}

// Process implements PayrollHandler. Admin only, enforced by the router.
func (h *PayrollHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	id := chi.URLParam(r, "id")

	payrollResp, err := h.payrollService.ProcessPayroll(r.Context(), userID, id)
	if err != nil {
		slog.Error("Process payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record processed", payrollResp)
}

// Summary implements PayrollHandler.
func (h *PayrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayrollFilter{
		PeriodStart: optionalQuery(r, "period_start"),
		PeriodEnd:   optionalQuery(r, "period_end"),
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.payrollService.GetPeriodSummary(r.Context(), filter)
	if err != nil {
		slog.Error("Payroll summary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
