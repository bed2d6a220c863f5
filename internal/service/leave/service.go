package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/peopleops/hrms-backend-go/internal/domain/leave"
	"github.com/peopleops/hrms-backend-go/internal/pkg/paycalc"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewLeaveService(leaveRepo leave.LeaveRepository, logger *slog.Logger) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository: leaveRepo,
		logger:          logger,
		now:             time.Now,
	}
}

func toResponse(req leave.LeaveRequest) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:            req.ID,
		EmployeeID:    req.EmployeeID,
		EmployeeName:  req.EmployeeName,
		LeaveType:     string(req.LeaveType),
		StartDate:     req.StartDate.Format("2006-01-02"),
		EndDate:       req.EndDate.Format("2006-01-02"),
		DaysRequested: req.DaysRequested,
		Reason:        req.Reason,
		Status:        string(req.Status),
		ReviewedBy:    req.ReviewedBy,
		ReviewNote:    req.ReviewNote,
	}
	if req.ReviewedAt != nil {
		t := req.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &t
	}
	return resp
}

// CreateLeaveRequest implements leave.LeaveService. Validation rejects
// an end date before the start date, so the inclusive day count the
// calculator returns is always positive here.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}

	created, err := s.LeaveRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID:    req.EmployeeID,
		LeaveType:     leave.LeaveType(req.LeaveType),
		StartDate:     start,
		EndDate:       end,
		DaysRequested: paycalc.DaysRequested(start, end),
		Reason:        reason,
		Status:        leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	s.logger.Info("leave request submitted",
		slog.String("leave_request_id", created.ID),
		slog.String("employee_id", created.EmployeeID),
		slog.Int("days", created.DaysRequested))

	return toResponse(created), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveResponse, error) {
	req, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return toResponse(req), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	requests, total, err := s.LeaveRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toResponse(req))
	}

	return leave.ListLeaveResponse{
		Requests:   responses,
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ReviewLeaveRequest implements leave.LeaveService. The repository's
// pending guard makes the transition one-way.
func (s *LeaveServiceImpl) ReviewLeaveRequest(ctx context.Context, reviewerID string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	existing, err := s.LeaveRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if existing.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrAlreadyReviewed
	}

	now := s.now().UTC()
	existing.Status = leave.Status(req.Decision)
	existing.ReviewedBy = &reviewerID
	existing.ReviewedAt = &now
	if req.ReviewNote != "" {
		existing.ReviewNote = &req.ReviewNote
	}

	updated, err := s.LeaveRepository.UpdateStatus(ctx, existing)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	s.logger.Info("leave request reviewed",
		slog.String("leave_request_id", updated.ID),
		slog.String("decision", string(updated.Status)),
		slog.String("reviewed_by", reviewerID))

	return toResponse(updated), nil
}
