package leave

import (
	"context"
)

// LeaveService defines business logic for leave requests and their review
type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetLeaveRequest(ctx context.Context, id string) (LeaveResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	ReviewLeaveRequest(ctx context.Context, reviewerID string, req ReviewLeaveRequest) (LeaveResponse, error)
}
