package leave

import (
	"context"
)

type LeaveRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)
	UpdateStatus(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	CountPending(ctx context.Context) (int64, error)
}
