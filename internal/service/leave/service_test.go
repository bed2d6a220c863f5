package leave

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hrms-backend-go/internal/domain/leave"
)

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	req.ID = fmt.Sprintf("leave-%d", f.nextID)
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	var result []leave.LeaveRequest
	for _, req := range f.requests {
		if filter.Status != nil && string(req.Status) != *filter.Status {
			continue
		}
		result = append(result, req)
	}
	return result, int64(len(result)), nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	existing, ok := f.requests[req.ID]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if existing.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrAlreadyReviewed
	}
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) CountPending(ctx context.Context) (int64, error) {
	var count int64
	for _, req := range f.requests {
		if req.Status == leave.StatusPending {
			count++
		}
	}
	return count, nil
}

func newTestService(repo *fakeLeaveRepo) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		LeaveRepository: repo,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:             func() time.Time { return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestCreateLeaveRequestComputesInclusiveDays(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo())

	resp, err := svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "annual",
		StartDate:  "2025-01-01",
		EndDate:    "2025-01-03",
		Reason:     "family trip",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.DaysRequested)
	assert.Equal(t, "pending", resp.Status)
}

func TestCreateLeaveRequestSingleDay(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo())

	resp, err := svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "sick",
		StartDate:  "2025-01-01",
		EndDate:    "2025-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.DaysRequested)
}

func TestCreateLeaveRequestRejectsInvertedRange(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo())

	_, err := svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "annual",
		StartDate:  "2025-01-03",
		EndDate:    "2025-01-01",
	})
	assert.Error(t, err)
}

func TestReviewApprovesOnce(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestService(repo)

	created, err := svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "annual",
		StartDate:  "2025-01-01",
		EndDate:    "2025-01-02",
	})
	require.NoError(t, err)

	resp, err := svc.ReviewLeaveRequest(context.Background(), "hr-1", leave.ReviewLeaveRequest{
		ID:       created.ID,
		Decision: "approved",
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, "hr-1", *resp.ReviewedBy)
	require.NotNil(t, resp.ReviewedAt)

	// The transition is one-way.
	_, err = svc.ReviewLeaveRequest(context.Background(), "hr-2", leave.ReviewLeaveRequest{
		ID:       created.ID,
		Decision: "rejected",
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyReviewed)
}

func TestReviewRejectsWithNote(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestService(repo)

	created, err := svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "unpaid",
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-10",
	})
	require.NoError(t, err)

	resp, err := svc.ReviewLeaveRequest(context.Background(), "hr-1", leave.ReviewLeaveRequest{
		ID:         created.ID,
		Decision:   "rejected",
		ReviewNote: "coverage gap in March",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	require.NotNil(t, resp.ReviewNote)
	assert.Equal(t, "coverage gap in March", *resp.ReviewNote)
}

func TestReviewRejectsUnknownDecision(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo())

	_, err := svc.ReviewLeaveRequest(context.Background(), "hr-1", leave.ReviewLeaveRequest{
		ID:       "leave-1",
		Decision: "maybe",
	})
	assert.Error(t, err)
}
