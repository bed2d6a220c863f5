package attendance

import (
	"context"

	"github.com/peopleops/hrms-backend-go/internal/pkg/paycalc"
)

// AttendanceService defines business logic for daily attendance tracking
type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	GetToday(ctx context.Context, employeeID string) (AttendanceResponse, error)
	Correct(ctx context.Context, correctedBy string, req CorrectionRequest) (AttendanceResponse, error)
	GetSummary(ctx context.Context, filter AttendanceFilter) (paycalc.Summary, error)
}
