package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/peopleops/hrms-backend-go/internal/domain/attendance"
	"github.com/peopleops/hrms-backend-go/internal/pkg/paycalc"
)

// Workday boundaries used to derive the attendance status. Check-ins
// after the grace cutoff are late; long days flip to overtime at
// check-out.
const (
	lateCutoffHour    = 9
	lateCutoffMinute  = 15
	overtimeThreshold = 9 * 60 // minutes
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, logger *slog.Logger) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		logger:               logger,
		now:                  time.Now,
	}
}

func toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		EmployeeName: att.EmployeeName,
		Date:         att.Date.Format("2006-01-02"),
		WorkHours:    paycalc.HoursWorked(att.CheckIn, att.CheckOut),
		Status:       string(att.Status),
	}
	if att.CheckIn != nil {
		t := att.CheckIn.Format(time.RFC3339)
		resp.CheckInTime = &t
	}
	if att.CheckOut != nil {
		t := att.CheckOut.Format(time.RFC3339)
		resp.CheckOutTime = &t
	}
	return resp
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckIn implements attendance.AttendanceService. The repository's
// unique index on (employee_id, attendance_date) closes the race the
// lookup guard leaves open.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now().UTC()
	today := dateOnly(now)

	_, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}

	status := attendance.StatusPresent
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), lateCutoffHour, lateCutoffMinute, 0, 0, time.UTC)
	if now.After(cutoff) {
		status = attendance.StatusLate
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       today,
		CheckIn:    &now,
		Status:     status,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.logger.Info("employee checked in",
		slog.String("employee_id", req.EmployeeID),
		slog.String("status", string(status)))

	return toResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now().UTC()
	today := dateOnly(now)

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	record.CheckOut = &now
	minutes := paycalc.WorkMinutes(record.CheckIn, record.CheckOut)
	record.WorkMinutes = &minutes
	if minutes >= overtimeThreshold && record.Status != attendance.StatusLate {
		record.Status = attendance.StatusOvertime
	}

	updated, err := s.AttendanceRepository.Update(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.logger.Info("employee checked out",
		slog.String("employee_id", req.EmployeeID),
		slog.Int("work_minutes", minutes))

	return toResponse(updated), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}

	return attendance.ListAttendanceResponse{
		Records:    responses,
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, dateOnly(s.now().UTC()))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return toResponse(record), nil
}

// Correct implements attendance.AttendanceService. Times in the
// request are wall-clock values applied to the record's own date.
func (s *AttendanceServiceImpl) Correct(ctx context.Context, correctedBy string, req attendance.CorrectionRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkIn, err := combineDateAndTime(record.Date, req.CheckIn)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	record.CheckIn = &checkIn
	record.CheckOut = nil
	if req.CheckOut != "" {
		checkOut, err := combineDateAndTime(record.Date, req.CheckOut)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		record.CheckOut = &checkOut
	}

	minutes := paycalc.WorkMinutes(record.CheckIn, record.CheckOut)
	record.WorkMinutes = &minutes

	reason := req.Reason
	if req.ReasonCategory != "" {
		reason = req.ReasonCategory + ": " + req.Reason
	}
	now := s.now().UTC()
	record.CorrectionReason = &reason
	record.CorrectedBy = &correctedBy
	record.CorrectedAt = &now

	updated, err := s.AttendanceRepository.Update(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.logger.Info("attendance corrected",
		slog.String("attendance_id", req.ID),
		slog.String("corrected_by", correctedBy))

	return toResponse(updated), nil
}

// GetSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetSummary(ctx context.Context, filter attendance.AttendanceFilter) (paycalc.Summary, error) {
	if err := filter.Validate(); err != nil {
		return paycalc.Summary{}, err
	}

	filter.Page = 1
	filter.Limit = maxSummaryRecords

	records, _, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return paycalc.Summary{}, err
	}

	days := make([]paycalc.DayRecord, 0, len(records))
	for _, record := range records {
		day := paycalc.DayRecord{Status: string(record.Status)}
		if record.WorkMinutes != nil {
			day.WorkHours = float64(*record.WorkMinutes) / 60
		}
		days = append(days, day)
	}

	return paycalc.Summarize(days), nil
}

// maxSummaryRecords bounds summary aggregation to a year of daily rows.
const maxSummaryRecords = 366

func combineDateAndTime(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC), nil
}
