package attendance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hrms-backend-go/internal/domain/attendance"
)

// fakeAttendanceRepo is an in-memory attendance.AttendanceRepository.
type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == att.EmployeeID && existing.Date.Equal(att.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	for _, att := range f.records {
		if att.EmployeeID == employeeID && att.Date.Equal(date) {
			return att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	var result []attendance.Attendance
	for _, att := range f.records {
		if filter.EmployeeID != nil && att.EmployeeID != *filter.EmployeeID {
			continue
		}
		result = append(result, att)
	}
	return result, int64(len(result)), nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if _, ok := f.records[att.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	f.records[att.ID] = att
	return att, nil
}

func newTestService(repo *fakeAttendanceRepo, now time.Time) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		logger:               slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:                  func() time.Time { return now },
	}
}

func TestCheckInOnTime(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, time.Date(2024, 1, 15, 8, 55, 0, 0, time.UTC))

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, "present", resp.Status)
	assert.Equal(t, "2024-01-15", resp.Date)
	require.NotNil(t, resp.CheckInTime)
	assert.Equal(t, "0:00", resp.WorkHours)
}

func TestCheckInAfterCutoffIsLate(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC))

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, "late", resp.Status)
}

func TestDuplicateCheckInRejected(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC))

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOutComputesWorkHours(t *testing.T) {
	repo := newFakeAttendanceRepo()
	checkInAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, checkInAt)

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return checkInAt.Add(8*time.Hour + 30*time.Minute) }
	resp, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, "8:30", resp.WorkHours)
	require.NotNil(t, resp.CheckOutTime)
}

func TestCheckOutLongDayFlipsToOvertime(t *testing.T) {
	repo := newFakeAttendanceRepo()
	checkInAt := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	svc := newTestService(repo, checkInAt)

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return checkInAt.Add(10 * time.Hour) }
	resp, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, "overtime", resp.Status)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC))

	_, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCorrectionStampsAuditFields(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	created, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	resp, err := svc.Correct(context.Background(), "hr-user-1", attendance.CorrectionRequest{
		ID:       created.ID,
		CheckIn:  "09:00",
		CheckOut: "17:30",
		Reason:   "badge reader was offline",
	})
	require.NoError(t, err)
	assert.Equal(t, "8:30", resp.WorkHours)

	stored := repo.records[created.ID]
	require.NotNil(t, stored.CorrectedBy)
	assert.Equal(t, "hr-user-1", *stored.CorrectedBy)
	require.NotNil(t, stored.CorrectionReason)
	assert.Equal(t, "badge reader was offline", *stored.CorrectionReason)
	require.NotNil(t, stored.CorrectedAt)
}

func TestCorrectionRejectsInvertedTimes(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC))

	created, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = svc.Correct(context.Background(), "hr-user-1", attendance.CorrectionRequest{
		ID:       created.ID,
		CheckIn:  "09:00",
		CheckOut: "08:00",
		Reason:   "typo fix",
	})
	assert.Error(t, err)

	// Record untouched after the rejected correction.
	stored := repo.records[created.ID]
	assert.Nil(t, stored.CorrectedBy)
}

func TestSummaryAggregates(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC))

	minutes := func(m int) *int { return &m }
	seed := []attendance.Attendance{
		{EmployeeID: "emp-1", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent, WorkMinutes: minutes(480)},
		{EmployeeID: "emp-1", Date: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent, WorkMinutes: minutes(510)},
		{EmployeeID: "emp-1", Date: time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), Status: attendance.StatusLate, WorkMinutes: minutes(450)},
		{EmployeeID: "emp-1", Date: time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC), Status: attendance.StatusAbsent},
	}
	for _, att := range seed {
		_, err := repo.Create(context.Background(), att)
		require.NoError(t, err)
	}

	empID := "emp-1"
	summary, err := svc.GetSummary(context.Background(), attendance.AttendanceFilter{EmployeeID: &empID})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalDays)
	assert.Equal(t, 2, summary.PresentDays)
	assert.Equal(t, 1, summary.LateDays)
	assert.Equal(t, 1, summary.AbsentDays)
	assert.Equal(t, "50.0", summary.AttendanceRate)
	assert.Equal(t, "6.0", summary.AvgWorkHours)
}
