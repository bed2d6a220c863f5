package paycalc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// HoursWorked formats the span between check-in and check-out as
// "H:MM", truncated to whole minutes. A missing side yields "0:00",
// and an inverted pair (check-out before check-in) clamps to "0:00"
// instead of producing a negative duration.
func HoursWorked(checkIn, checkOut *time.Time) string {
	if checkIn == nil || checkOut == nil {
		return "0:00"
	}

	diff := checkOut.Sub(*checkIn)
	if diff < 0 {
		diff = 0
	}

	hours := int(diff / time.Hour)
	minutes := int(diff%time.Hour) / int(time.Minute)
	return fmt.Sprintf("%d:%02d", hours, minutes)
}

// WorkMinutes returns the whole minutes between check-in and
// check-out, zero when either side is missing or the pair is inverted.
func WorkMinutes(checkIn, checkOut *time.Time) int {
	if checkIn == nil || checkOut == nil {
		return 0
	}

	diff := checkOut.Sub(*checkIn)
	if diff < 0 {
		return 0
	}
	return int(diff / time.Minute)
}

// GrossPay is base salary plus overtime pay plus bonus.
func GrossPay(base, overtime, bonus decimal.Decimal) decimal.Decimal {
	return base.Add(overtime).Add(bonus)
}

// NetPay is gross pay minus deductions minus tax.
func NetPay(gross, deductions, tax decimal.Decimal) decimal.Decimal {
	return gross.Sub(deductions).Sub(tax)
}

// AttendanceRate returns the present/total percentage with one
// decimal place ("90.0"). A zero total yields "0", not a division
// error.
func AttendanceRate(presentDays, totalDays int) string {
	if totalDays == 0 {
		return "0"
	}
	rate := float64(presentDays) / float64(totalDays) * 100
	return fmt.Sprintf("%.1f", rate)
}

// AverageHours returns total work hours divided by day count with one
// decimal place, "0.0" when there are no days.
func AverageHours(totalHours float64, days int) string {
	if days == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", totalHours/float64(days))
}

// DaysRequested is the inclusive day count of a leave range:
// 2025-01-01 through 2025-01-03 is 3 days. The count is signed;
// callers validate that the end does not precede the start.
func DaysRequested(startDate, endDate time.Time) int {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// Summary holds the attendance card aggregates for a set of records.
type Summary struct {
	TotalDays      int    `json:"total_days"`
	PresentDays    int    `json:"present_days"`
	LateDays       int    `json:"late_days"`
	AbsentDays     int    `json:"absent_days"`
	AvgWorkHours   string `json:"avg_work_hours"`
	AttendanceRate string `json:"attendance_rate"`
}

// DayRecord is the slice of an attendance row the summary needs.
type DayRecord struct {
	Status    string
	WorkHours float64
}

// Summarize aggregates per-day attendance records into summary-card
// values. Late days count toward the attendance rate's present share
// the way the status enum splits them: only status "present" does.
func Summarize(records []DayRecord) Summary {
	s := Summary{TotalDays: len(records)}

	var totalHours float64
	for _, r := range records {
		totalHours += r.WorkHours
		switch r.Status {
		case "present":
			s.PresentDays++
		case "late":
			s.LateDays++
		case "absent":
			s.AbsentDays++
		}
	}

	s.AvgWorkHours = AverageHours(totalHours, s.TotalDays)
	s.AttendanceRate = AttendanceRate(s.PresentDays, s.TotalDays)
	return s
}
