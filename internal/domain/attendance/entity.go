package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent  Status = "present"
	StatusAbsent   Status = "absent"
	StatusLate     Status = "late"
	StatusOvertime Status = "overtime"
)

// ValidStatuses is the closed status set accepted at the data-access boundary.
var ValidStatuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusOvertime}

func IsValidStatus(s Status) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

type Attendance struct {
	ID          string
	EmployeeID  string
	Date        time.Time // the working day, not a timestamp
	CheckIn     *time.Time
	CheckOut    *time.Time
	WorkMinutes *int
	Status      Status

	// Manual correction audit fields
	CorrectionReason *string
	CorrectedBy      *string
	CorrectedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeName *string
	EmployeeCode *string
	Department   *string
}
