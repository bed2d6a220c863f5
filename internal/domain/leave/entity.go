package leave

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var ValidStatuses = []Status{StatusPending, StatusApproved, StatusRejected}

func IsValidStatus(s Status) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

type LeaveType string

const (
	TypeAnnual    LeaveType = "annual"
	TypeSick      LeaveType = "sick"
	TypePersonal  LeaveType = "personal"
	TypeMaternity LeaveType = "maternity"
	TypeUnpaid    LeaveType = "unpaid"
)

var ValidLeaveTypes = []LeaveType{TypeAnnual, TypeSick, TypePersonal, TypeMaternity, TypeUnpaid}

func IsValidLeaveType(t LeaveType) bool {
	for _, valid := range ValidLeaveTypes {
		if t == valid {
			return true
		}
	}
	return false
}

type LeaveRequest struct {
	ID            string
	EmployeeID    string
	LeaveType     LeaveType
	StartDate     time.Time
	EndDate       time.Time
	DaysRequested int
	Reason        *string
	Status        Status

	// Review audit fields, set once when leaving pending
	ReviewedBy *string
	ReviewedAt *time.Time
	ReviewNote *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeName *string
	EmployeeCode *string
	Department   *string
}
