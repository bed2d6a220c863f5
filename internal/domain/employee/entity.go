package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusOnLeave    Status = "on_leave"
	StatusTerminated Status = "terminated"
)

// ValidStatuses is the closed status set accepted at the data-access boundary.
var ValidStatuses = []Status{StatusActive, StatusOnLeave, StatusTerminated}

func IsValidStatus(s Status) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

type Employee struct {
	ID           string
	UserID       string
	EmployeeCode string
	Department   string
	Position     string
	Salary       decimal.Decimal
	Status       Status
	HireDate     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	FullName *string
	Email    *string
}
