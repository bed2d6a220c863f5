package attendance

import (
	"github.com/peopleops/hrms-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CorrectionRequest is a manual attendance fix entered by HR. Times
// are same-day wall-clock values ("HH:MM").
type CorrectionRequest struct {
	ID             string `json:"-"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	Reason         string `json:"reason"`
	ReasonCategory string `json:"reason_category"`
	Notes          string `json:"notes"`
}

var correctionCategories = []string{"technical", "forgot", "meeting", "travel", "emergency", "other"}

func (r *CorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check-in time is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	checkIn, checkInValid := validator.IsValidTimeOfDay(r.CheckIn)
	if !validator.IsEmpty(r.CheckIn) && !checkInValid {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check-in time must be HH:MM",
		})
	}

	if r.CheckOut != "" {
		checkOut, checkOutValid := validator.IsValidTimeOfDay(r.CheckOut)
		if !checkOutValid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check-out time must be HH:MM",
			})
		} else if checkInValid && !checkOut.After(checkIn) {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check-out time must be after check-in time",
			})
		}
	}

	if r.ReasonCategory != "" && !validator.IsInSlice(r.ReasonCategory, correctionCategories) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason_category",
			Message: "reason_category is not a known category",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	EmployeeID *string
	Date       *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if f.Status != nil && !IsValidStatus(Status(*f.Status)) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, absent, late, overtime",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"attendance_date"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	WorkHours    string  `json:"work_hours"`
	Status       string  `json:"status"`
}

type ListAttendanceResponse struct {
	Records    []AttendanceResponse `json:"records"`
	TotalItems int64                `json:"total_items"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}
