package attendance

import "errors"

var (
	// Check-in/out errors
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrNotCheckedIn     = errors.New("not checked in today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
