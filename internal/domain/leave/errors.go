package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")

	// Review errors
	ErrAlreadyReviewed = errors.New("leave request has already been reviewed")
	ErrInvalidDecision = errors.New("review decision must be approved or rejected")
)
