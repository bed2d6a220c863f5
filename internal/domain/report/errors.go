package report

import "errors"

var (
	ErrAlertNotFound = errors.New("system alert not found")
)
