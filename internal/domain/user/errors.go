package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidRole           = errors.New("invalid role")
	ErrAdminAccessRequired   = errors.New("admin access required")
	ErrHRAccessRequired      = errors.New("hr access required")
	ErrReportsAccessRequired = errors.New("reports access required")
)
