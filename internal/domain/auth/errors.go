package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already registered")

	// ErrBackendUnreachable is the user-displayable outcome for
	// connection-level failures, distinguished from generic errors so
	// the UI can point at the database service rather than the input.
	ErrBackendUnreachable = errors.New("cannot connect to the database service; the project may be paused or inactive")

	// ErrProfileLoadFailed is the generic profile-fetch failure shown
	// when the cause is not a connection problem.
	ErrProfileLoadFailed = errors.New("failed to load user profile")
)
