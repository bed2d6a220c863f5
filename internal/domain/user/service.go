package user

import (
	"context"
)

// UserService exposes the profile and role operations behind /me and
// the admin role management action.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (Profile, error)
	// FetchProfile is the session reconciler's profile source. Unlike
	// GetProfile it passes repository errors through unclassified.
	FetchProfile(ctx context.Context, userID string) (Profile, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (Profile, error)
	UpdateRole(ctx context.Context, req UpdateRoleRequest) (Profile, error)
}
