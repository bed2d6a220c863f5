package auth

import (
	"context"
)

// AuthService defines the authentication operations behind the login portal
type AuthService interface {
	// Register creates a user with a hashed password and signs them in
	Register(ctx context.Context, registerReq RegisterRequest, sessionTrackReq SessionTrackingRequest) (TokenResponse, error)

	// Login verifies credentials and issues an access/refresh pair
	Login(ctx context.Context, loginReq LoginRequest, sessionTrackReq SessionTrackingRequest) (TokenResponse, error)

	// Logout revokes the refresh token
	Logout(ctx context.Context, token string) error

	// RefreshToken exchanges a valid refresh token for a new access token
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
}
