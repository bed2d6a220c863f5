package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/peopleops/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops/hrms-backend-go/internal/domain/employee"
	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/pkg/jwt"
	"github.com/peopleops/hrms-backend-go/internal/pkg/sse"
	"github.com/peopleops/hrms-backend-go/internal/repository/postgresql"
	"github.com/peopleops/hrms-backend-go/internal/service/session"
)

type AuthServiceImpl struct {
	user.UserRepository
	employee.EmployeeRepository
	refreshTokens postgresql.RefreshTokenRepository
	jwtService    jwt.Service
	hub           *sse.Hub
	logger        *slog.Logger
}

func NewAuthService(
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	refreshTokens postgresql.RefreshTokenRepository,
	jwtService jwt.Service,
	hub *sse.Hub,
	logger *slog.Logger,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:     userRepo,
		EmployeeRepository: employeeRepo,
		refreshTokens:      refreshTokens,
		jwtService:         jwtService,
		hub:                hub,
		logger:             logger,
	}
}

// Register implements auth.AuthService.
func (s *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := registerReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(registerReq.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	fullName := strings.TrimSpace(registerReq.FullName)
	if fullName == "" {
		// Default to the email local part, as the sign-up form does.
		fullName = registerReq.Email[:strings.Index(registerReq.Email, "@")]
	}

	role := user.RoleEmployee
	if registerReq.Role != "" {
		role = user.Role(registerReq.Role)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		FullName:     fullName,
		Email:        registerReq.Email,
		PasswordHash: &hashStr,
		Role:         role,
	})
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		return auth.TokenResponse{}, auth.ErrEmailAlreadyExists
	}
	if err != nil {
		return auth.TokenResponse{}, classifyBackendError(err)
	}

	s.logger.Info("user registered",
		slog.String("user_id", created.ID),
		slog.String("role", string(created.Role)))

	return s.issueTokens(ctx, created, sessionTrackReq)
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	found, err := s.UserRepository.GetByEmail(ctx, loginReq.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.TokenResponse{}, classifyBackendError(err)
	}

	if found.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*found.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, found, sessionTrackReq)
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}

	userID, err := s.jwtService.ValidateRefreshToken(token)
	if err != nil {
		return auth.ErrInvalidToken
	}

	if err := s.refreshTokens.RevokeRefreshToken(ctx, token); err != nil {
		return classifyBackendError(err)
	}

	s.hub.Publish(userID, sse.Event{UserID: userID, Event: sse.EventSignedOut})
	s.logger.Info("user signed out", slog.String("user_id", userID))

	return nil
}

// RefreshToken implements auth.AuthService.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	userID, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := s.refreshTokens.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, classifyBackendError(err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	found, err := s.UserRepository.GetByID(ctx, userID)
	if errors.Is(err, user.ErrUserNotFound) {
		return auth.AccessTokenResponse{}, auth.ErrUserNotFound
	}
	if err != nil {
		return auth.AccessTokenResponse{}, classifyBackendError(err)
	}

	accessToken, expiresAt, err := s.generateAccessToken(ctx, found)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	s.hub.Publish(found.ID, sse.Event{
		UserID: found.ID,
		Event:  sse.EventTokenRefreshed,
		Data: &session.Session{
			UserID:    found.ID,
			Email:     found.Email,
			Role:      found.Role,
			ExpiresAt: expiresAt,
		},
	})

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
	}, nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := s.generateAccessToken(ctx, u)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshTokens.CreateRefreshToken(ctx, u.ID, refreshToken, refreshExpiresAt, sessionTrackReq); err != nil {
		return auth.TokenResponse{}, classifyBackendError(err)
	}

	s.hub.Publish(u.ID, sse.Event{
		UserID: u.ID,
		Event:  sse.EventSignedIn,
		Data: &session.Session{
			UserID:    u.ID,
			Email:     u.Email,
			Role:      u.Role,
			ExpiresAt: accessExpiresAt,
		},
	})

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
	}, nil
}

// generateAccessToken resolves the linked employee row, if any, so
// the employee_id claim rides every access token.
func (s *AuthServiceImpl) generateAccessToken(ctx context.Context, u user.User) (string, int64, error) {
	var employeeID *string
	emp, err := s.EmployeeRepository.GetByUserID(ctx, u.ID)
	if err == nil {
		employeeID = &emp.ID
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return "", 0, classifyBackendError(err)
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, employeeID, u.Role)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiresAt, nil
}

// classifyBackendError keeps connection-level failures distinguishable
// so the login page can show the paused-service message.
func classifyBackendError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return auth.ErrBackendUnreachable
	}
	return err
}
