package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/pkg/sse"
)

type UserServiceImpl struct {
	user.UserRepository
	hub    *sse.Hub
	logger *slog.Logger
}

func NewUserService(userRepo user.UserRepository, hub *sse.Hub, logger *slog.Logger) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepo,
		hub:            hub,
		logger:         logger,
	}
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (user.Profile, error) {
	return s.UserRepository.GetProfile(ctx, userID)
}

// FetchProfile satisfies the session reconciler's fetcher contract.
func (s *UserServiceImpl) FetchProfile(ctx context.Context, userID string) (user.Profile, error) {
	return s.UserRepository.GetProfile(ctx, userID)
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.Profile, error) {
	if err := req.Validate(); err != nil {
		return user.Profile{}, err
	}

	updated, err := s.UserRepository.UpdateProfile(ctx, userID, req)
	if err != nil {
		return user.Profile{}, err
	}

	s.hub.Publish(userID, sse.Event{UserID: userID, Event: sse.EventProfileUpdated})

	return updated, nil
}

// UpdateRole implements user.UserService.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, req user.UpdateRoleRequest) (user.Profile, error) {
	if err := req.Validate(); err != nil {
		return user.Profile{}, err
	}

	if err := s.UserRepository.UpdateRole(ctx, req.UserID, user.Role(req.Role)); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.Profile{}, user.ErrUserNotFound
		}
		return user.Profile{}, err
	}

	s.logger.Info("role updated",
		slog.String("user_id", req.UserID),
		slog.String("role", req.Role))

	s.hub.Publish(req.UserID, sse.Event{UserID: req.UserID, Event: sse.EventProfileUpdated})

	return s.UserRepository.GetProfile(ctx, req.UserID)
}
