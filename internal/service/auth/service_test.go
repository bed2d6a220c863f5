package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops/hrms-backend-go/internal/domain/employee"
	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/pkg/jwt"
	"github.com/peopleops/hrms-backend-go/internal/pkg/sse"
)

const testSecret = "test-secret-key-for-jwt"

type fakeUserRepo struct {
	users  map[string]user.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	for _, u := range f.users {
		if u.Email == newUser.Email {
			return user.User{}, user.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	newUser.ID = fmt.Sprintf("user-%d", f.nextID)
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) GetProfile(ctx context.Context, id string) (user.Profile, error) {
	u, ok := f.users[id]
	if !ok {
		return user.Profile{}, user.ErrUserNotFound
	}
	return user.Profile{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role}, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, req user.UpdateProfileRequest) (user.Profile, error) {
	return f.GetProfile(ctx, id)
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, userID string, role user.Role) error {
	u, ok := f.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Role = role
	f.users[userID] = u
	return nil
}

type fakeEmployeeRepo struct {
	byUserID map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	if f.byUserID != nil {
		if e, ok := f.byUserID[userID]; ok {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) UpdateStatusBulk(ctx context.Context, ids []string, status employee.Status) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeRefreshTokenRepo struct {
	revoked map[string]bool
	stored  map[string]string // token -> userID
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{
		revoked: make(map[string]bool),
		stored:  make(map[string]string),
	}
}

func (f *fakeRefreshTokenRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	f.stored[token] = userID
	return nil
}

func (f *fakeRefreshTokenRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}

func (f *fakeRefreshTokenRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	for token, uid := range f.stored {
		if uid == userID {
			f.revoked[token] = true
		}
	}
	return nil
}

func newTestAuthService(users *fakeUserRepo, tokens *fakeRefreshTokenRepo, hub *sse.Hub) auth.AuthService {
	return NewAuthService(
		users,
		&fakeEmployeeRepo{},
		tokens,
		jwt.NewJWTService(testSecret, "1h", "24h"),
		hub,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeRefreshTokenRepo(), sse.NewHub())

	tokens, err := svc.Register(context.Background(), auth.RegisterRequest{
		FullName:        "Alice Smith",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// Role defaults to employee.
	created, err := users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, created.Role)
	require.NotNil(t, created.PasswordHash)
	assert.NotEqual(t, "password123", *created.PasswordHash)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestRegisterDefaultsFullNameToEmailLocalPart(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeRefreshTokenRepo(), sse.NewHub())

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:           "bob@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	created, err := users.GetByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", created.FullName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeRefreshTokenRepo(), sse.NewHub())

	req := auth.RegisterRequest{
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}
	_, err := svc.Register(context.Background(), req, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeRefreshTokenRepo(), sse.NewHub())

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), sse.NewHub())

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginPublishesSignedInEvent(t *testing.T) {
	users := newFakeUserRepo()
	hub := sse.NewHub()
	svc := newTestAuthService(users, newFakeRefreshTokenRepo(), hub)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	created, err := users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)

	events, cleanup := hub.Subscribe(created.ID)
	defer cleanup()

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, sse.EventSignedIn, ev.Event)
	case <-time.After(time.Second):
		t.Fatal("expected a SIGNED_IN event")
	}
}

func TestRefreshAndLogout(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	svc := newTestAuthService(users, tokens, sse.NewHub())

	issued, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: issued.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	require.NoError(t, svc.Logout(context.Background(), issued.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: issued.RefreshToken,
	})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
