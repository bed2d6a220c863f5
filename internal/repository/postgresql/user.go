package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, email, password_hash, role, created_at, updated_at
		FROM user_profiles
		WHERE email = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&found.ID,
		&found.FullName,
		&found.Email,
		&found.PasswordHash,
		&found.Role,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, err
	}

	return found, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, email, password_hash, role, created_at, updated_at
		FROM user_profiles
		WHERE id = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.FullName,
		&found.Email,
		&found.PasswordHash,
		&found.Role,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, err
	}

	return found, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_profiles (id, full_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, full_name, email, password_hash, role, created_at, updated_at
	`

	var created user.User
	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		newUser.FullName,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
	).Scan(
		&created.ID,
		&created.FullName,
		&created.Email,
		&created.PasswordHash,
		&created.Role,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return user.User{}, user.ErrEmailAlreadyExists
	}
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

// GetProfile implements user.UserRepository. The employee join is
// LEFT so admin and HR users without an employee row still resolve.
func (r *userRepositoryImpl) GetProfile(ctx context.Context, id string) (user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.full_name, u.email, u.role,
			   e.id, e.employee_code, e.department, e.position, e.salary, e.status
		FROM user_profiles u
		LEFT JOIN employees e ON e.user_id = u.id
		WHERE u.id = $1
	`

	var profile user.Profile
	var empID, empCode, department, position, status *string
	var salary *string

	err := q.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Email,
		&profile.Role,
		&empID,
		&empCode,
		&department,
		&position,
		&salary,
		&status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.Profile{}, user.ErrUserNotFound
	}
	if err != nil {
		return user.Profile{}, err
	}

	if empID != nil {
		record := user.EmployeeRecord{
			ID:           *empID,
			EmployeeCode: *empCode,
			Department:   *department,
			Position:     *position,
			Status:       *status,
		}
		if salary != nil {
			if err := record.Salary.Scan(*salary); err != nil {
				return user.Profile{}, err
			}
		}
		profile.Employee = &record
	}

	return profile, nil
}

// UpdateProfile implements user.UserRepository.
func (r *userRepositoryImpl) UpdateProfile(ctx context.Context, id string, req user.UpdateProfileRequest) (user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE user_profiles
		SET full_name = COALESCE($1, full_name),
			email = COALESCE($2, email),
			updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, req.FullName, req.Email, id)
	if isUniqueViolation(err) {
		return user.Profile{}, user.ErrEmailAlreadyExists
	}
	if err != nil {
		return user.Profile{}, err
	}
	if tag.RowsAffected() == 0 {
		return user.Profile{}, user.ErrUserNotFound
	}

	return r.GetProfile(ctx, id)
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE user_profiles
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateRole implements user.UserRepository.
func (r *userRepositoryImpl) UpdateRole(ctx context.Context, userID string, role user.Role) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE user_profiles
		SET role = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, role, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// isUniqueViolation reports a SQLSTATE 23505 error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
