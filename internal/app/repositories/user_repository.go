package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
	"github.com/unpuzzleclub/backend/internal/pkg/dberrors"
	"github.com/unpuzzleclub/backend/internal/pkg/logger"
)

var userColumns = []string{"id", "email", "password", "full_name", "role", "google_sub", "is_active", "created_at", "updated_at"}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FullName,
		&user.Role,
		&user.GoogleSub,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user and returns its generated ID.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (uuid.UUID, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "full_name", "role", "google_sub", "is_active", "created_at", "updated_at").
		Values(user.Email, user.Password, user.FullName, user.Role, user.GoogleSub, user.IsActive, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return uuid.Nil, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return uuid.Nil, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return uuid.Nil, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by ID SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("userID", id.String()).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where("LOWER(email) = LOWER(?)", email).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}

	return user, nil
}

// GetUserByGoogleSub retrieves a user by its Google subject identifier
func (r *UserRepository) GetUserByGoogleSub(ctx context.Context, sub string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"google_sub": sub}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by google sub SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by google sub: %w", err)
	}

	return user, nil
}

// UpdateUserRole sets the role of a user. Role selection happens once after
// signup; the caller is responsible for rejecting already-assigned roles.
func (r *UserRepository) UpdateUserRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	sql, args, err := r.sb.Update("users").
		Set("role", role).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update user role SQL")
		return fmt.Errorf("failed to build update user role query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", id.String()).Msg("Error executing update user role query")
		return fmt.Errorf("error updating user role: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateUserProfile updates mutable profile fields of a user.
func (r *UserRepository) UpdateUserProfile(ctx context.Context, id uuid.UUID, fullName *string) error {
	sql, args, err := r.sb.Update("users").
		Set("full_name", fullName).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update user profile SQL")
		return fmt.Errorf("failed to build update user profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", id.String()).Msg("Error executing update user profile query")
		return fmt.Errorf("error updating user profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// LinkGoogleSub attaches a Google subject to an existing account. Used when a
// password account signs in with Google for the first time.
func (r *UserRepository) LinkGoogleSub(ctx context.Context, id uuid.UUID, sub string) error {
	sql, args, err := r.sb.Update("users").
		Set("google_sub", sub).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building link google sub SQL")
		return fmt.Errorf("failed to build link google sub query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", id.String()).Msg("Error executing link google sub query")
		return fmt.Errorf("error linking google sub: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetUserActive toggles account suspension
func (r *UserRepository) SetUserActive(ctx context.Context, id uuid.UUID, active bool) error {
	sql, args, err := r.sb.Update("users").
		Set("is_active", active).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building set user active SQL")
		return fmt.Errorf("failed to build set user active query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", id.String()).Msg("Error executing set user active query")
		return fmt.Errorf("error setting user active state: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
