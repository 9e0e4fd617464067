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

// AdminRepository handles admin membership database operations
type AdminRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateAdmin grants admin membership to a user
func (r *AdminRepository) CreateAdmin(ctx context.Context, userID, createdBy uuid.UUID) (uuid.UUID, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("admins").
		Columns("user_id", "created_by", "status", "created_at", "updated_at").
		Values(userID, createdBy, models.AdminStatusActive, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create admin SQL")
		return uuid.Nil, fmt.Errorf("failed to build create admin query: %w", err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return uuid.Nil, apperrors.ErrAdminAlreadyExists
		}
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error executing create admin query")
		return uuid.Nil, fmt.Errorf("error creating admin: %w", err)
	}

	return id, nil
}

// GetAdminByUserID retrieves the admin row belonging to a user
func (r *AdminRepository) GetAdminByUserID(ctx context.Context, userID uuid.UUID) (*models.Admin, error) {
	sql, args, err := r.sb.Select("id", "user_id", "created_by", "status", "created_at", "updated_at").
		From("admins").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get admin SQL")
		return nil, fmt.Errorf("failed to build get admin query: %w", err)
	}

	admin := &models.Admin{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&admin.ID, &admin.UserID, &admin.CreatedBy, &admin.Status, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error scanning admin row")
		return nil, fmt.Errorf("error getting admin: %w", err)
	}

	return admin, nil
}

// IsActiveAdmin reports whether a user holds an active admin membership
func (r *AdminRepository) IsActiveAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("admins").
		Where(squirrel.Eq{"user_id": userID, "status": models.AdminStatusActive}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building admin exists SQL")
		return false, fmt.Errorf("failed to build admin existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error checking admin existence")
		return false, fmt.Errorf("error checking admin existence: %w", err)
	}

	return exists, nil
}

// GetAllAdmins lists admin memberships with their user accounts, newest first
func (r *AdminRepository) GetAllAdmins(ctx context.Context) ([]*models.Admin, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.user_id", "a.created_by", "a.status", "a.created_at", "a.updated_at",
		"u.email", "u.full_name", "u.is_active",
	).
		From("admins a").
		Join("users u ON u.id = a.user_id").
		OrderBy("a.created_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all admins SQL")
		return nil, fmt.Errorf("failed to build get all admins query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all admins query")
		return nil, fmt.Errorf("error querying admins: %w", err)
	}
	defer rows.Close()

	admins := []*models.Admin{}
	for rows.Next() {
		admin := &models.Admin{User: &models.User{}}
		if err := rows.Scan(
			&admin.ID, &admin.UserID, &admin.CreatedBy, &admin.Status, &admin.CreatedAt, &admin.UpdatedAt,
			&admin.User.Email, &admin.User.FullName, &admin.User.IsActive,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning admin row during get all")
			return nil, fmt.Errorf("error scanning admin row: %w", err)
		}
		admin.User.ID = admin.UserID
		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating admin rows")
		return nil, fmt.Errorf("error iterating admin rows: %w", err)
	}

	return admins, nil
}

// UpdateAdminStatus activates or suspends an admin membership
func (r *AdminRepository) UpdateAdminStatus(ctx context.Context, adminID uuid.UUID, status models.AdminStatus) error {
	sql, args, err := r.sb.Update("admins").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": adminID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update admin status SQL")
		return fmt.Errorf("failed to build update admin status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("adminID", adminID.String()).Msg("Error executing update admin status query")
		return fmt.Errorf("error updating admin status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAdminNotFound
	}

	return nil
}

// DeleteAdmin revokes an admin membership entirely
func (r *AdminRepository) DeleteAdmin(ctx context.Context, adminID uuid.UUID) error {
	sql, args, err := r.sb.Delete("admins").
		Where(squirrel.Eq{"id": adminID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete admin SQL")
		return fmt.Errorf("failed to build delete admin query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("adminID", adminID.String()).Msg("Error executing delete admin query")
		return fmt.Errorf("error deleting admin: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAdminNotFound
	}

	return nil
}
