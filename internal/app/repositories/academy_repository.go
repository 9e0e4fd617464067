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

// AcademyRepository handles academy database operations
type AcademyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAcademyRepository creates a new AcademyRepository
func NewAcademyRepository(db *pgxpool.Pool) *AcademyRepository {
	return &AcademyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateAcademy creates a new academy. New academies always start as pending
// and become visible in listings only after an admin activates them.
func (r *AcademyRepository) CreateAcademy(ctx context.Context, academy *models.Academy) (uuid.UUID, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("academies").
		Columns("name", "phone_number", "owner_id", "location_id", "status", "created_at", "updated_at").
		Values(academy.Name, academy.PhoneNumber, academy.OwnerID, academy.LocationID, models.AcademyStatusPending, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create academy SQL")
		return uuid.Nil, fmt.Errorf("failed to build create academy query: %w", err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return uuid.Nil, apperrors.NewConflictError("this user already owns an academy")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return uuid.Nil, apperrors.ErrLocationNotFound
		}
		logger.Error().Err(err).Str("name", academy.Name).Msg("Error executing create academy query")
		return uuid.Nil, fmt.Errorf("error creating academy: %w", err)
	}

	return id, nil
}

func (r *AcademyRepository) academySelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"a.id", "a.name", "a.phone_number", "a.owner_id", "a.location_id", "a.status", "a.created_at", "a.updated_at",
		"l.id", "l.name", "l.city", "l.state", "l.country",
	).
		From("academies a").
		LeftJoin("locations l ON l.id = a.location_id")
}

func scanAcademy(row pgx.Row) (*models.Academy, error) {
	academy := &models.Academy{}
	var locID *uuid.UUID
	var locName, locCity, locState, locCountry *string

	err := row.Scan(
		&academy.ID, &academy.Name, &academy.PhoneNumber, &academy.OwnerID, &academy.LocationID,
		&academy.Status, &academy.CreatedAt, &academy.UpdatedAt,
		&locID, &locName, &locCity, &locState, &locCountry,
	)
	if err != nil {
		return nil, err
	}

	if locID != nil {
		academy.Location = &models.Location{
			ID:       *locID,
			Name:     *locName,
			City:     *locCity,
			State:    *locState,
			Country:  *locCountry,
			IsActive: true,
		}
	}

	return academy, nil
}

// GetAcademyByID retrieves an academy by ID with its location
func (r *AcademyRepository) GetAcademyByID(ctx context.Context, id uuid.UUID) (*models.Academy, error) {
	sql, args, err := r.academySelect().
		Where(squirrel.Eq{"a.id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get academy by ID SQL")
		return nil, fmt.Errorf("failed to build get academy query: %w", err)
	}

	academy, err := scanAcademy(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademyNotFound
		}
		logger.Error().Err(err).Str("academyID", id.String()).Msg("Error scanning academy row")
		return nil, fmt.Errorf("error getting academy by ID: %w", err)
	}

	return academy, nil
}

// GetAcademyByOwnerID retrieves the academy owned by a user
func (r *AcademyRepository) GetAcademyByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.Academy, error) {
	sql, args, err := r.academySelect().
		Where(squirrel.Eq{"a.owner_id": ownerID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get academy by owner SQL")
		return nil, fmt.Errorf("failed to build get academy query: %w", err)
	}

	academy, err := scanAcademy(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademyNotFound
		}
		logger.Error().Err(err).Str("ownerID", ownerID.String()).Msg("Error scanning academy row")
		return nil, fmt.Errorf("error getting academy by owner: %w", err)
	}

	return academy, nil
}

// GetActiveAcademies lists academies with status 'active' ordered by name.
// This is the public directory listing.
func (r *AcademyRepository) GetActiveAcademies(ctx context.Context, locationID *uuid.UUID) ([]*models.Academy, error) {
	builder := r.academySelect().
		Where(squirrel.Eq{"a.status": models.AcademyStatusActive}).
		OrderBy("a.name ASC")

	if locationID != nil {
		builder = builder.Where(squirrel.Eq{"a.location_id": *locationID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get active academies SQL")
		return nil, fmt.Errorf("failed to build get active academies query: %w", err)
	}

	return r.queryAcademies(ctx, sql, args)
}

// GetAllAcademies lists academies regardless of status, newest first, with an
// optional status filter and offset pagination. Admin-only view. Returns the
// page of rows and the total matching count.
func (r *AcademyRepository) GetAllAcademies(ctx context.Context, status *models.AcademyStatus, offset uint64, limit int) ([]*models.Academy, int64, error) {
	countBuilder := r.sb.Select("COUNT(*)").From("academies a")
	listBuilder := r.academySelect().
		OrderBy("a.created_at DESC").
		Offset(offset).
		Limit(uint64(limit))

	if status != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"a.status": *status})
		listBuilder = listBuilder.Where(squirrel.Eq{"a.status": *status})
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count academies SQL")
		return nil, 0, fmt.Errorf("failed to build count academies query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting academies")
		return nil, 0, fmt.Errorf("error counting academies: %w", err)
	}

	sql, args, err := listBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all academies SQL")
		return nil, 0, fmt.Errorf("failed to build get all academies query: %w", err)
	}

	academies, err := r.queryAcademies(ctx, sql, args)
	if err != nil {
		return nil, 0, err
	}

	return academies, total, nil
}

func (r *AcademyRepository) queryAcademies(ctx context.Context, sql string, args []interface{}) ([]*models.Academy, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing academies query")
		return nil, fmt.Errorf("error querying academies: %w", err)
	}
	defer rows.Close()

	academies := []*models.Academy{}
	for rows.Next() {
		academy, err := scanAcademy(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning academy row")
			return nil, fmt.Errorf("error scanning academy row: %w", err)
		}
		academies = append(academies, academy)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating academy rows")
		return nil, fmt.Errorf("error iterating academy rows: %w", err)
	}

	return academies, nil
}

// UpdateAcademyStatus moves an academy through its status workflow
func (r *AcademyRepository) UpdateAcademyStatus(ctx context.Context, id uuid.UUID, status models.AcademyStatus) error {
	sql, args, err := r.sb.Update("academies").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update academy status SQL")
		return fmt.Errorf("failed to build update academy status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("academyID", id.String()).Msg("Error executing update academy status query")
		return fmt.Errorf("error updating academy status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademyNotFound
	}

	return nil
}

// UpdateAcademy updates the mutable profile fields of an academy
func (r *AcademyRepository) UpdateAcademy(ctx context.Context, id uuid.UUID, name, phoneNumber string, locationID *uuid.UUID) error {
	sql, args, err := r.sb.Update("academies").
		SetMap(map[string]interface{}{
			"name":         name,
			"phone_number": phoneNumber,
			"location_id":  locationID,
			"updated_at":   time.Now(),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update academy SQL")
		return fmt.Errorf("failed to build update academy query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrLocationNotFound
		}
		logger.Error().Err(err).Str("academyID", id.String()).Msg("Error executing update academy query")
		return fmt.Errorf("error updating academy: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademyNotFound
	}

	return nil
}

// RenameAcademy updates only the academy's name
func (r *AcademyRepository) RenameAcademy(ctx context.Context, id uuid.UUID, name string) error {
	sql, args, err := r.sb.Update("academies").
		Set("name", name).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building rename academy SQL")
		return fmt.Errorf("failed to build rename academy query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("academyID", id.String()).Msg("Error executing rename academy query")
		return fmt.Errorf("error renaming academy: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademyNotFound
	}

	return nil
}

// DeleteAcademy removes an academy row. Dependent photo, skill, batch and
// roster rows are cleaned up by the database cascade.
func (r *AcademyRepository) DeleteAcademy(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("academies").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete academy SQL")
		return fmt.Errorf("failed to build delete academy query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("academyID", id.String()).Msg("Error executing delete academy query")
		return fmt.Errorf("error deleting academy: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademyNotFound
	}

	return nil
}
