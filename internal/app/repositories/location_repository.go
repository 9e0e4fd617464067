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

var locationColumns = []string{"id", "name", "city", "state", "country", "is_active", "created_at", "updated_at"}

// LocationRepository handles location database operations
type LocationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanLocation(row pgx.Row) (*models.Location, error) {
	loc := &models.Location{}
	err := row.Scan(&loc.ID, &loc.Name, &loc.City, &loc.State, &loc.Country, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// CreateLocation creates a new location
func (r *LocationRepository) CreateLocation(ctx context.Context, location *models.Location) (uuid.UUID, error) {
	if location.Country == "" {
		location.Country = models.DefaultCountry
	}

	now := time.Now()
	sql, args, err := r.sb.Insert("locations").
		Columns("name", "city", "state", "country", "is_active", "created_at", "updated_at").
		Values(location.Name, location.City, location.State, location.Country, true, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create location SQL")
		return uuid.Nil, fmt.Errorf("failed to build create location query: %w", err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return uuid.Nil, apperrors.NewConflictError("location with this name already exists in this city")
		}
		logger.Error().Err(err).Str("name", location.Name).Msg("Error executing create location query")
		return uuid.Nil, fmt.Errorf("error creating location: %w", err)
	}

	return id, nil
}

// GetLocationByID retrieves a location by ID
func (r *LocationRepository) GetLocationByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	sql, args, err := r.sb.Select(locationColumns...).
		From("locations").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get location by ID SQL")
		return nil, fmt.Errorf("failed to build get location query: %w", err)
	}

	loc, err := scanLocation(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLocationNotFound
		}
		logger.Error().Err(err).Str("locationID", id.String()).Msg("Error scanning location row")
		return nil, fmt.Errorf("error getting location by ID: %w", err)
	}

	return loc, nil
}

// GetAllLocations retrieves locations ordered by name. When activeOnly is set,
// suspended locations are excluded (the public directory view).
func (r *LocationRepository) GetAllLocations(ctx context.Context, activeOnly bool) ([]*models.Location, error) {
	builder := r.sb.Select(locationColumns...).
		From("locations").
		OrderBy("name ASC")

	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all locations SQL")
		return nil, fmt.Errorf("failed to build get all locations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all locations query")
		return nil, fmt.Errorf("error querying locations: %w", err)
	}
	defer rows.Close()

	locations := []*models.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning location row during get all")
			return nil, fmt.Errorf("error scanning location row: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating location rows")
		return nil, fmt.Errorf("error iterating location rows: %w", err)
	}

	return locations, nil
}

// UpdateLocation updates an existing location
func (r *LocationRepository) UpdateLocation(ctx context.Context, location *models.Location) error {
	sql, args, err := r.sb.Update("locations").
		SetMap(map[string]interface{}{
			"name":       location.Name,
			"city":       location.City,
			"state":      location.State,
			"country":    location.Country,
			"is_active":  location.IsActive,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"id": location.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update location SQL")
		return fmt.Errorf("failed to build update location query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.NewConflictError("location with this name already exists in this city")
		}
		logger.Error().Err(err).Str("locationID", location.ID.String()).Msg("Error executing update location query")
		return fmt.Errorf("error updating location: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLocationNotFound
	}

	return nil
}

// DeleteLocation deletes a location unless any academy references it
func (r *LocationRepository) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	// Check referencing academies BEFORE deleting
	var inUse bool
	checkSql, checkArgs, err := r.sb.Select("1").
		From("academies").
		Where(squirrel.Eq{"location_id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building check academies SQL")
		return fmt.Errorf("failed to build check academies query: %w", err)
	}

	err = r.db.QueryRow(ctx, checkSql, checkArgs...).Scan(&inUse)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("locationID", id.String()).Msg("Error checking referencing academies")
		return fmt.Errorf("error checking referencing academies: %w", err)
	}

	if inUse {
		return apperrors.ErrLocationInUse
	}

	sql, args, err := r.sb.Delete("locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete location SQL")
		return fmt.Errorf("failed to build delete location query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			// An academy claimed the location between check and delete
			return apperrors.ErrLocationInUse
		}
		logger.Error().Err(err).Str("locationID", id.String()).Msg("Error executing delete location query")
		return fmt.Errorf("error deleting location: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLocationNotFound
	}

	return nil
}
