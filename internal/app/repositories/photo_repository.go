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
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
	"github.com/unpuzzleclub/backend/internal/pkg/logger"
)

var photoColumns = []string{"id", "academy_id", "photo_url", "display_order", "status", "created_at", "updated_at"}

// PhotoRepository handles academy photo database operations
type PhotoRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPhotoRepository creates a new PhotoRepository
func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanPhoto(row pgx.Row) (*models.AcademyPhoto, error) {
	photo := &models.AcademyPhoto{}
	err := row.Scan(&photo.ID, &photo.AcademyID, &photo.PhotoURL, &photo.DisplayOrder, &photo.Status, &photo.CreatedAt, &photo.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return photo, nil
}

// CreatePhotoWithinQuota inserts a photo row only if the academy holds fewer
// than MaxPhotosPerAcademy rows. The count and insert run in one transaction
// with the academy row locked, so concurrent uploads cannot exceed the quota.
func (r *PhotoRepository) CreatePhotoWithinQuota(ctx context.Context, photo *models.AcademyPhoto) (uuid.UUID, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin photo transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lockSql, lockArgs, err := r.sb.Select("id").
		From("academies").
		Where(squirrel.Eq{"id": photo.AcademyID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build academy lock query: %w", err)
	}

	var academyID uuid.UUID
	if err := tx.QueryRow(ctx, lockSql, lockArgs...).Scan(&academyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, apperrors.ErrAcademyNotFound
		}
		logger.Error().Err(err).Str("academyID", photo.AcademyID.String()).Msg("Error locking academy row")
		return uuid.Nil, fmt.Errorf("error locking academy row: %w", err)
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("academy_photos").
		Where(squirrel.Eq{"academy_id": photo.AcademyID}).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build photo count query: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, countSql, countArgs...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("academyID", photo.AcademyID.String()).Msg("Error counting academy photos")
		return uuid.Nil, fmt.Errorf("error counting academy photos: %w", err)
	}

	if count >= models.MaxPhotosPerAcademy {
		return uuid.Nil, apperrors.ErrPhotoQuotaExceeded
	}

	now := time.Now()
	insertSql, insertArgs, err := r.sb.Insert("academy_photos").
		Columns("academy_id", "photo_url", "display_order", "status", "created_at", "updated_at").
		Values(photo.AcademyID, photo.PhotoURL, count+1, models.ApprovalStatusPending, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build insert photo query: %w", err)
	}

	var id uuid.UUID
	if err := tx.QueryRow(ctx, insertSql, insertArgs...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("academyID", photo.AcademyID.String()).Msg("Error inserting academy photo")
		return uuid.Nil, fmt.Errorf("error inserting academy photo: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit photo transaction: %w", err)
	}

	photo.ID = id
	photo.DisplayOrder = count + 1
	photo.Status = models.ApprovalStatusPending
	return id, nil
}

// GetPhotoByID retrieves a photo by ID
func (r *PhotoRepository) GetPhotoByID(ctx context.Context, id uuid.UUID) (*models.AcademyPhoto, error) {
	sql, args, err := r.sb.Select(photoColumns...).
		From("academy_photos").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get photo by ID SQL")
		return nil, fmt.Errorf("failed to build get photo query: %w", err)
	}

	photo, err := scanPhoto(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPhotoNotFound
		}
		logger.Error().Err(err).Str("photoID", id.String()).Msg("Error scanning photo row")
		return nil, fmt.Errorf("error getting photo by ID: %w", err)
	}

	return photo, nil
}

// GetPhotosByAcademy lists an academy's photos by display order. When
// approvedOnly is set, pending and rejected photos are excluded.
func (r *PhotoRepository) GetPhotosByAcademy(ctx context.Context, academyID uuid.UUID, approvedOnly bool) ([]*models.AcademyPhoto, error) {
	builder := r.sb.Select(photoColumns...).
		From("academy_photos").
		Where(squirrel.Eq{"academy_id": academyID}).
		OrderBy("display_order ASC", "created_at ASC")

	if approvedOnly {
		builder = builder.Where(squirrel.Eq{"status": models.ApprovalStatusApproved})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get academy photos SQL")
		return nil, fmt.Errorf("failed to build get academy photos query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get academy photos query")
		return nil, fmt.Errorf("error querying academy photos: %w", err)
	}
	defer rows.Close()

	photos := []*models.AcademyPhoto{}
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning photo row")
			return nil, fmt.Errorf("error scanning photo row: %w", err)
		}
		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating photo rows")
		return nil, fmt.Errorf("error iterating photo rows: %w", err)
	}

	return photos, nil
}

// CountPhotosByAcademy returns the total photo row count for an academy,
// all statuses included.
func (r *PhotoRepository) CountPhotosByAcademy(ctx context.Context, academyID uuid.UUID) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("academy_photos").
		Where(squirrel.Eq{"academy_id": academyID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building count photos SQL")
		return 0, fmt.Errorf("failed to build count photos query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("academyID", academyID.String()).Msg("Error counting photos")
		return 0, fmt.Errorf("error counting photos: %w", err)
	}

	return count, nil
}

// GetPendingPhotos lists pending photos annotated with academy and owner
// details for the admin review queue, newest first.
func (r *PhotoRepository) GetPendingPhotos(ctx context.Context) ([]*dto.PendingPhoto, error) {
	sql, args, err := r.sb.Select(
		"p.id", "p.academy_id", "p.photo_url", "p.display_order", "p.status", "p.created_at", "p.updated_at",
		"a.name", "a.owner_id", "u.email", "COALESCE(u.full_name, '')",
	).
		From("academy_photos p").
		Join("academies a ON a.id = p.academy_id").
		Join("users u ON u.id = a.owner_id").
		Where(squirrel.Eq{"p.status": models.ApprovalStatusPending}).
		OrderBy("p.created_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get pending photos SQL")
		return nil, fmt.Errorf("failed to build get pending photos query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get pending photos query")
		return nil, fmt.Errorf("error querying pending photos: %w", err)
	}
	defer rows.Close()

	pending := []*dto.PendingPhoto{}
	for rows.Next() {
		p := &dto.PendingPhoto{}
		if err := rows.Scan(
			&p.ID, &p.AcademyID, &p.PhotoURL, &p.DisplayOrder, &p.Status, &p.CreatedAt, &p.UpdatedAt,
			&p.AcademyName, &p.OwnerID, &p.OwnerEmail, &p.OwnerName,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning pending photo row")
			return nil, fmt.Errorf("error scanning pending photo row: %w", err)
		}
		pending = append(pending, p)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating pending photo rows")
		return nil, fmt.Errorf("error iterating pending photo rows: %w", err)
	}

	return pending, nil
}

// UpdateDisplayOrder sets the display order of exactly one photo. Other
// photos of the academy are left untouched.
func (r *PhotoRepository) UpdateDisplayOrder(ctx context.Context, id uuid.UUID, displayOrder int) error {
	sql, args, err := r.sb.Update("academy_photos").
		Set("display_order", displayOrder).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update display order SQL")
		return fmt.Errorf("failed to build update display order query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("photoID", id.String()).Msg("Error executing update display order query")
		return fmt.Errorf("error updating display order: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPhotoNotFound
	}

	return nil
}

// UpdateStatus overwrites a photo's approval status. No status guard: a
// resolved row can be overwritten again, last write wins.
func (r *PhotoRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApprovalStatus) error {
	sql, args, err := r.sb.Update("academy_photos").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update photo status SQL")
		return fmt.Errorf("failed to build update photo status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("photoID", id.String()).Msg("Error executing update photo status query")
		return fmt.Errorf("error updating photo status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPhotoNotFound
	}

	return nil
}

// DeletePhoto removes a photo row
func (r *PhotoRepository) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("academy_photos").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete photo SQL")
		return fmt.Errorf("failed to build delete photo query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("photoID", id.String()).Msg("Error executing delete photo query")
		return fmt.Errorf("error deleting photo: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPhotoNotFound
	}

	return nil
}
