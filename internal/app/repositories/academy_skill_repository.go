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
	"github.com/unpuzzleclub/backend/internal/pkg/dberrors"
	"github.com/unpuzzleclub/backend/internal/pkg/logger"
)

// AcademySkillRepository handles academy skill request database operations
type AcademySkillRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAcademySkillRepository creates a new AcademySkillRepository
func NewAcademySkillRepository(db *pgxpool.Pool) *AcademySkillRepository {
	return &AcademySkillRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateRequest records a pending skill request for an academy
func (r *AcademySkillRepository) CreateRequest(ctx context.Context, academyID, skillID uuid.UUID) (uuid.UUID, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("academy_skills").
		Columns("academy_id", "skill_id", "status", "created_at", "updated_at").
		Values(academyID, skillID, models.ApprovalStatusPending, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create skill request SQL")
		return uuid.Nil, fmt.Errorf("failed to build create skill request query: %w", err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return uuid.Nil, apperrors.ErrSkillAlreadyRequested
		}
		if dberrors.IsForeignKeyViolation(err) {
			return uuid.Nil, apperrors.ErrSkillNotFound
		}
		logger.Error().Err(err).Str("academyID", academyID.String()).Str("skillID", skillID.String()).Msg("Error executing create skill request query")
		return uuid.Nil, fmt.Errorf("error creating skill request: %w", err)
	}

	return id, nil
}

// GetByID retrieves a single academy skill row
func (r *AcademySkillRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AcademySkill, error) {
	sql, args, err := r.sb.Select("id", "academy_id", "skill_id", "status", "created_at", "updated_at").
		From("academy_skills").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get academy skill SQL")
		return nil, fmt.Errorf("failed to build get academy skill query: %w", err)
	}

	as := &models.AcademySkill{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&as.ID, &as.AcademyID, &as.SkillID, &as.Status, &as.CreatedAt, &as.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademySkillNotFound
		}
		logger.Error().Err(err).Str("academySkillID", id.String()).Msg("Error scanning academy skill row")
		return nil, fmt.Errorf("error getting academy skill: %w", err)
	}

	return as, nil
}

// GetByAcademy lists an academy's skill rows with skill details. When
// approvedOnly is set only approved rows are returned (the public view).
func (r *AcademySkillRepository) GetByAcademy(ctx context.Context, academyID uuid.UUID, approvedOnly bool) ([]*models.AcademySkill, error) {
	builder := r.sb.Select(
		"asr.id", "asr.academy_id", "asr.skill_id", "asr.status", "asr.created_at", "asr.updated_at",
		"s.name", "s.description",
	).
		From("academy_skills asr").
		Join("skills s ON s.id = asr.skill_id").
		Where(squirrel.Eq{"asr.academy_id": academyID}).
		OrderBy("s.name ASC")

	if approvedOnly {
		builder = builder.Where(squirrel.Eq{"asr.status": models.ApprovalStatusApproved})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get academy skills SQL")
		return nil, fmt.Errorf("failed to build get academy skills query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get academy skills query")
		return nil, fmt.Errorf("error querying academy skills: %w", err)
	}
	defer rows.Close()

	results := []*models.AcademySkill{}
	for rows.Next() {
		as := &models.AcademySkill{Skill: &models.Skill{}}
		if err := rows.Scan(
			&as.ID, &as.AcademyID, &as.SkillID, &as.Status, &as.CreatedAt, &as.UpdatedAt,
			&as.Skill.Name, &as.Skill.Description,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning academy skill row")
			return nil, fmt.Errorf("error scanning academy skill row: %w", err)
		}
		as.Skill.ID = as.SkillID
		results = append(results, as)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating academy skill rows")
		return nil, fmt.Errorf("error iterating academy skill rows: %w", err)
	}

	return results, nil
}

// GetPending lists pending skill requests annotated with academy and skill
// details for the admin review queue, newest first.
func (r *AcademySkillRepository) GetPending(ctx context.Context) ([]*dto.PendingAcademySkill, error) {
	sql, args, err := r.sb.Select(
		"asr.id", "asr.academy_id", "asr.skill_id", "asr.status", "asr.created_at", "asr.updated_at",
		"a.name", "a.owner_id", "s.name", "s.description",
	).
		From("academy_skills asr").
		Join("academies a ON a.id = asr.academy_id").
		Join("skills s ON s.id = asr.skill_id").
		Where(squirrel.Eq{"asr.status": models.ApprovalStatusPending}).
		OrderBy("asr.created_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get pending skill requests SQL")
		return nil, fmt.Errorf("failed to build get pending skill requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get pending skill requests query")
		return nil, fmt.Errorf("error querying pending skill requests: %w", err)
	}
	defer rows.Close()

	pending := []*dto.PendingAcademySkill{}
	for rows.Next() {
		p := &dto.PendingAcademySkill{}
		if err := rows.Scan(
			&p.ID, &p.AcademyID, &p.SkillID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
			&p.AcademyName, &p.OwnerID, &p.SkillName, &p.SkillDescription,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning pending skill request row")
			return nil, fmt.Errorf("error scanning pending skill request row: %w", err)
		}
		pending = append(pending, p)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating pending skill request rows")
		return nil, fmt.Errorf("error iterating pending skill request rows: %w", err)
	}

	return pending, nil
}

// UpdateStatus overwrites a skill request's approval status. No status
// guard: a resolved row can be overwritten again, last write wins.
func (r *AcademySkillRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApprovalStatus) error {
	sql, args, err := r.sb.Update("academy_skills").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update skill request status SQL")
		return fmt.Errorf("failed to build update skill request status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("academySkillID", id.String()).Msg("Error executing update skill request status query")
		return fmt.Errorf("error updating skill request status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademySkillNotFound
	}

	return nil
}
