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

var skillColumns = []string{"id", "name", "description", "is_active", "created_at", "updated_at"}

// SkillRepository handles skill database operations
type SkillRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSkillRepository creates a new SkillRepository
func NewSkillRepository(db *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSkill(row pgx.Row) (*models.Skill, error) {
	skill := &models.Skill{}
	err := row.Scan(&skill.ID, &skill.Name, &skill.Description, &skill.IsActive, &skill.CreatedAt, &skill.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return skill, nil
}

// CreateSkill creates a new skill
func (r *SkillRepository) CreateSkill(ctx context.Context, skill *models.Skill) (uuid.UUID, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("skills").
		Columns("name", "description", "is_active", "created_at", "updated_at").
		Values(skill.Name, skill.Description, true, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create skill SQL")
		return uuid.Nil, fmt.Errorf("failed to build create skill query: %w", err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return uuid.Nil, apperrors.NewConflictError("skill with this name already exists")
		}
		logger.Error().Err(err).Str("name", skill.Name).Msg("Error executing create skill query")
		return uuid.Nil, fmt.Errorf("error creating skill: %w", err)
	}

	return id, nil
}

// GetSkillByID retrieves a skill by ID
func (r *SkillRepository) GetSkillByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	sql, args, err := r.sb.Select(skillColumns...).
		From("skills").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get skill by ID SQL")
		return nil, fmt.Errorf("failed to build get skill query: %w", err)
	}

	skill, err := scanSkill(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSkillNotFound
		}
		logger.Error().Err(err).Str("skillID", id.String()).Msg("Error scanning skill row")
		return nil, fmt.Errorf("error getting skill by ID: %w", err)
	}

	return skill, nil
}

// GetAllSkills retrieves skills ordered by name. When activeOnly is set,
// deactivated skills are excluded.
func (r *SkillRepository) GetAllSkills(ctx context.Context, activeOnly bool) ([]*models.Skill, error) {
	builder := r.sb.Select(skillColumns...).
		From("skills").
		OrderBy("name ASC")

	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all skills SQL")
		return nil, fmt.Errorf("failed to build get all skills query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all skills query")
		return nil, fmt.Errorf("error querying skills: %w", err)
	}
	defer rows.Close()

	skills := []*models.Skill{}
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning skill row during get all")
			return nil, fmt.Errorf("error scanning skill row: %w", err)
		}
		skills = append(skills, skill)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating skill rows")
		return nil, fmt.Errorf("error iterating skill rows: %w", err)
	}

	return skills, nil
}

// UpdateSkill updates an existing skill
func (r *SkillRepository) UpdateSkill(ctx context.Context, skill *models.Skill) error {
	sql, args, err := r.sb.Update("skills").
		SetMap(map[string]interface{}{
			"name":        skill.Name,
			"description": skill.Description,
			"is_active":   skill.IsActive,
			"updated_at":  time.Now(),
		}).
		Where(squirrel.Eq{"id": skill.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update skill SQL")
		return fmt.Errorf("failed to build update skill query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.NewConflictError("skill with this name already exists")
		}
		logger.Error().Err(err).Str("skillID", skill.ID.String()).Msg("Error executing update skill query")
		return fmt.Errorf("error updating skill: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSkillNotFound
	}

	return nil
}

// DeleteSkill deletes a skill unless any academy offers or has requested it
func (r *SkillRepository) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	var inUse bool
	checkSql, checkArgs, err := r.sb.Select("1").
		From("academy_skills").
		Where(squirrel.Eq{"skill_id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building check academy skills SQL")
		return fmt.Errorf("failed to build check academy skills query: %w", err)
	}

	err = r.db.QueryRow(ctx, checkSql, checkArgs...).Scan(&inUse)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("skillID", id.String()).Msg("Error checking referencing academy skills")
		return fmt.Errorf("error checking referencing academy skills: %w", err)
	}

	if inUse {
		return apperrors.ErrSkillInUse
	}

	sql, args, err := r.sb.Delete("skills").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete skill SQL")
		return fmt.Errorf("failed to build delete skill query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSkillInUse
		}
		logger.Error().Err(err).Str("skillID", id.String()).Msg("Error executing delete skill query")
		return fmt.Errorf("error deleting skill: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSkillNotFound
	}

	return nil
}
