package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
	"github.com/unpuzzleclub/backend/internal/pkg/logger"
)

// BatchRepository handles batch, enrollment and assignment read operations
type BatchRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBatchRepository creates a new BatchRepository
func NewBatchRepository(db *pgxpool.Pool) *BatchRepository {
	return &BatchRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetBatchesByAcademy lists an academy's batches with skill and teacher
// details, newest first.
func (r *BatchRepository) GetBatchesByAcademy(ctx context.Context, academyID uuid.UUID) ([]*models.Batch, error) {
	sql, args, err := r.sb.Select(
		"b.id", "b.name", "b.academy_id", "b.skill_id", "b.teacher_id",
		"b.start_date", "b.end_date", "b.max_students", "b.status", "b.created_at", "b.updated_at",
		"s.name", "s.description",
	).
		From("batches b").
		Join("skills s ON s.id = b.skill_id").
		Where(squirrel.Eq{"b.academy_id": academyID}).
		OrderBy("b.created_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get batches SQL")
		return nil, fmt.Errorf("failed to build get batches query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get batches query")
		return nil, fmt.Errorf("error querying batches: %w", err)
	}
	defer rows.Close()

	batches := []*models.Batch{}
	for rows.Next() {
		batch := &models.Batch{Skill: &models.Skill{}}
		if err := rows.Scan(
			&batch.ID, &batch.Name, &batch.AcademyID, &batch.SkillID, &batch.TeacherID,
			&batch.StartDate, &batch.EndDate, &batch.MaxStudents, &batch.Status, &batch.CreatedAt, &batch.UpdatedAt,
			&batch.Skill.Name, &batch.Skill.Description,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning batch row")
			return nil, fmt.Errorf("error scanning batch row: %w", err)
		}
		batch.Skill.ID = batch.SkillID
		batches = append(batches, batch)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating batch rows")
		return nil, fmt.Errorf("error iterating batch rows: %w", err)
	}

	return batches, nil
}

// GetBatchByID retrieves one batch
func (r *BatchRepository) GetBatchByID(ctx context.Context, id uuid.UUID) (*models.Batch, error) {
	sql, args, err := r.sb.Select(
		"id", "name", "academy_id", "skill_id", "teacher_id",
		"start_date", "end_date", "max_students", "status", "created_at", "updated_at",
	).
		From("batches").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get batch SQL")
		return nil, fmt.Errorf("failed to build get batch query: %w", err)
	}

	batch := &models.Batch{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&batch.ID, &batch.Name, &batch.AcademyID, &batch.SkillID, &batch.TeacherID,
		&batch.StartDate, &batch.EndDate, &batch.MaxStudents, &batch.Status, &batch.CreatedAt, &batch.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Str("batchID", id.String()).Msg("Error scanning batch row")
		return nil, fmt.Errorf("error getting batch: %w", err)
	}

	return batch, nil
}

// GetEnrollmentsByAcademy lists an academy's student enrollments with student
// accounts, newest first.
func (r *BatchRepository) GetEnrollmentsByAcademy(ctx context.Context, academyID uuid.UUID) ([]*models.StudentEnrollment, error) {
	sql, args, err := r.sb.Select(
		"e.id", "e.student_id", "e.academy_id", "e.status", "e.created_at", "e.updated_at",
		"u.email", "COALESCE(u.full_name, '')",
	).
		From("student_enrollments e").
		Join("users u ON u.id = e.student_id").
		Where(squirrel.Eq{"e.academy_id": academyID}).
		OrderBy("e.created_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get enrollments SQL")
		return nil, fmt.Errorf("failed to build get enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get enrollments query")
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.StudentEnrollment{}
	for rows.Next() {
		enr := &models.StudentEnrollment{Student: &models.User{}}
		var fullName string
		if err := rows.Scan(
			&enr.ID, &enr.StudentID, &enr.AcademyID, &enr.Status, &enr.CreatedAt, &enr.UpdatedAt,
			&enr.Student.Email, &fullName,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning enrollment row")
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enr.Student.ID = enr.StudentID
		if fullName != "" {
			enr.Student.FullName = &fullName
		}
		enrollments = append(enrollments, enr)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating enrollment rows")
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}

	return enrollments, nil
}

// GetAssignmentsByAcademy lists an academy's teacher assignments with teacher
// accounts, newest first.
func (r *BatchRepository) GetAssignmentsByAcademy(ctx context.Context, academyID uuid.UUID) ([]*models.TeacherAssignment, error) {
	sql, args, err := r.sb.Select(
		"t.id", "t.teacher_id", "t.academy_id", "t.status", "t.created_at", "t.updated_at",
		"u.email", "COALESCE(u.full_name, '')",
	).
		From("teacher_assignments t").
		Join("users u ON u.id = t.teacher_id").
		Where(squirrel.Eq{"t.academy_id": academyID}).
		OrderBy("t.created_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get assignments SQL")
		return nil, fmt.Errorf("failed to build get assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get assignments query")
		return nil, fmt.Errorf("error querying assignments: %w", err)
	}
	defer rows.Close()

	assignments := []*models.TeacherAssignment{}
	for rows.Next() {
		asg := &models.TeacherAssignment{Teacher: &models.User{}}
		var fullName string
		if err := rows.Scan(
			&asg.ID, &asg.TeacherID, &asg.AcademyID, &asg.Status, &asg.CreatedAt, &asg.UpdatedAt,
			&asg.Teacher.Email, &fullName,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning assignment row")
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		asg.Teacher.ID = asg.TeacherID
		if fullName != "" {
			asg.Teacher.FullName = &fullName
		}
		assignments = append(assignments, asg)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating assignment rows")
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}

	return assignments, nil
}
