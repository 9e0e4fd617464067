package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/pkg/logger"
)

// DashboardRepository aggregates counts for the admin and owner dashboards
type DashboardRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *DashboardRepository) count(ctx context.Context, table string, where interface{}) (int64, error) {
	builder := r.sb.Select("COUNT(*)").From(table)
	if where != nil {
		builder = builder.Where(where)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error building count SQL")
		return 0, fmt.Errorf("failed to build count query for %s: %w", table, err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error executing count query")
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}

	return count, nil
}

// GetPlatformStats collects the platform-wide counts for the admin overview
func (r *DashboardRepository) GetPlatformStats(ctx context.Context) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}

	counts := []struct {
		dest  *int64
		table string
		where interface{}
	}{
		{&stats.TotalAcademies, "academies", nil},
		{&stats.PendingAcademies, "academies", squirrel.Eq{"status": models.AcademyStatusPending}},
		{&stats.ActiveAcademies, "academies", squirrel.Eq{"status": models.AcademyStatusActive}},
		{&stats.SuspendedAcademies, "academies", squirrel.Eq{"status": models.AcademyStatusSuspended}},
		{&stats.TotalPhotos, "academy_photos", nil},
		{&stats.PendingPhotos, "academy_photos", squirrel.Eq{"status": models.ApprovalStatusPending}},
		{&stats.TotalSkills, "skills", nil},
		{&stats.PendingSkills, "academy_skills", squirrel.Eq{"status": models.ApprovalStatusPending}},
		{&stats.TotalAdmins, "admins", nil},
		{&stats.ActiveAdmins, "admins", squirrel.Eq{"status": models.AdminStatusActive}},
	}

	for _, c := range counts {
		n, err := r.count(ctx, c.table, c.where)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	return stats, nil
}

// GetAcademyStats collects the per-academy counts for the owner dashboard
func (r *DashboardRepository) GetAcademyStats(ctx context.Context, academyID uuid.UUID) (*dto.AcademyStats, error) {
	stats := &dto.AcademyStats{}

	counts := []struct {
		dest  *int64
		table string
		where interface{}
	}{
		{&stats.TotalStudents, "student_enrollments", squirrel.Eq{"academy_id": academyID, "status": models.ApprovalStatusApproved}},
		{&stats.NewPendingStudents, "student_enrollments", squirrel.Eq{"academy_id": academyID, "status": models.ApprovalStatusPending}},
		{&stats.ActiveTeachers, "teacher_assignments", squirrel.Eq{"academy_id": academyID, "status": models.ApprovalStatusApproved}},
		{&stats.TotalBatches, "batches", squirrel.Eq{"academy_id": academyID}},
		{&stats.ActiveBatches, "batches", squirrel.Eq{"academy_id": academyID, "status": models.BatchStatusActive}},
		{&stats.TotalSkills, "academy_skills", squirrel.Eq{"academy_id": academyID, "status": models.ApprovalStatusApproved}},
	}

	for _, c := range counts {
		n, err := r.count(ctx, c.table, c.where)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	return stats, nil
}

// GetRecentActivities builds the admin activity feed from the latest academy
// registrations and photo uploads.
func (r *DashboardRepository) GetRecentActivities(ctx context.Context, limit uint64) ([]*dto.Activity, error) {
	if limit == 0 {
		limit = 10
	}

	sql, args, err := r.sb.Select("id", "type", "title", "description", "status", "created_at").
		FromSelect(
			r.sb.Select(
				"id", "'academy_created' AS type", "name AS title",
				"'New academy registered' AS description", "status::text AS status", "created_at",
			).From("academies").
				Suffix("UNION ALL").
				SuffixExpr(r.sb.Select(
					"p.id", "'photo_uploaded' AS type", "a.name AS title",
					"'New photo uploaded' AS description", "p.status::text AS status", "p.created_at",
				).From("academy_photos p").Join("academies a ON a.id = p.academy_id")),
			"activity",
		).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building recent activities SQL")
		return nil, fmt.Errorf("failed to build recent activities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing recent activities query")
		return nil, fmt.Errorf("error querying recent activities: %w", err)
	}
	defer rows.Close()

	activities := []*dto.Activity{}
	for rows.Next() {
		activity := &dto.Activity{}
		var createdAt time.Time
		if err := rows.Scan(&activity.ID, &activity.Type, &activity.Title, &activity.Description, &activity.Status, &createdAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning activity row")
			return nil, fmt.Errorf("error scanning activity row: %w", err)
		}
		activity.CreatedAt = createdAt.Format(time.RFC3339)
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating activity rows")
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, nil
}
