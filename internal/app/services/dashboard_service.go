package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
)

// DashboardService defines the interface for the dashboard read surfaces
type DashboardService interface {
	GetPlatformStats(ctx context.Context) (*dto.DashboardStats, error)
	GetRecentActivities(ctx context.Context, limit uint64) ([]*dto.Activity, error)
	GetAcademyStats(ctx context.Context, ownerID uuid.UUID) (*dto.AcademyStats, error)
	GetAcademyBatches(ctx context.Context, ownerID uuid.UUID) ([]*models.Batch, error)
	GetAcademyEnrollments(ctx context.Context, ownerID uuid.UUID) ([]*models.StudentEnrollment, error)
	GetAcademyAssignments(ctx context.Context, ownerID uuid.UUID) ([]*models.TeacherAssignment, error)
}

// statsStore is the subset of DashboardRepository the dashboard service needs
type statsStore interface {
	GetPlatformStats(ctx context.Context) (*dto.DashboardStats, error)
	GetAcademyStats(ctx context.Context, academyID uuid.UUID) (*dto.AcademyStats, error)
	GetRecentActivities(ctx context.Context, limit uint64) ([]*dto.Activity, error)
}

// rosterStore is the subset of BatchRepository the dashboard service needs
type rosterStore interface {
	GetBatchesByAcademy(ctx context.Context, academyID uuid.UUID) ([]*models.Batch, error)
	GetEnrollmentsByAcademy(ctx context.Context, academyID uuid.UUID) ([]*models.StudentEnrollment, error)
	GetAssignmentsByAcademy(ctx context.Context, academyID uuid.UUID) ([]*models.TeacherAssignment, error)
}

// ownerAcademyStore resolves the academy owned by a user
type ownerAcademyStore interface {
	GetAcademyByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.Academy, error)
}

// dashboardServiceImpl implements the DashboardService interface
type dashboardServiceImpl struct {
	statsRepo   statsStore
	rosterRepo  rosterStore
	academyRepo ownerAcademyStore
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(statsRepo statsStore, rosterRepo rosterStore, academyRepo ownerAcademyStore) DashboardService {
	return &dashboardServiceImpl{
		statsRepo:   statsRepo,
		rosterRepo:  rosterRepo,
		academyRepo: academyRepo,
	}
}

// GetPlatformStats collects the platform-wide overview for admins
func (s *dashboardServiceImpl) GetPlatformStats(ctx context.Context) (*dto.DashboardStats, error) {
	return s.statsRepo.GetPlatformStats(ctx)
}

// GetRecentActivities lists the latest platform events for the admin feed
func (s *dashboardServiceImpl) GetRecentActivities(ctx context.Context, limit uint64) ([]*dto.Activity, error) {
	return s.statsRepo.GetRecentActivities(ctx, limit)
}

// GetAcademyStats collects the owner dashboard summary for the caller's academy
func (s *dashboardServiceImpl) GetAcademyStats(ctx context.Context, ownerID uuid.UUID) (*dto.AcademyStats, error) {
	academy, err := s.academyRepo.GetAcademyByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.statsRepo.GetAcademyStats(ctx, academy.ID)
}

// GetAcademyBatches lists the caller's academy batches
func (s *dashboardServiceImpl) GetAcademyBatches(ctx context.Context, ownerID uuid.UUID) ([]*models.Batch, error) {
	academy, err := s.academyRepo.GetAcademyByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.rosterRepo.GetBatchesByAcademy(ctx, academy.ID)
}

// GetAcademyEnrollments lists the caller's academy student enrollments
func (s *dashboardServiceImpl) GetAcademyEnrollments(ctx context.Context, ownerID uuid.UUID) ([]*models.StudentEnrollment, error) {
	academy, err := s.academyRepo.GetAcademyByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.rosterRepo.GetEnrollmentsByAcademy(ctx, academy.ID)
}

// GetAcademyAssignments lists the caller's academy teacher assignments
func (s *dashboardServiceImpl) GetAcademyAssignments(ctx context.Context, ownerID uuid.UUID) ([]*models.TeacherAssignment, error) {
	academy, err := s.academyRepo.GetAcademyByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.rosterRepo.GetAssignmentsByAcademy(ctx, academy.ID)
}
