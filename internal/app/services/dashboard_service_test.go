package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
)

type fakeStatsStore struct {
	academyStats map[uuid.UUID]*dto.AcademyStats
}

func (s *fakeStatsStore) GetPlatformStats(context.Context) (*dto.DashboardStats, error) {
	return &dto.DashboardStats{TotalAcademies: 3, PendingAcademies: 1}, nil
}

func (s *fakeStatsStore) GetAcademyStats(_ context.Context, academyID uuid.UUID) (*dto.AcademyStats, error) {
	if st, ok := s.academyStats[academyID]; ok {
		return st, nil
	}
	return &dto.AcademyStats{}, nil
}

func (s *fakeStatsStore) GetRecentActivities(_ context.Context, limit uint64) ([]*dto.Activity, error) {
	activities := []*dto.Activity{
		{ID: "1", Type: "academy_created"},
		{ID: "2", Type: "photo_uploaded"},
	}
	if uint64(len(activities)) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

type fakeRosterStore struct {
	batches []*models.Batch
}

func (s *fakeRosterStore) GetBatchesByAcademy(_ context.Context, academyID uuid.UUID) ([]*models.Batch, error) {
	var out []*models.Batch
	for _, b := range s.batches {
		if b.AcademyID == academyID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeRosterStore) GetEnrollmentsByAcademy(context.Context, uuid.UUID) ([]*models.StudentEnrollment, error) {
	return nil, nil
}

func (s *fakeRosterStore) GetAssignmentsByAcademy(context.Context, uuid.UUID) ([]*models.TeacherAssignment, error) {
	return nil, nil
}

func TestGetAcademyStats_ResolvesOwner(t *testing.T) {
	ownerID := uuid.New()
	academy := &models.Academy{ID: uuid.New(), OwnerID: ownerID}
	stats := &fakeStatsStore{academyStats: map[uuid.UUID]*dto.AcademyStats{
		academy.ID: {TotalStudents: 12, ActiveTeachers: 2},
	}}
	svc := NewDashboardService(stats, &fakeRosterStore{}, newFakeFullAcademyStore(academy))

	t.Run("owner sees their academy's numbers", func(t *testing.T) {
		got, err := svc.GetAcademyStats(context.Background(), ownerID)
		require.NoError(t, err)
		assert.Equal(t, int64(12), got.TotalStudents)
	})

	t.Run("user without an academy", func(t *testing.T) {
		_, err := svc.GetAcademyStats(context.Background(), uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrAcademyNotFound)
	})
}

func TestGetAcademyBatches_ScopedToOwner(t *testing.T) {
	ownerID := uuid.New()
	academy := &models.Academy{ID: uuid.New(), OwnerID: ownerID}
	other := &models.Academy{ID: uuid.New(), OwnerID: uuid.New()}
	roster := &fakeRosterStore{batches: []*models.Batch{
		{ID: uuid.New(), AcademyID: academy.ID},
		{ID: uuid.New(), AcademyID: other.ID},
	}}
	svc := NewDashboardService(&fakeStatsStore{}, roster, newFakeFullAcademyStore(academy, other))

	batches, err := svc.GetAcademyBatches(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, academy.ID, batches[0].AcademyID)
}

func TestGetRecentActivities_Limit(t *testing.T) {
	svc := NewDashboardService(&fakeStatsStore{}, &fakeRosterStore{}, newFakeFullAcademyStore())

	activities, err := svc.GetRecentActivities(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, activities, 1)
}
