package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
)

type fakeLocationStore struct {
	locations map[uuid.UUID]*models.Location
	inUse     map[uuid.UUID]bool
}

func newFakeLocationStore() *fakeLocationStore {
	return &fakeLocationStore{
		locations: map[uuid.UUID]*models.Location{},
		inUse:     map[uuid.UUID]bool{},
	}
}

func (s *fakeLocationStore) CreateLocation(_ context.Context, location *models.Location) (uuid.UUID, error) {
	location.ID = uuid.New()
	location.IsActive = true
	s.locations[location.ID] = location
	return location.ID, nil
}

func (s *fakeLocationStore) GetLocationByID(_ context.Context, id uuid.UUID) (*models.Location, error) {
	if l, ok := s.locations[id]; ok {
		return l, nil
	}
	return nil, apperrors.ErrLocationNotFound
}

func (s *fakeLocationStore) GetAllLocations(_ context.Context, activeOnly bool) ([]*models.Location, error) {
	var out []*models.Location
	for _, l := range s.locations {
		if activeOnly && !l.IsActive {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *fakeLocationStore) UpdateLocation(_ context.Context, location *models.Location) error {
	if _, ok := s.locations[location.ID]; !ok {
		return apperrors.ErrLocationNotFound
	}
	s.locations[location.ID] = location
	return nil
}

func (s *fakeLocationStore) DeleteLocation(_ context.Context, id uuid.UUID) error {
	if _, ok := s.locations[id]; !ok {
		return apperrors.ErrLocationNotFound
	}
	if s.inUse[id] {
		return apperrors.ErrLocationInUse
	}
	delete(s.locations, id)
	return nil
}

type fakeSkillStore struct {
	skills map[uuid.UUID]*models.Skill
	inUse  map[uuid.UUID]bool
}

func newFakeSkillStore() *fakeSkillStore {
	return &fakeSkillStore{
		skills: map[uuid.UUID]*models.Skill{},
		inUse:  map[uuid.UUID]bool{},
	}
}

func (s *fakeSkillStore) CreateSkill(_ context.Context, skill *models.Skill) (uuid.UUID, error) {
	for _, existing := range s.skills {
		if existing.Name == skill.Name {
			return uuid.Nil, apperrors.NewConflictError("skill with this name already exists")
		}
	}
	skill.ID = uuid.New()
	skill.IsActive = true
	s.skills[skill.ID] = skill
	return skill.ID, nil
}

func (s *fakeSkillStore) GetSkillByID(_ context.Context, id uuid.UUID) (*models.Skill, error) {
	if sk, ok := s.skills[id]; ok {
		return sk, nil
	}
	return nil, apperrors.ErrSkillNotFound
}

func (s *fakeSkillStore) GetAllSkills(_ context.Context, activeOnly bool) ([]*models.Skill, error) {
	var out []*models.Skill
	for _, sk := range s.skills {
		if activeOnly && !sk.IsActive {
			continue
		}
		out = append(out, sk)
	}
	return out, nil
}

func (s *fakeSkillStore) UpdateSkill(_ context.Context, skill *models.Skill) error {
	if _, ok := s.skills[skill.ID]; !ok {
		return apperrors.ErrSkillNotFound
	}
	s.skills[skill.ID] = skill
	return nil
}

func (s *fakeSkillStore) DeleteSkill(_ context.Context, id uuid.UUID) error {
	if _, ok := s.skills[id]; !ok {
		return apperrors.ErrSkillNotFound
	}
	if s.inUse[id] {
		return apperrors.ErrSkillInUse
	}
	delete(s.skills, id)
	return nil
}

func TestCreateLocation(t *testing.T) {
	t.Run("applies default country", func(t *testing.T) {
		svc := NewDirectoryService(newFakeLocationStore(), newFakeSkillStore())

		loc, err := svc.CreateLocation(context.Background(), &models.Location{Name: "Salt Lake", City: "Kolkata"})
		require.NoError(t, err)
		assert.Equal(t, models.DefaultCountry, loc.Country)
	})

	t.Run("keeps explicit country", func(t *testing.T) {
		svc := NewDirectoryService(newFakeLocationStore(), newFakeSkillStore())

		loc, err := svc.CreateLocation(context.Background(), &models.Location{Name: "Jumeirah", City: "Dubai", Country: "UAE"})
		require.NoError(t, err)
		assert.Equal(t, "UAE", loc.Country)
	})

	t.Run("requires name and city", func(t *testing.T) {
		svc := NewDirectoryService(newFakeLocationStore(), newFakeSkillStore())

		_, err := svc.CreateLocation(context.Background(), &models.Location{City: "Pune"})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		_, err = svc.CreateLocation(context.Background(), &models.Location{Name: "  "})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestDeleteLocation_InUse(t *testing.T) {
	store := newFakeLocationStore()
	loc := &models.Location{Name: "HSR Layout", City: "Bengaluru"}
	id, err := store.CreateLocation(context.Background(), loc)
	require.NoError(t, err)
	store.inUse[id] = true

	svc := NewDirectoryService(store, newFakeSkillStore())
	assert.ErrorIs(t, svc.DeleteLocation(context.Background(), id), apperrors.ErrLocationInUse)
}

func TestCreateSkill(t *testing.T) {
	t.Run("creates", func(t *testing.T) {
		svc := NewDirectoryService(newFakeLocationStore(), newFakeSkillStore())

		skill, err := svc.CreateSkill(context.Background(), &models.Skill{Name: "Chess"})
		require.NoError(t, err)
		assert.True(t, skill.IsActive)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc := NewDirectoryService(newFakeLocationStore(), newFakeSkillStore())

		_, err := svc.CreateSkill(context.Background(), &models.Skill{Name: "   "})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		svc := NewDirectoryService(newFakeLocationStore(), newFakeSkillStore())

		_, err := svc.CreateSkill(context.Background(), &models.Skill{Name: "Chess"})
		require.NoError(t, err)
		_, err = svc.CreateSkill(context.Background(), &models.Skill{Name: "Chess"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestDeleteSkill_InUse(t *testing.T) {
	store := newFakeSkillStore()
	id, err := store.CreateSkill(context.Background(), &models.Skill{Name: "Robotics"})
	require.NoError(t, err)
	store.inUse[id] = true

	svc := NewDirectoryService(newFakeLocationStore(), store)
	assert.ErrorIs(t, svc.DeleteSkill(context.Background(), id), apperrors.ErrSkillInUse)
}
