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

type fakeFullAcademyStore struct {
	academies     map[uuid.UUID]*models.Academy
	byOwner       map[uuid.UUID]*models.Academy
	statusUpdates map[uuid.UUID]models.AcademyStatus
	updates       []uuid.UUID
}

func newFakeFullAcademyStore(academies ...*models.Academy) *fakeFullAcademyStore {
	s := &fakeFullAcademyStore{
		academies:     map[uuid.UUID]*models.Academy{},
		byOwner:       map[uuid.UUID]*models.Academy{},
		statusUpdates: map[uuid.UUID]models.AcademyStatus{},
	}
	for _, a := range academies {
		s.academies[a.ID] = a
		s.byOwner[a.OwnerID] = a
	}
	return s
}

func (s *fakeFullAcademyStore) CreateAcademy(_ context.Context, academy *models.Academy) (uuid.UUID, error) {
	if _, ok := s.byOwner[academy.OwnerID]; ok {
		return uuid.Nil, apperrors.NewConflictError("this user already owns an academy")
	}
	academy.ID = uuid.New()
	academy.Status = models.AcademyStatusPending
	s.academies[academy.ID] = academy
	s.byOwner[academy.OwnerID] = academy
	return academy.ID, nil
}

func (s *fakeFullAcademyStore) GetAcademyByID(_ context.Context, id uuid.UUID) (*models.Academy, error) {
	if a, ok := s.academies[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAcademyNotFound
}

func (s *fakeFullAcademyStore) GetAcademyByOwnerID(_ context.Context, ownerID uuid.UUID) (*models.Academy, error) {
	if a, ok := s.byOwner[ownerID]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAcademyNotFound
}

func (s *fakeFullAcademyStore) GetActiveAcademies(_ context.Context, locationID *uuid.UUID) ([]*models.Academy, error) {
	var out []*models.Academy
	for _, a := range s.academies {
		if a.Status != models.AcademyStatusActive {
			continue
		}
		if locationID != nil && (a.LocationID == nil || *a.LocationID != *locationID) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeFullAcademyStore) GetAllAcademies(_ context.Context, status *models.AcademyStatus, offset uint64, limit int) ([]*models.Academy, int64, error) {
	var matching []*models.Academy
	for _, a := range s.academies {
		if status != nil && a.Status != *status {
			continue
		}
		matching = append(matching, a)
	}
	total := int64(len(matching))
	if offset >= uint64(len(matching)) {
		return nil, total, nil
	}
	matching = matching[offset:]
	if len(matching) > limit {
		matching = matching[:limit]
	}
	return matching, total, nil
}

func (s *fakeFullAcademyStore) UpdateAcademyStatus(_ context.Context, id uuid.UUID, status models.AcademyStatus) error {
	a, ok := s.academies[id]
	if !ok {
		return apperrors.ErrAcademyNotFound
	}
	a.Status = status
	s.statusUpdates[id] = status
	return nil
}

func (s *fakeFullAcademyStore) UpdateAcademy(_ context.Context, id uuid.UUID, name, phoneNumber string, locationID *uuid.UUID) error {
	a, ok := s.academies[id]
	if !ok {
		return apperrors.ErrAcademyNotFound
	}
	a.Name = name
	a.PhoneNumber = phoneNumber
	a.LocationID = locationID
	s.updates = append(s.updates, id)
	return nil
}

func (s *fakeFullAcademyStore) RenameAcademy(_ context.Context, id uuid.UUID, name string) error {
	a, ok := s.academies[id]
	if !ok {
		return apperrors.ErrAcademyNotFound
	}
	a.Name = name
	return nil
}

func (s *fakeFullAcademyStore) DeleteAcademy(_ context.Context, id uuid.UUID) error {
	a, ok := s.academies[id]
	if !ok {
		return apperrors.ErrAcademyNotFound
	}
	delete(s.academies, id)
	delete(s.byOwner, a.OwnerID)
	return nil
}

type fakeAcademySkillStore struct {
	requests  map[uuid.UUID]*models.AcademySkill
	requested map[[2]uuid.UUID]bool
}

func newFakeAcademySkillStore() *fakeAcademySkillStore {
	return &fakeAcademySkillStore{
		requests:  map[uuid.UUID]*models.AcademySkill{},
		requested: map[[2]uuid.UUID]bool{},
	}
}

func (s *fakeAcademySkillStore) CreateRequest(_ context.Context, academyID, skillID uuid.UUID) (uuid.UUID, error) {
	key := [2]uuid.UUID{academyID, skillID}
	if s.requested[key] {
		return uuid.Nil, apperrors.ErrSkillAlreadyRequested
	}
	s.requested[key] = true
	req := &models.AcademySkill{
		ID:        uuid.New(),
		AcademyID: academyID,
		SkillID:   skillID,
		Status:    models.ApprovalStatusPending,
	}
	s.requests[req.ID] = req
	return req.ID, nil
}

func (s *fakeAcademySkillStore) GetByID(_ context.Context, id uuid.UUID) (*models.AcademySkill, error) {
	if r, ok := s.requests[id]; ok {
		return r, nil
	}
	return nil, apperrors.ErrAcademySkillNotFound
}

func (s *fakeAcademySkillStore) GetByAcademy(_ context.Context, academyID uuid.UUID, approvedOnly bool) ([]*models.AcademySkill, error) {
	var out []*models.AcademySkill
	for _, r := range s.requests {
		if r.AcademyID != academyID {
			continue
		}
		if approvedOnly && r.Status != models.ApprovalStatusApproved {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeAcademyPhotoStore struct {
	photos []*models.AcademyPhoto
}

func (s *fakeAcademyPhotoStore) GetPhotosByAcademy(_ context.Context, academyID uuid.UUID, approvedOnly bool) ([]*models.AcademyPhoto, error) {
	var out []*models.AcademyPhoto
	for _, p := range s.photos {
		if p.AcademyID != academyID {
			continue
		}
		if approvedOnly && p.Status != models.ApprovalStatusApproved {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func TestCreateAcademy(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		store := newFakeFullAcademyStore()
		svc := NewAcademyService(store, newFakeAcademySkillStore(), &fakeAcademyPhotoStore{}, &fakeStorage{})

		academy, err := svc.CreateAcademy(context.Background(), &models.Academy{
			Name:        "Rook & Pawn Chess",
			PhoneNumber: "+919800000000",
			OwnerID:     uuid.New(),
		})
		require.NoError(t, err)
		assert.Equal(t, models.AcademyStatusPending, academy.Status)
	})

	t.Run("one academy per owner", func(t *testing.T) {
		ownerID := uuid.New()
		store := newFakeFullAcademyStore(&models.Academy{ID: uuid.New(), OwnerID: ownerID})
		svc := NewAcademyService(store, newFakeAcademySkillStore(), &fakeAcademyPhotoStore{}, &fakeStorage{})

		_, err := svc.CreateAcademy(context.Background(), &models.Academy{
			Name:        "Second Academy",
			PhoneNumber: "+919800000001",
			OwnerID:     ownerID,
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("requires name and phone", func(t *testing.T) {
		svc := NewAcademyService(newFakeFullAcademyStore(), newFakeAcademySkillStore(), &fakeAcademyPhotoStore{}, &fakeStorage{})

		_, err := svc.CreateAcademy(context.Background(), &models.Academy{PhoneNumber: "+91", OwnerID: uuid.New()})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		_, err = svc.CreateAcademy(context.Background(), &models.Academy{Name: "No Phone", OwnerID: uuid.New()})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestGetAcademyByID_PublicView(t *testing.T) {
	academyID := uuid.New()
	store := newFakeFullAcademyStore(&models.Academy{ID: academyID, OwnerID: uuid.New(), Status: models.AcademyStatusActive})

	skills := newFakeAcademySkillStore()
	approvedSkill := &models.AcademySkill{ID: uuid.New(), AcademyID: academyID, Status: models.ApprovalStatusApproved}
	pendingSkill := &models.AcademySkill{ID: uuid.New(), AcademyID: academyID, Status: models.ApprovalStatusPending}
	skills.requests[approvedSkill.ID] = approvedSkill
	skills.requests[pendingSkill.ID] = pendingSkill

	photos := &fakeAcademyPhotoStore{photos: []*models.AcademyPhoto{
		{ID: uuid.New(), AcademyID: academyID, Status: models.ApprovalStatusApproved},
		{ID: uuid.New(), AcademyID: academyID, Status: models.ApprovalStatusPending},
	}}

	svc := NewAcademyService(store, skills, photos, &fakeStorage{})

	info, err := svc.GetAcademyByID(context.Background(), academyID)
	require.NoError(t, err)
	require.Len(t, info.Skills, 1, "only approved skills are public")
	assert.Equal(t, approvedSkill.ID, info.Skills[0].ID)
	require.Len(t, info.Photos, 1, "only approved photos are public")
}

func TestUpdateAcademy_OwnerOnly(t *testing.T) {
	ownerID := uuid.New()
	academy := &models.Academy{ID: uuid.New(), OwnerID: ownerID, Name: "Old Name", PhoneNumber: "+91"}
	store := newFakeFullAcademyStore(academy)
	svc := NewAcademyService(store, newFakeAcademySkillStore(), &fakeAcademyPhotoStore{}, &fakeStorage{})

	err := svc.UpdateAcademy(context.Background(), uuid.New(), academy.ID, "New Name", "+92", nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.UpdateAcademy(context.Background(), ownerID, academy.ID, "New Name", "+92", nil))
	assert.Equal(t, "New Name", academy.Name)
}

func TestUpdateAcademyStatus(t *testing.T) {
	academy := &models.Academy{ID: uuid.New(), OwnerID: uuid.New(), Status: models.AcademyStatusPending}
	store := newFakeFullAcademyStore(academy)
	svc := NewAcademyService(store, newFakeAcademySkillStore(), &fakeAcademyPhotoStore{}, &fakeStorage{})

	t.Run("any direction is allowed", func(t *testing.T) {
		require.NoError(t, svc.UpdateAcademyStatus(context.Background(), academy.ID, models.AcademyStatusActive))
		require.NoError(t, svc.UpdateAcademyStatus(context.Background(), academy.ID, models.AcademyStatusSuspended))
		require.NoError(t, svc.UpdateAcademyStatus(context.Background(), academy.ID, models.AcademyStatusPending))
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		err := svc.UpdateAcademyStatus(context.Background(), academy.ID, models.AcademyStatus("archived"))
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestListAllAcademies(t *testing.T) {
	pending := &models.Academy{ID: uuid.New(), OwnerID: uuid.New(), Status: models.AcademyStatusPending}
	active := &models.Academy{ID: uuid.New(), OwnerID: uuid.New(), Status: models.AcademyStatusActive}
	suspended := &models.Academy{ID: uuid.New(), OwnerID: uuid.New(), Status: models.AcademyStatusSuspended}
	store := newFakeFullAcademyStore(pending, active, suspended)
	svc := NewAcademyService(store, newFakeAcademySkillStore(), &fakeAcademyPhotoStore{}, &fakeStorage{})

	t.Run("every status is visible", func(t *testing.T) {
		resp, err := svc.ListAllAcademies(context.Background(), nil, 1, 10)
		require.NoError(t, err)
		assert.Len(t, resp.Academies, 3)
		assert.Equal(t, int64(3), resp.PaginationInfo.TotalItems)
	})

	t.Run("status filter", func(t *testing.T) {
		status := models.AcademyStatusPending
		resp, err := svc.ListAllAcademies(context.Background(), &status, 1, 10)
		require.NoError(t, err)
		require.Len(t, resp.Academies, 1)
		assert.Equal(t, pending.ID, resp.Academies[0].ID)
	})

	t.Run("pagination caps the page", func(t *testing.T) {
		resp, err := svc.ListAllAcademies(context.Background(), nil, 1, 2)
		require.NoError(t, err)
		assert.Len(t, resp.Academies, 2)
		assert.Equal(t, 2, resp.PaginationInfo.TotalPages)
	})

	t.Run("unknown status filter rejected", func(t *testing.T) {
		status := models.AcademyStatus("archived")
		_, err := svc.ListAllAcademies(context.Background(), &status, 1, 10)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestRenameAcademy(t *testing.T) {
	academy := &models.Academy{ID: uuid.New(), OwnerID: uuid.New(), Name: "Old Name", Status: models.AcademyStatusSuspended}
	store := newFakeFullAcademyStore(academy)
	svc := NewAcademyService(store, newFakeAcademySkillStore(), &fakeAcademyPhotoStore{}, &fakeStorage{})

	t.Run("rename works regardless of status", func(t *testing.T) {
		require.NoError(t, svc.RenameAcademy(context.Background(), academy.ID, "New Name"))
		assert.Equal(t, "New Name", academy.Name)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := svc.RenameAcademy(context.Background(), academy.ID, "   ")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown academy", func(t *testing.T) {
		err := svc.RenameAcademy(context.Background(), uuid.New(), "Name")
		assert.ErrorIs(t, err, apperrors.ErrAcademyNotFound)
	})
}

func TestDeleteAcademy(t *testing.T) {
	t.Run("removes row and stored binaries", func(t *testing.T) {
		academy := &models.Academy{ID: uuid.New(), OwnerID: uuid.New()}
		store := newFakeFullAcademyStore(academy)
		photos := &fakeAcademyPhotoStore{photos: []*models.AcademyPhoto{
			{ID: uuid.New(), AcademyID: academy.ID, PhotoURL: "http://cdn/academy-photos/a/1.jpg", Status: models.ApprovalStatusApproved},
			{ID: uuid.New(), AcademyID: academy.ID, PhotoURL: "http://cdn/academy-photos/a/2.jpg", Status: models.ApprovalStatusPending},
		}}
		storage := &fakeStorage{}
		svc := NewAcademyService(store, newFakeAcademySkillStore(), photos, storage)

		require.NoError(t, svc.DeleteAcademy(context.Background(), academy.ID))
		assert.NotContains(t, store.academies, academy.ID)
		assert.Len(t, storage.deleted, 2, "binaries of every status are removed")
	})

	t.Run("binary failure does not abort the delete", func(t *testing.T) {
		academy := &models.Academy{ID: uuid.New(), OwnerID: uuid.New()}
		store := newFakeFullAcademyStore(academy)
		photos := &fakeAcademyPhotoStore{photos: []*models.AcademyPhoto{
			{ID: uuid.New(), AcademyID: academy.ID, PhotoURL: "http://cdn/academy-photos/a/1.jpg"},
		}}
		storage := &fakeStorage{deleteErr: assert.AnError}
		svc := NewAcademyService(store, newFakeAcademySkillStore(), photos, storage)

		require.NoError(t, svc.DeleteAcademy(context.Background(), academy.ID))
		assert.NotContains(t, store.academies, academy.ID)
	})

	t.Run("unknown academy", func(t *testing.T) {
		svc := NewAcademyService(newFakeFullAcademyStore(), newFakeAcademySkillStore(), &fakeAcademyPhotoStore{}, &fakeStorage{})
		err := svc.DeleteAcademy(context.Background(), uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrAcademyNotFound)
	})
}

func TestRequestSkill(t *testing.T) {
	ownerID := uuid.New()
	academy := &models.Academy{ID: uuid.New(), OwnerID: ownerID, Status: models.AcademyStatusActive}
	store := newFakeFullAcademyStore(academy)
	skillID := uuid.New()

	t.Run("owner requests, starts pending", func(t *testing.T) {
		skills := newFakeAcademySkillStore()
		svc := NewAcademyService(store, skills, &fakeAcademyPhotoStore{}, &fakeStorage{})

		req, err := svc.RequestSkill(context.Background(), ownerID, academy.ID, skillID)
		require.NoError(t, err)
		assert.Equal(t, models.ApprovalStatusPending, req.Status)
	})

	t.Run("duplicate request rejected", func(t *testing.T) {
		skills := newFakeAcademySkillStore()
		svc := NewAcademyService(store, skills, &fakeAcademyPhotoStore{}, &fakeStorage{})

		_, err := svc.RequestSkill(context.Background(), ownerID, academy.ID, skillID)
		require.NoError(t, err)
		_, err = svc.RequestSkill(context.Background(), ownerID, academy.ID, skillID)
		assert.ErrorIs(t, err, apperrors.ErrSkillAlreadyRequested)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		svc := NewAcademyService(store, newFakeAcademySkillStore(), &fakeAcademyPhotoStore{}, &fakeStorage{})

		_, err := svc.RequestSkill(context.Background(), uuid.New(), academy.ID, skillID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestListActiveAcademies(t *testing.T) {
	locationID := uuid.New()
	active := &models.Academy{ID: uuid.New(), OwnerID: uuid.New(), Status: models.AcademyStatusActive, LocationID: &locationID}
	pending := &models.Academy{ID: uuid.New(), OwnerID: uuid.New(), Status: models.AcademyStatusPending}
	store := newFakeFullAcademyStore(active, pending)
	svc := NewAcademyService(store, newFakeAcademySkillStore(), &fakeAcademyPhotoStore{}, &fakeStorage{})

	all, err := svc.ListActiveAcademies(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 1, "pending academies are invisible in the directory")
	assert.Equal(t, active.ID, all[0].ID)

	filtered, err := svc.ListActiveAcademies(context.Background(), &locationID)
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	other := uuid.New()
	none, err := svc.ListActiveAcademies(context.Background(), &other)
	require.NoError(t, err)
	assert.Empty(t, none)
}
