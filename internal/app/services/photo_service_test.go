package services

import (
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
)

type fakePhotoStore struct {
	photos       map[uuid.UUID]*models.AcademyPhoto
	countByAcad  map[uuid.UUID]int
	createErr    error
	orderUpdates map[uuid.UUID]int
	statusSet    map[uuid.UUID]models.ApprovalStatus
	deleted      []uuid.UUID
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{
		photos:       map[uuid.UUID]*models.AcademyPhoto{},
		countByAcad:  map[uuid.UUID]int{},
		orderUpdates: map[uuid.UUID]int{},
		statusSet:    map[uuid.UUID]models.ApprovalStatus{},
	}
}

func (s *fakePhotoStore) CreatePhotoWithinQuota(_ context.Context, photo *models.AcademyPhoto) (uuid.UUID, error) {
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	if s.countByAcad[photo.AcademyID] >= models.MaxPhotosPerAcademy {
		return uuid.Nil, apperrors.ErrPhotoQuotaExceeded
	}
	photo.ID = uuid.New()
	photo.Status = models.ApprovalStatusPending
	photo.DisplayOrder = s.countByAcad[photo.AcademyID] + 1
	s.photos[photo.ID] = photo
	s.countByAcad[photo.AcademyID]++
	return photo.ID, nil
}

func (s *fakePhotoStore) GetPhotoByID(_ context.Context, id uuid.UUID) (*models.AcademyPhoto, error) {
	if p, ok := s.photos[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrPhotoNotFound
}

func (s *fakePhotoStore) GetPhotosByAcademy(_ context.Context, academyID uuid.UUID, approvedOnly bool) ([]*models.AcademyPhoto, error) {
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

func (s *fakePhotoStore) CountPhotosByAcademy(_ context.Context, academyID uuid.UUID) (int, error) {
	return s.countByAcad[academyID], nil
}

func (s *fakePhotoStore) GetPendingPhotos(context.Context) ([]*dto.PendingPhoto, error) {
	return nil, nil
}

func (s *fakePhotoStore) UpdateDisplayOrder(_ context.Context, id uuid.UUID, displayOrder int) error {
	s.orderUpdates[id] = displayOrder
	return nil
}

func (s *fakePhotoStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.ApprovalStatus) error {
	if _, ok := s.photos[id]; !ok {
		return apperrors.ErrPhotoNotFound
	}
	s.statusSet[id] = status
	return nil
}

func (s *fakePhotoStore) DeletePhoto(_ context.Context, id uuid.UUID) error {
	if _, ok := s.photos[id]; !ok {
		return apperrors.ErrPhotoNotFound
	}
	delete(s.photos, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeAcademyStore struct {
	academies map[uuid.UUID]*models.Academy
}

func (s *fakeAcademyStore) GetAcademyByID(_ context.Context, id uuid.UUID) (*models.Academy, error) {
	if a, ok := s.academies[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAcademyNotFound
}

type fakeStorage struct {
	saved     []string
	deleted   []string
	saveErr   error
	deleteErr error
}

func (s *fakeStorage) SaveFileWithPath(file *multipart.FileHeader, subPath string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	url := "http://localhost:8080/uploads/" + subPath + "/" + file.Filename
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *fakeStorage) DeleteFile(filePath string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, filePath)
	return nil
}

func (s *fakeStorage) PathFromURL(fileURL string) string {
	return fileURL
}

func photoFile(name, contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func photoFixture() (uuid.UUID, uuid.UUID, *fakeAcademyStore) {
	ownerID := uuid.New()
	academyID := uuid.New()
	academies := &fakeAcademyStore{academies: map[uuid.UUID]*models.Academy{
		academyID: {ID: academyID, OwnerID: ownerID, Status: models.AcademyStatusActive},
	}}
	return ownerID, academyID, academies
}

func TestUploadPhoto(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ownerID, academyID, academies := photoFixture()
		photos := newFakePhotoStore()
		storage := &fakeStorage{}
		svc := NewPhotoService(photos, academies, storage)

		photo, err := svc.UploadPhoto(context.Background(), ownerID, academyID, photoFile("a.jpg", "image/jpeg", 1024))
		require.NoError(t, err)
		assert.Equal(t, models.ApprovalStatusPending, photo.Status)
		assert.Equal(t, 1, photo.DisplayOrder)
		assert.Len(t, storage.saved, 1)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		ownerID, academyID, academies := photoFixture()
		svc := NewPhotoService(newFakePhotoStore(), academies, &fakeStorage{})

		_, err := svc.UploadPhoto(context.Background(), ownerID, academyID, photoFile("big.jpg", "image/jpeg", MaxPhotoSizeBytes+1))
		assert.ErrorIs(t, err, apperrors.ErrPhotoTooLarge)
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		ownerID, academyID, academies := photoFixture()
		svc := NewPhotoService(newFakePhotoStore(), academies, &fakeStorage{})

		_, err := svc.UploadPhoto(context.Background(), ownerID, academyID, photoFile("clip.gif", "image/gif", 1024))
		assert.ErrorIs(t, err, apperrors.ErrPhotoTypeNotAllowed)
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		_, academyID, academies := photoFixture()
		storage := &fakeStorage{}
		svc := NewPhotoService(newFakePhotoStore(), academies, storage)

		_, err := svc.UploadPhoto(context.Background(), uuid.New(), academyID, photoFile("a.jpg", "image/jpeg", 1024))
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.Empty(t, storage.saved)
	})

	t.Run("quota reached", func(t *testing.T) {
		ownerID, academyID, academies := photoFixture()
		photos := newFakePhotoStore()
		photos.countByAcad[academyID] = models.MaxPhotosPerAcademy
		storage := &fakeStorage{}
		svc := NewPhotoService(photos, academies, storage)

		_, err := svc.UploadPhoto(context.Background(), ownerID, academyID, photoFile("a.jpg", "image/jpeg", 1024))
		assert.ErrorIs(t, err, apperrors.ErrPhotoQuotaExceeded)
		assert.Empty(t, storage.saved, "no binary may be written for a full academy")
	})

	t.Run("compensates when metadata insert fails", func(t *testing.T) {
		ownerID, academyID, academies := photoFixture()
		photos := newFakePhotoStore()
		photos.createErr = errors.New("insert failed")
		storage := &fakeStorage{}
		svc := NewPhotoService(photos, academies, storage)

		_, err := svc.UploadPhoto(context.Background(), ownerID, academyID, photoFile("a.jpg", "image/jpeg", 1024))
		require.Error(t, err)
		require.Len(t, storage.saved, 1)
		require.Len(t, storage.deleted, 1)
		assert.Equal(t, storage.saved[0], storage.deleted[0], "stored binary must be removed again")
	})

	t.Run("storage failure", func(t *testing.T) {
		ownerID, academyID, academies := photoFixture()
		storage := &fakeStorage{saveErr: errors.New("disk full")}
		svc := NewPhotoService(newFakePhotoStore(), academies, storage)

		_, err := svc.UploadPhoto(context.Background(), ownerID, academyID, photoFile("a.jpg", "image/jpeg", 1024))
		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	})
}

func TestDeletePhoto(t *testing.T) {
	setup := func() (uuid.UUID, *models.AcademyPhoto, *fakePhotoStore, *fakeAcademyStore, *fakeStorage) {
		ownerID, academyID, academies := photoFixture()
		photos := newFakePhotoStore()
		photo := &models.AcademyPhoto{ID: uuid.New(), AcademyID: academyID, PhotoURL: "http://x/uploads/p.jpg"}
		photos.photos[photo.ID] = photo
		return ownerID, photo, photos, academies, &fakeStorage{}
	}

	t.Run("owner deletes own photo", func(t *testing.T) {
		ownerID, photo, photos, academies, storage := setup()
		svc := NewPhotoService(photos, academies, storage)

		require.NoError(t, svc.DeletePhoto(context.Background(), ownerID, false, photo.ID))
		assert.Contains(t, photos.deleted, photo.ID)
		assert.Contains(t, storage.deleted, photo.PhotoURL)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, photo, photos, academies, storage := setup()
		svc := NewPhotoService(photos, academies, storage)

		err := svc.DeletePhoto(context.Background(), uuid.New(), false, photo.ID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		_, photo, photos, academies, storage := setup()
		svc := NewPhotoService(photos, academies, storage)

		require.NoError(t, svc.DeletePhoto(context.Background(), uuid.New(), true, photo.ID))
		assert.Contains(t, photos.deleted, photo.ID)
	})

	t.Run("binary removal failure is not surfaced", func(t *testing.T) {
		ownerID, photo, photos, academies, storage := setup()
		storage.deleteErr = errors.New("unreachable")
		svc := NewPhotoService(photos, academies, storage)

		assert.NoError(t, svc.DeletePhoto(context.Background(), ownerID, false, photo.ID))
	})

	t.Run("unknown photo", func(t *testing.T) {
		ownerID, _, photos, academies, storage := setup()
		svc := NewPhotoService(photos, academies, storage)

		err := svc.DeletePhoto(context.Background(), ownerID, false, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrPhotoNotFound)
	})
}

func TestReorderPhoto(t *testing.T) {
	ownerID, academyID, academies := photoFixture()
	photos := newFakePhotoStore()
	photo := &models.AcademyPhoto{ID: uuid.New(), AcademyID: academyID, DisplayOrder: 1}
	photos.photos[photo.ID] = photo
	svc := NewPhotoService(photos, academies, &fakeStorage{})

	t.Run("updates the one photo", func(t *testing.T) {
		require.NoError(t, svc.ReorderPhoto(context.Background(), ownerID, photo.ID, 3))
		assert.Equal(t, 3, photos.orderUpdates[photo.ID])
		assert.Len(t, photos.orderUpdates, 1, "sibling photos stay untouched")
	})

	t.Run("rejects order below one", func(t *testing.T) {
		err := svc.ReorderPhoto(context.Background(), ownerID, photo.ID, 0)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		err := svc.ReorderPhoto(context.Background(), uuid.New(), photo.ID, 2)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestUpdatePhotoStatus(t *testing.T) {
	_, academyID, academies := photoFixture()
	photos := newFakePhotoStore()
	photo := &models.AcademyPhoto{ID: uuid.New(), AcademyID: academyID, Status: models.ApprovalStatusPending}
	photos.photos[photo.ID] = photo
	svc := NewPhotoService(photos, academies, &fakeStorage{})

	t.Run("approve", func(t *testing.T) {
		require.NoError(t, svc.UpdatePhotoStatus(context.Background(), photo.ID, models.ApprovalStatusApproved))
		assert.Equal(t, models.ApprovalStatusApproved, photos.statusSet[photo.ID])
	})

	t.Run("approve then reject, last write wins", func(t *testing.T) {
		require.NoError(t, svc.UpdatePhotoStatus(context.Background(), photo.ID, models.ApprovalStatusApproved))
		require.NoError(t, svc.UpdatePhotoStatus(context.Background(), photo.ID, models.ApprovalStatusRejected))
		assert.Equal(t, models.ApprovalStatusRejected, photos.statusSet[photo.ID])
	})

	t.Run("pending is not a resolution", func(t *testing.T) {
		err := svc.UpdatePhotoStatus(context.Background(), photo.ID, models.ApprovalStatusPending)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}
