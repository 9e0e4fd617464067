package services

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
	"github.com/unpuzzleclub/backend/internal/pkg/logger"
)

// MaxPhotoSizeBytes is the upload size ceiling for a single photo.
const MaxPhotoSizeBytes = 5 * 1024 * 1024

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// PhotoService defines the interface for academy photo lifecycle operations
type PhotoService interface {
	UploadPhoto(ctx context.Context, ownerID, academyID uuid.UUID, file *multipart.FileHeader) (*models.AcademyPhoto, error)
	GetAcademyPhotos(ctx context.Context, academyID uuid.UUID, approvedOnly bool) ([]*models.AcademyPhoto, error)
	DeletePhoto(ctx context.Context, actorID uuid.UUID, isAdmin bool, photoID uuid.UUID) error
	ReorderPhoto(ctx context.Context, ownerID uuid.UUID, photoID uuid.UUID, displayOrder int) error
	GetPendingPhotos(ctx context.Context) ([]*dto.PendingPhoto, error)
	UpdatePhotoStatus(ctx context.Context, photoID uuid.UUID, status models.ApprovalStatus) error
}

// photoStore is the subset of PhotoRepository the photo service needs
type photoStore interface {
	CreatePhotoWithinQuota(ctx context.Context, photo *models.AcademyPhoto) (uuid.UUID, error)
	GetPhotoByID(ctx context.Context, id uuid.UUID) (*models.AcademyPhoto, error)
	GetPhotosByAcademy(ctx context.Context, academyID uuid.UUID, approvedOnly bool) ([]*models.AcademyPhoto, error)
	CountPhotosByAcademy(ctx context.Context, academyID uuid.UUID) (int, error)
	GetPendingPhotos(ctx context.Context) ([]*dto.PendingPhoto, error)
	UpdateDisplayOrder(ctx context.Context, id uuid.UUID, displayOrder int) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApprovalStatus) error
	DeletePhoto(ctx context.Context, id uuid.UUID) error
}

// photoAcademyStore resolves academy ownership for photo operations
type photoAcademyStore interface {
	GetAcademyByID(ctx context.Context, id uuid.UUID) (*models.Academy, error)
}

// photoStorage is the binary storage used for photo files
type photoStorage interface {
	SaveFileWithPath(file *multipart.FileHeader, subPath string) (string, error)
	DeleteFile(filePath string) error
	PathFromURL(fileURL string) string
}

// photoServiceImpl implements the PhotoService interface
type photoServiceImpl struct {
	photoRepo   photoStore
	academyRepo photoAcademyStore
	storage     photoStorage
}

// NewPhotoService creates a new photo service instance
func NewPhotoService(photoRepo photoStore, academyRepo photoAcademyStore, storage photoStorage) PhotoService {
	return &photoServiceImpl{
		photoRepo:   photoRepo,
		academyRepo: academyRepo,
		storage:     storage,
	}
}

func validatePhotoFile(file *multipart.FileHeader) error {
	if file == nil {
		return apperrors.ErrBadRequest
	}
	if file.Size > MaxPhotoSizeBytes {
		return apperrors.ErrPhotoTooLarge
	}
	if !allowedPhotoTypes[file.Header.Get("Content-Type")] {
		return apperrors.ErrPhotoTypeNotAllowed
	}
	return nil
}

// UploadPhoto validates and stores a photo for the owner's academy. The
// metadata insert enforces the quota transactionally; when it fails the
// stored binary is removed again so no orphan files accumulate.
func (s *photoServiceImpl) UploadPhoto(ctx context.Context, ownerID, academyID uuid.UUID, file *multipart.FileHeader) (*models.AcademyPhoto, error) {
	if err := validatePhotoFile(file); err != nil {
		return nil, err
	}

	academy, err := s.academyRepo.GetAcademyByID(ctx, academyID)
	if err != nil {
		return nil, err
	}
	if academy.OwnerID != ownerID {
		return nil, apperrors.ErrPermissionDenied
	}

	// Cheap pre-check so a full academy never writes a binary at all. The
	// transactional insert below is the real guarantee.
	count, err := s.photoRepo.CountPhotosByAcademy(ctx, academyID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxPhotosPerAcademy {
		return nil, apperrors.ErrPhotoQuotaExceeded
	}

	photoURL, err := s.storage.SaveFileWithPath(file, academyID.String())
	if err != nil {
		logger.Error().Err(err).Str("academyID", academyID.String()).Msg("Failed to store photo binary")
		return nil, apperrors.ErrStorageUnavailable
	}

	photo := &models.AcademyPhoto{
		AcademyID: academyID,
		PhotoURL:  photoURL,
	}

	if _, err := s.photoRepo.CreatePhotoWithinQuota(ctx, photo); err != nil {
		// Compensate: the metadata row never landed, remove the binary
		if delErr := s.storage.DeleteFile(s.storage.PathFromURL(photoURL)); delErr != nil {
			logger.Error().Err(delErr).Str("photoURL", photoURL).Msg("Failed to clean up photo binary after metadata insert failure")
		}
		return nil, err
	}

	logger.Info().Str("photoID", photo.ID.String()).Str("academyID", academyID.String()).Msg("Photo uploaded")
	return photo, nil
}

// GetAcademyPhotos lists an academy's photos by display order
func (s *photoServiceImpl) GetAcademyPhotos(ctx context.Context, academyID uuid.UUID, approvedOnly bool) ([]*models.AcademyPhoto, error) {
	return s.photoRepo.GetPhotosByAcademy(ctx, academyID, approvedOnly)
}

// DeletePhoto removes a photo row and then its binary. Owners may delete
// their own photos; admins may delete any. A storage failure after the row
// is gone is logged, not surfaced: the photo is already unreachable.
func (s *photoServiceImpl) DeletePhoto(ctx context.Context, actorID uuid.UUID, isAdmin bool, photoID uuid.UUID) error {
	photo, err := s.photoRepo.GetPhotoByID(ctx, photoID)
	if err != nil {
		return err
	}

	if !isAdmin {
		academy, err := s.academyRepo.GetAcademyByID(ctx, photo.AcademyID)
		if err != nil {
			return err
		}
		if academy.OwnerID != actorID {
			return apperrors.ErrPermissionDenied
		}
	}

	if err := s.photoRepo.DeletePhoto(ctx, photoID); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(s.storage.PathFromURL(photo.PhotoURL)); err != nil {
		logger.Warn().Err(err).Str("photoID", photoID.String()).Str("photoURL", photo.PhotoURL).Msg("Photo row deleted but binary removal failed")
	}

	return nil
}

// ReorderPhoto overwrites the display order of exactly one photo. Sibling
// photos keep their order values even when this creates duplicates.
func (s *photoServiceImpl) ReorderPhoto(ctx context.Context, ownerID uuid.UUID, photoID uuid.UUID, displayOrder int) error {
	if displayOrder < 1 {
		return apperrors.ErrBadRequest
	}

	photo, err := s.photoRepo.GetPhotoByID(ctx, photoID)
	if err != nil {
		return err
	}

	academy, err := s.academyRepo.GetAcademyByID(ctx, photo.AcademyID)
	if err != nil {
		return err
	}
	if academy.OwnerID != ownerID {
		return apperrors.ErrPermissionDenied
	}

	return s.photoRepo.UpdateDisplayOrder(ctx, photoID, displayOrder)
}

// GetPendingPhotos lists the admin review queue
func (s *photoServiceImpl) GetPendingPhotos(ctx context.Context) ([]*dto.PendingPhoto, error) {
	return s.photoRepo.GetPendingPhotos(ctx)
}

// UpdatePhotoStatus approves or rejects a photo. Re-resolving an already
// resolved photo overwrites it, last write wins; only the transition back to
// pending is not exposed.
func (s *photoServiceImpl) UpdatePhotoStatus(ctx context.Context, photoID uuid.UUID, status models.ApprovalStatus) error {
	if status != models.ApprovalStatusApproved && status != models.ApprovalStatusRejected {
		return apperrors.ErrBadRequest
	}
	return s.photoRepo.UpdateStatus(ctx, photoID, status)
}
