package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
	"github.com/unpuzzleclub/backend/internal/pkg/helpers"
	"github.com/unpuzzleclub/backend/internal/pkg/logger"
)

// AcademyService defines the interface for academy operations
type AcademyService interface {
	CreateAcademy(ctx context.Context, academy *models.Academy) (*models.Academy, error)
	GetAcademyByID(ctx context.Context, id uuid.UUID) (*dto.AcademyInfoResponse, error)
	GetAcademyByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Academy, error)
	ListActiveAcademies(ctx context.Context, locationID *uuid.UUID) ([]*models.Academy, error)
	ListAllAcademies(ctx context.Context, status *models.AcademyStatus, page, size int) (*dto.AcademyListResponse, error)
	UpdateAcademyStatus(ctx context.Context, id uuid.UUID, status models.AcademyStatus) error
	UpdateAcademy(ctx context.Context, ownerID, academyID uuid.UUID, name, phoneNumber string, locationID *uuid.UUID) error
	RenameAcademy(ctx context.Context, id uuid.UUID, name string) error
	DeleteAcademy(ctx context.Context, id uuid.UUID) error
	RequestSkill(ctx context.Context, ownerID, academyID, skillID uuid.UUID) (*models.AcademySkill, error)
	GetAcademySkills(ctx context.Context, academyID uuid.UUID, approvedOnly bool) ([]*models.AcademySkill, error)
}

// academyStore is the subset of AcademyRepository the academy service needs
type academyStore interface {
	CreateAcademy(ctx context.Context, academy *models.Academy) (uuid.UUID, error)
	GetAcademyByID(ctx context.Context, id uuid.UUID) (*models.Academy, error)
	GetAcademyByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.Academy, error)
	GetActiveAcademies(ctx context.Context, locationID *uuid.UUID) ([]*models.Academy, error)
	GetAllAcademies(ctx context.Context, status *models.AcademyStatus, offset uint64, limit int) ([]*models.Academy, int64, error)
	UpdateAcademyStatus(ctx context.Context, id uuid.UUID, status models.AcademyStatus) error
	UpdateAcademy(ctx context.Context, id uuid.UUID, name, phoneNumber string, locationID *uuid.UUID) error
	RenameAcademy(ctx context.Context, id uuid.UUID, name string) error
	DeleteAcademy(ctx context.Context, id uuid.UUID) error
}

// academySkillStore is the subset of AcademySkillRepository the academy service needs
type academySkillStore interface {
	CreateRequest(ctx context.Context, academyID, skillID uuid.UUID) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AcademySkill, error)
	GetByAcademy(ctx context.Context, academyID uuid.UUID, approvedOnly bool) ([]*models.AcademySkill, error)
}

// academyPhotoStore is the subset of PhotoRepository the academy service needs
type academyPhotoStore interface {
	GetPhotosByAcademy(ctx context.Context, academyID uuid.UUID, approvedOnly bool) ([]*models.AcademyPhoto, error)
}

// academyPhotoStorage removes stored photo binaries when an academy is deleted
type academyPhotoStorage interface {
	DeleteFile(filePath string) error
	PathFromURL(fileURL string) string
}

// academyServiceImpl implements the AcademyService interface
type academyServiceImpl struct {
	academyRepo academyStore
	skillRepo   academySkillStore
	photoRepo   academyPhotoStore
	storage     academyPhotoStorage
}

// NewAcademyService creates a new academy service instance
func NewAcademyService(academyRepo academyStore, skillRepo academySkillStore, photoRepo academyPhotoStore, storage academyPhotoStorage) AcademyService {
	return &academyServiceImpl{
		academyRepo: academyRepo,
		skillRepo:   skillRepo,
		photoRepo:   photoRepo,
		storage:     storage,
	}
}

// CreateAcademy registers a new academy. The academy starts pending and is
// invisible in the public directory until an admin activates it.
func (s *academyServiceImpl) CreateAcademy(ctx context.Context, academy *models.Academy) (*models.Academy, error) {
	if strings.TrimSpace(academy.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(academy.PhoneNumber) == "" {
		return nil, fmt.Errorf("%w: phone number cannot be empty", apperrors.ErrValidationFailed)
	}

	id, err := s.academyRepo.CreateAcademy(ctx, academy)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("academyID", id.String()).Str("ownerID", academy.OwnerID.String()).Msg("Academy registered")
	return s.academyRepo.GetAcademyByID(ctx, id)
}

// GetAcademyByID returns the public view of an academy: the academy itself
// plus its approved skills and approved photos.
func (s *academyServiceImpl) GetAcademyByID(ctx context.Context, id uuid.UUID) (*dto.AcademyInfoResponse, error) {
	academy, err := s.academyRepo.GetAcademyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	skills, err := s.skillRepo.GetByAcademy(ctx, id, true)
	if err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.GetPhotosByAcademy(ctx, id, true)
	if err != nil {
		return nil, err
	}

	return &dto.AcademyInfoResponse{
		Academy: academy,
		Skills:  skills,
		Photos:  photos,
	}, nil
}

// GetAcademyByOwner retrieves the academy owned by a user
func (s *academyServiceImpl) GetAcademyByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Academy, error) {
	return s.academyRepo.GetAcademyByOwnerID(ctx, ownerID)
}

// ListActiveAcademies lists active academies ordered by name, optionally
// filtered by location. This is the public directory.
func (s *academyServiceImpl) ListActiveAcademies(ctx context.Context, locationID *uuid.UUID) ([]*models.Academy, error) {
	return s.academyRepo.GetActiveAcademies(ctx, locationID)
}

// ListAllAcademies lists academies of every status with pagination and an
// optional status filter. Admin-only.
func (s *academyServiceImpl) ListAllAcademies(ctx context.Context, status *models.AcademyStatus, page, size int) (*dto.AcademyListResponse, error) {
	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown academy status %q", apperrors.ErrValidationFailed, *status)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	academies, total, err := s.academyRepo.GetAllAcademies(ctx, status, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.AcademyListResponse{
		Academies:      academies,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// UpdateAcademyStatus applies an admin status override
func (s *academyServiceImpl) UpdateAcademyStatus(ctx context.Context, id uuid.UUID, status models.AcademyStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown academy status %q", apperrors.ErrValidationFailed, status)
	}
	return s.academyRepo.UpdateAcademyStatus(ctx, id, status)
}

// UpdateAcademy updates an academy's profile. Only the owner may update it.
func (s *academyServiceImpl) UpdateAcademy(ctx context.Context, ownerID, academyID uuid.UUID, name, phoneNumber string, locationID *uuid.UUID) error {
	academy, err := s.academyRepo.GetAcademyByID(ctx, academyID)
	if err != nil {
		return err
	}
	if academy.OwnerID != ownerID {
		return apperrors.ErrPermissionDenied
	}

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(phoneNumber) == "" {
		phoneNumber = academy.PhoneNumber
	}

	return s.academyRepo.UpdateAcademy(ctx, academyID, name, phoneNumber, locationID)
}

// RenameAcademy is the admin rename override, independent of status
func (s *academyServiceImpl) RenameAcademy(ctx context.Context, id uuid.UUID, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	return s.academyRepo.RenameAcademy(ctx, id, name)
}

// DeleteAcademy hard-deletes an academy. The database cascade removes the
// dependent rows; the stored photo binaries are removed best-effort first so
// their URLs do not outlive the metadata.
func (s *academyServiceImpl) DeleteAcademy(ctx context.Context, id uuid.UUID) error {
	photos, err := s.photoRepo.GetPhotosByAcademy(ctx, id, false)
	if err != nil {
		return err
	}

	for _, photo := range photos {
		if err := s.storage.DeleteFile(s.storage.PathFromURL(photo.PhotoURL)); err != nil {
			logger.Warn().Err(err).Str("photoID", photo.ID.String()).Msg("Failed to delete photo binary during academy removal")
		}
	}

	if err := s.academyRepo.DeleteAcademy(ctx, id); err != nil {
		return err
	}

	logger.Info().Str("academyID", id.String()).Msg("Academy deleted")
	return nil
}

// RequestSkill files a pending skill request for the owner's academy
func (s *academyServiceImpl) RequestSkill(ctx context.Context, ownerID, academyID, skillID uuid.UUID) (*models.AcademySkill, error) {
	academy, err := s.academyRepo.GetAcademyByID(ctx, academyID)
	if err != nil {
		return nil, err
	}
	if academy.OwnerID != ownerID {
		return nil, apperrors.ErrPermissionDenied
	}

	id, err := s.skillRepo.CreateRequest(ctx, academyID, skillID)
	if err != nil {
		return nil, err
	}

	return s.skillRepo.GetByID(ctx, id)
}

// GetAcademySkills lists the skill rows of one academy
func (s *academyServiceImpl) GetAcademySkills(ctx context.Context, academyID uuid.UUID, approvedOnly bool) ([]*models.AcademySkill, error) {
	return s.skillRepo.GetByAcademy(ctx, academyID, approvedOnly)
}
