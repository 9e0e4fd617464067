package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
)

// DirectoryService defines the interface for location and skill catalog operations
type DirectoryService interface {
	CreateLocation(ctx context.Context, location *models.Location) (*models.Location, error)
	GetLocationByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	GetAllLocations(ctx context.Context, activeOnly bool) ([]*models.Location, error)
	UpdateLocation(ctx context.Context, location *models.Location) (*models.Location, error)
	DeleteLocation(ctx context.Context, id uuid.UUID) error

	CreateSkill(ctx context.Context, skill *models.Skill) (*models.Skill, error)
	GetSkillByID(ctx context.Context, id uuid.UUID) (*models.Skill, error)
	GetAllSkills(ctx context.Context, activeOnly bool) ([]*models.Skill, error)
	UpdateSkill(ctx context.Context, skill *models.Skill) (*models.Skill, error)
	DeleteSkill(ctx context.Context, id uuid.UUID) error
}

// locationStore is the subset of LocationRepository the directory service needs
type locationStore interface {
	CreateLocation(ctx context.Context, location *models.Location) (uuid.UUID, error)
	GetLocationByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	GetAllLocations(ctx context.Context, activeOnly bool) ([]*models.Location, error)
	UpdateLocation(ctx context.Context, location *models.Location) error
	DeleteLocation(ctx context.Context, id uuid.UUID) error
}

// skillStore is the subset of SkillRepository the directory service needs
type skillStore interface {
	CreateSkill(ctx context.Context, skill *models.Skill) (uuid.UUID, error)
	GetSkillByID(ctx context.Context, id uuid.UUID) (*models.Skill, error)
	GetAllSkills(ctx context.Context, activeOnly bool) ([]*models.Skill, error)
	UpdateSkill(ctx context.Context, skill *models.Skill) error
	DeleteSkill(ctx context.Context, id uuid.UUID) error
}

// directoryServiceImpl implements the DirectoryService interface
type directoryServiceImpl struct {
	locationRepo locationStore
	skillRepo    skillStore
}

// NewDirectoryService creates a new directory service instance
func NewDirectoryService(locationRepo locationStore, skillRepo skillStore) DirectoryService {
	return &directoryServiceImpl{
		locationRepo: locationRepo,
		skillRepo:    skillRepo,
	}
}

// CreateLocation creates a new location, applying the default country when
// none was given.
func (s *directoryServiceImpl) CreateLocation(ctx context.Context, location *models.Location) (*models.Location, error) {
	if strings.TrimSpace(location.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(location.City) == "" {
		return nil, fmt.Errorf("%w: city cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(location.Country) == "" {
		location.Country = models.DefaultCountry
	}

	id, err := s.locationRepo.CreateLocation(ctx, location)
	if err != nil {
		return nil, err
	}

	return s.locationRepo.GetLocationByID(ctx, id)
}

// GetLocationByID retrieves a location by ID
func (s *directoryServiceImpl) GetLocationByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	return s.locationRepo.GetLocationByID(ctx, id)
}

// GetAllLocations lists locations, optionally restricted to active ones
func (s *directoryServiceImpl) GetAllLocations(ctx context.Context, activeOnly bool) ([]*models.Location, error) {
	return s.locationRepo.GetAllLocations(ctx, activeOnly)
}

// UpdateLocation updates an existing location
func (s *directoryServiceImpl) UpdateLocation(ctx context.Context, location *models.Location) (*models.Location, error) {
	if strings.TrimSpace(location.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	existing, err := s.locationRepo.GetLocationByID(ctx, location.ID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(location.Country) == "" {
		location.Country = existing.Country
	}

	if err := s.locationRepo.UpdateLocation(ctx, location); err != nil {
		return nil, err
	}

	return s.locationRepo.GetLocationByID(ctx, location.ID)
}

// DeleteLocation removes a location. Locations referenced by an academy
// cannot be deleted.
func (s *directoryServiceImpl) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	return s.locationRepo.DeleteLocation(ctx, id)
}

// CreateSkill creates a new skill
func (s *directoryServiceImpl) CreateSkill(ctx context.Context, skill *models.Skill) (*models.Skill, error) {
	if strings.TrimSpace(skill.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	id, err := s.skillRepo.CreateSkill(ctx, skill)
	if err != nil {
		return nil, err
	}

	return s.skillRepo.GetSkillByID(ctx, id)
}

// GetSkillByID retrieves a skill by ID
func (s *directoryServiceImpl) GetSkillByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	return s.skillRepo.GetSkillByID(ctx, id)
}

// GetAllSkills lists skills, optionally restricted to active ones
func (s *directoryServiceImpl) GetAllSkills(ctx context.Context, activeOnly bool) ([]*models.Skill, error) {
	return s.skillRepo.GetAllSkills(ctx, activeOnly)
}

// UpdateSkill updates an existing skill
func (s *directoryServiceImpl) UpdateSkill(ctx context.Context, skill *models.Skill) (*models.Skill, error) {
	if strings.TrimSpace(skill.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	if err := s.skillRepo.UpdateSkill(ctx, skill); err != nil {
		return nil, err
	}

	return s.skillRepo.GetSkillByID(ctx, skill.ID)
}

// DeleteSkill removes a skill. Skills referenced by any academy cannot be
// deleted.
func (s *directoryServiceImpl) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	return s.skillRepo.DeleteSkill(ctx, id)
}
