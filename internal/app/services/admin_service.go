package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
	"github.com/unpuzzleclub/backend/internal/pkg/logger"
)

// AdminService defines the interface for admin membership management
type AdminService interface {
	CreateAdmin(ctx context.Context, userID, createdBy uuid.UUID) (*models.Admin, error)
	GetAllAdmins(ctx context.Context) ([]*models.Admin, error)
	UpdateAdminStatus(ctx context.Context, actorID, adminID uuid.UUID, status models.AdminStatus) error
	DeleteAdmin(ctx context.Context, actorID, adminID uuid.UUID) error
}

// adminMembershipStore is the subset of AdminRepository the admin service needs
type adminMembershipStore interface {
	CreateAdmin(ctx context.Context, userID, createdBy uuid.UUID) (uuid.UUID, error)
	GetAdminByUserID(ctx context.Context, userID uuid.UUID) (*models.Admin, error)
	GetAllAdmins(ctx context.Context) ([]*models.Admin, error)
	UpdateAdminStatus(ctx context.Context, adminID uuid.UUID, status models.AdminStatus) error
	DeleteAdmin(ctx context.Context, adminID uuid.UUID) error
}

// adminUserStore resolves user accounts for admin management
type adminUserStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// adminServiceImpl implements the AdminService interface
type adminServiceImpl struct {
	adminRepo adminMembershipStore
	userRepo  adminUserStore
}

// NewAdminService creates a new admin service instance
func NewAdminService(adminRepo adminMembershipStore, userRepo adminUserStore) AdminService {
	return &adminServiceImpl{
		adminRepo: adminRepo,
		userRepo:  userRepo,
	}
}

// CreateAdmin promotes an existing user to platform admin
func (s *adminServiceImpl) CreateAdmin(ctx context.Context, userID, createdBy uuid.UUID) (*models.Admin, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountSuspended
	}

	if _, err := s.adminRepo.CreateAdmin(ctx, userID, createdBy); err != nil {
		if errors.Is(err, apperrors.ErrAdminAlreadyExists) {
			return nil, apperrors.ErrAdminAlreadyExists
		}
		return nil, fmt.Errorf("error granting admin membership: %w", err)
	}

	logger.Info().Str("userID", userID.String()).Str("createdBy", createdBy.String()).Msg("Admin membership granted")
	return s.adminRepo.GetAdminByUserID(ctx, userID)
}

// GetAllAdmins lists all admin memberships with their accounts
func (s *adminServiceImpl) GetAllAdmins(ctx context.Context) ([]*models.Admin, error) {
	return s.adminRepo.GetAllAdmins(ctx)
}

// UpdateAdminStatus suspends or reactivates an admin membership. Admins
// cannot change their own standing.
func (s *adminServiceImpl) UpdateAdminStatus(ctx context.Context, actorID, adminID uuid.UUID, status models.AdminStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown admin status %q", apperrors.ErrValidationFailed, status)
	}

	admin, err := s.findAdmin(ctx, adminID)
	if err != nil {
		return err
	}
	if admin.UserID == actorID {
		return apperrors.NewForbiddenError("admins cannot change their own standing")
	}

	return s.adminRepo.UpdateAdminStatus(ctx, adminID, status)
}

// DeleteAdmin revokes an admin membership. Admins cannot revoke themselves.
func (s *adminServiceImpl) DeleteAdmin(ctx context.Context, actorID, adminID uuid.UUID) error {
	admin, err := s.findAdmin(ctx, adminID)
	if err != nil {
		return err
	}
	if admin.UserID == actorID {
		return apperrors.NewForbiddenError("admins cannot revoke themselves")
	}

	if err := s.adminRepo.DeleteAdmin(ctx, adminID); err != nil {
		return err
	}

	logger.Info().Str("adminID", adminID.String()).Str("revokedBy", actorID.String()).Msg("Admin membership revoked")
	return nil
}

func (s *adminServiceImpl) findAdmin(ctx context.Context, adminID uuid.UUID) (*models.Admin, error) {
	admins, err := s.adminRepo.GetAllAdmins(ctx)
	if err != nil {
		return nil, err
	}
	for _, admin := range admins {
		if admin.ID == adminID {
			return admin, nil
		}
	}
	return nil, apperrors.ErrAdminNotFound
}
