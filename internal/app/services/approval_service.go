package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
	"github.com/unpuzzleclub/backend/internal/pkg/logger"
)

// ApprovalService defines the interface for the admin review queues
type ApprovalService interface {
	GetPendingSkillRequests(ctx context.Context) ([]*dto.PendingAcademySkill, error)
	ResolveSkillRequest(ctx context.Context, requestID uuid.UUID, status models.ApprovalStatus) error
}

// approvalSkillStore is the subset of AcademySkillRepository the approval service needs
type approvalSkillStore interface {
	GetPending(ctx context.Context) ([]*dto.PendingAcademySkill, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApprovalStatus) error
}

// approvalServiceImpl implements the ApprovalService interface
type approvalServiceImpl struct {
	skillRepo approvalSkillStore
}

// NewApprovalService creates a new approval service instance
func NewApprovalService(skillRepo approvalSkillStore) ApprovalService {
	return &approvalServiceImpl{
		skillRepo: skillRepo,
	}
}

// GetPendingSkillRequests lists pending skill requests for admin review,
// newest first.
func (s *approvalServiceImpl) GetPendingSkillRequests(ctx context.Context) ([]*dto.PendingAcademySkill, error) {
	return s.skillRepo.GetPending(ctx)
}

// ResolveSkillRequest approves or rejects a skill request. Re-resolving an
// already resolved request overwrites it, last write wins; only the
// transition back to pending is not exposed.
func (s *approvalServiceImpl) ResolveSkillRequest(ctx context.Context, requestID uuid.UUID, status models.ApprovalStatus) error {
	if status != models.ApprovalStatusApproved && status != models.ApprovalStatusRejected {
		return apperrors.ErrBadRequest
	}

	if err := s.skillRepo.UpdateStatus(ctx, requestID, status); err != nil {
		return err
	}

	logger.Info().Str("requestID", requestID.String()).Str("status", string(status)).Msg("Skill request resolved")
	return nil
}
