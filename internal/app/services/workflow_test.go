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

// fakeSkillRequestStore backs both the owner-facing request path and the
// admin review queue so the flow test observes one shared state.
type fakeSkillRequestStore struct {
	*fakeAcademySkillStore
	academies map[uuid.UUID]*models.Academy
	skills    map[uuid.UUID]*models.Skill
}

func (s *fakeSkillRequestStore) GetPending(context.Context) ([]*dto.PendingAcademySkill, error) {
	var out []*dto.PendingAcademySkill
	for _, r := range s.requests {
		if r.Status != models.ApprovalStatusPending {
			continue
		}
		entry := &dto.PendingAcademySkill{AcademySkill: *r}
		if a, ok := s.academies[r.AcademyID]; ok {
			entry.AcademyName = a.Name
			entry.OwnerID = a.OwnerID.String()
		}
		if sk, ok := s.skills[r.SkillID]; ok {
			entry.SkillName = sk.Name
			entry.SkillDescription = sk.Description
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *fakeSkillRequestStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.ApprovalStatus) error {
	r, ok := s.requests[id]
	if !ok {
		return apperrors.ErrAcademySkillNotFound
	}
	r.Status = status
	return nil
}

// TestSkillRequestFlow walks the full path from empty directory to an
// approved, publicly visible academy skill.
func TestSkillRequestFlow(t *testing.T) {
	ctx := context.Background()

	locations := newFakeLocationStore()
	skills := newFakeSkillStore()
	directorySvc := NewDirectoryService(locations, skills)

	academyStore := newFakeFullAcademyStore()
	requestStore := &fakeSkillRequestStore{
		fakeAcademySkillStore: newFakeAcademySkillStore(),
		academies:             academyStore.academies,
		skills:                skills.skills,
	}
	academySvc := NewAcademyService(academyStore, requestStore, &fakeAcademyPhotoStore{}, &fakeStorage{})
	approvalSvc := NewApprovalService(requestStore)

	location, err := directorySvc.CreateLocation(ctx, &models.Location{Name: "Bangalore", City: "Bangalore", State: "Karnataka", Country: "India"})
	require.NoError(t, err)

	chess, err := directorySvc.CreateSkill(ctx, &models.Skill{Name: "Chess"})
	require.NoError(t, err)

	ownerID := uuid.New()
	academy, err := academySvc.CreateAcademy(ctx, &models.Academy{
		Name:        "Academy X",
		PhoneNumber: "+919800000000",
		OwnerID:     ownerID,
		LocationID:  &location.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.AcademyStatusPending, academy.Status)

	require.NoError(t, academySvc.UpdateAcademyStatus(ctx, academy.ID, models.AcademyStatusActive))

	request, err := academySvc.RequestSkill(ctx, ownerID, academy.ID, chess.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApprovalStatusPending, request.Status)

	pending, err := approvalSvc.GetPendingSkillRequests(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Academy X", pending[0].AcademyName)
	assert.Equal(t, "Chess", pending[0].SkillName)

	require.NoError(t, approvalSvc.ResolveSkillRequest(ctx, request.ID, models.ApprovalStatusApproved))

	pending, err = approvalSvc.GetPendingSkillRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending, "approved request leaves the review queue")

	visible, err := academySvc.GetAcademySkills(ctx, academy.ID, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, chess.ID, visible[0].SkillID)
}
