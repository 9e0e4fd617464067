package dto

import "github.com/unpuzzleclub/backend/internal/app/models"

// PhotoUploadResponse is returned after a successful photo upload
type PhotoUploadResponse struct {
	Photo *models.AcademyPhoto `json:"photo"`
}

// ReorderPhotoRequest overwrites one photo's display order
type ReorderPhotoRequest struct {
	DisplayOrder int `json:"displayOrder" binding:"required,min=1"`
}

// UpdatePhotoStatusRequest approves or rejects one photo
type UpdatePhotoStatusRequest struct {
	Status models.ApprovalStatus `json:"status" binding:"required,oneof=approved rejected"`
}

// PendingPhoto is a pending photo annotated with its parent academy for the
// admin approval queue
type PendingPhoto struct {
	models.AcademyPhoto
	AcademyName string `json:"academyName"`
	OwnerID     string `json:"ownerId"`
	OwnerEmail  string `json:"ownerEmail"`
	OwnerName   string `json:"ownerName,omitempty"`
}

// PendingAcademySkill is a pending skill request annotated with academy and
// skill details for the admin approval queue
type PendingAcademySkill struct {
	models.AcademySkill
	AcademyName      string  `json:"academyName"`
	OwnerID          string  `json:"ownerId"`
	SkillName        string  `json:"skillName"`
	SkillDescription *string `json:"skillDescription,omitempty"`
}
