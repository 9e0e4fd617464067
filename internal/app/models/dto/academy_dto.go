package dto

import "github.com/unpuzzleclub/backend/internal/app/models"

// CreateAcademyRequest creates a new academy in pending status
type CreateAcademyRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	LocationID  string `json:"locationId" binding:"omitempty,uuid"`
}

// UpdateAcademyStatusRequest is the admin status override
type UpdateAcademyStatusRequest struct {
	Status models.AcademyStatus `json:"status" binding:"required,oneof=pending active suspended"`
}

// RenameAcademyRequest is the admin rename override
type RenameAcademyRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateAcademyRequest updates the owner-editable academy profile
type UpdateAcademyRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	LocationID  string `json:"locationId" binding:"omitempty,uuid"`
}

// RequestSkillRequest asks for a skill to be offered by an academy
type RequestSkillRequest struct {
	SkillID string `json:"skillId" binding:"required,uuid"`
}

// AcademyListResponse is a paginated academy listing
type AcademyListResponse struct {
	Academies      []*models.Academy `json:"academies"`
	PaginationInfo PaginationInfo    `json:"pagination"`
}

// AcademyInfoResponse is the academy detail view: the academy with its
// approved skills and approved photos
type AcademyInfoResponse struct {
	Academy *models.Academy        `json:"academy"`
	Skills  []*models.AcademySkill `json:"skills"`
	Photos  []*models.AcademyPhoto `json:"photos"`
}
