package models

import (
	"time"

	"github.com/google/uuid"
)

// Academy represents a tenant organization offering skills, based on the 'academies' table
type Academy struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	PhoneNumber string        `json:"phoneNumber" db:"phone_number"`
	OwnerID     uuid.UUID     `json:"ownerId" db:"owner_id"`
	LocationID  *uuid.UUID    `json:"locationId,omitempty" db:"location_id"`
	Status      AcademyStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`

	Location *Location `json:"location,omitempty"` // Relation, no db tag
	Owner    *User     `json:"owner,omitempty"`    // Relation, no db tag
}

// AcademySkill is the approval-gated association between an academy and a
// skill it wishes to offer, based on the 'academy_skills' table
type AcademySkill struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	AcademyID uuid.UUID      `json:"academyId" db:"academy_id"`
	SkillID   uuid.UUID      `json:"skillId" db:"skill_id"`
	Status    ApprovalStatus `json:"status" db:"status"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`

	Skill *Skill `json:"skill,omitempty"` // Relation, no db tag
}

// AcademyPhoto represents one gallery photo of an academy, based on the
// 'academy_photos' table. DisplayOrder is only meaningful within one
// academy's photo set and is not kept unique or gap-free.
type AcademyPhoto struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	AcademyID    uuid.UUID      `json:"academyId" db:"academy_id"`
	PhotoURL     string         `json:"photoUrl" db:"photo_url"`
	DisplayOrder int            `json:"displayOrder" db:"display_order"`
	Status       ApprovalStatus `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`
}

// MaxPhotosPerAcademy caps the number of photo rows an academy may hold,
// regardless of their approval status.
const MaxPhotosPerAcademy = 4
