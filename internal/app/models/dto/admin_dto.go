package dto

import "github.com/unpuzzleclub/backend/internal/app/models"

// CreateAdminRequest promotes a user to platform admin (super admin only)
type CreateAdminRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
}

// UpdateAdminStatusRequest suspends or reactivates an admin
type UpdateAdminStatusRequest struct {
	Status models.AdminStatus `json:"status" binding:"required,oneof=active suspended"`
}

// DashboardStats is the admin back-office overview
type DashboardStats struct {
	TotalAcademies     int64 `json:"totalAcademies"`
	PendingAcademies   int64 `json:"pendingAcademies"`
	ActiveAcademies    int64 `json:"activeAcademies"`
	SuspendedAcademies int64 `json:"suspendedAcademies"`
	TotalPhotos        int64 `json:"totalPhotos"`
	PendingPhotos      int64 `json:"pendingPhotos"`
	TotalSkills        int64 `json:"totalSkills"`
	PendingSkills      int64 `json:"pendingSkills"`
	TotalAdmins        int64 `json:"totalAdmins"`
	ActiveAdmins       int64 `json:"activeAdmins"`
}

// AcademyStats is the owner-facing dashboard summary
type AcademyStats struct {
	TotalStudents      int64 `json:"totalStudents"`
	NewPendingStudents int64 `json:"newPendingStudents"`
	ActiveTeachers     int64 `json:"activeTeachers"`
	TotalBatches       int64 `json:"totalBatches"`
	ActiveBatches      int64 `json:"activeBatches"`
	TotalSkills        int64 `json:"totalSkills"`
}

// Activity is one entry in a recent-activity feed
type Activity struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // academy_created, photo_uploaded, batch, student
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}
