package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/app/services"
	"github.com/unpuzzleclub/backend/internal/middleware"
)

// AdminController handles admin management and the review queues
type AdminController struct {
	adminService     services.AdminService
	approvalService  services.ApprovalService
	dashboardService services.DashboardService
}

// NewAdminController creates a new AdminController
func NewAdminController(
	adminService services.AdminService,
	approvalService services.ApprovalService,
	dashboardService services.DashboardService,
) *AdminController {
	return &AdminController{
		adminService:     adminService,
		approvalService:  approvalService,
		dashboardService: dashboardService,
	}
}

// CreateAdmin promotes a user to platform admin
// @Summary Grant admin membership
// @Description Promotes an existing user to platform admin. Super admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAdminRequest true "User to promote"
// @Success 201 {object} dto.APIResponse{data=models.Admin} "Admin created"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "User is already an admin"
// @Router /admin/admins [post]
func (c *AdminController) CreateAdmin(ctx *gin.Context) {
	var req dto.CreateAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid admin data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID").WithField("userId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	actorID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	admin, err := c.adminService.CreateAdmin(ctx, userID, actorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      admin,
		Timestamp: time.Now(),
	})
}

// GetAllAdmins lists admin memberships
// @Summary List admins
// @Description Lists all admin memberships with their accounts, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Admin} "Admins"
// @Router /admin/admins [get]
func (c *AdminController) GetAllAdmins(ctx *gin.Context) {
	admins, err := c.adminService.GetAllAdmins(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      admins,
		Timestamp: time.Now(),
	})
}

// UpdateAdminStatus suspends or reactivates an admin
// @Summary Update admin status
// @Description Suspends or reactivates an admin membership. Super admin only; self-changes are rejected.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Param request body dto.UpdateAdminStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated"
// @Failure 403 {object} dto.ErrorResponse "Self-change rejected"
// @Failure 404 {object} dto.ErrorResponse "Admin not found"
// @Router /admin/admins/{id}/status [put]
func (c *AdminController) UpdateAdminStatus(ctx *gin.Context) {
	adminID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	actorID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateAdminStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.adminService.UpdateAdminStatus(ctx, actorID, adminID, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Admin status updated successfully"},
		Timestamp: time.Now(),
	})
}

// DeleteAdmin revokes an admin membership
// @Summary Revoke admin membership
// @Description Removes an admin membership entirely. Super admin only; self-revocation is rejected.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Admin revoked"
// @Failure 403 {object} dto.ErrorResponse "Self-revocation rejected"
// @Failure 404 {object} dto.ErrorResponse "Admin not found"
// @Router /admin/admins/{id} [delete]
func (c *AdminController) DeleteAdmin(ctx *gin.Context) {
	adminID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	actorID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.adminService.DeleteAdmin(ctx, actorID, adminID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Admin membership revoked"},
		Timestamp: time.Now(),
	})
}

// GetPendingSkillRequests lists the skill review queue
// @Summary List pending skill requests
// @Description Lists pending academy skill requests with academy and skill details, newest first. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PendingAcademySkill} "Pending skill requests"
// @Router /admin/skills/pending [get]
func (c *AdminController) GetPendingSkillRequests(ctx *gin.Context) {
	pending, err := c.approvalService.GetPendingSkillRequests(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      pending,
		Timestamp: time.Now(),
	})
}

// ResolveSkillRequest approves or rejects a pending skill request
// @Summary Resolve a skill request
// @Description Approves or rejects a skill request; re-resolving overwrites the previous outcome. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Skill request ID"
// @Param request body dto.UpdatePhotoStatusRequest true "Resolution"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Request resolved"
// @Failure 404 {object} dto.ErrorResponse "Request not found or already resolved"
// @Router /admin/skills/{id}/status [put]
func (c *AdminController) ResolveSkillRequest(ctx *gin.Context) {
	requestID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.ApprovalStatus `json:"status" binding:"required,oneof=approved rejected"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.approvalService.ResolveSkillRequest(ctx, requestID, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Skill request resolved"},
		Timestamp: time.Now(),
	})
}

// GetDashboardStats returns the platform overview
// @Summary Get dashboard statistics
// @Description Collects the platform-wide counts for the admin overview. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats} "Statistics"
// @Router /admin/dashboard/stats [get]
func (c *AdminController) GetDashboardStats(ctx *gin.Context) {
	stats, err := c.dashboardService.GetPlatformStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}

// GetRecentActivities returns the admin activity feed
// @Summary Get recent activities
// @Description Lists the latest academy registrations and photo uploads. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.Activity} "Activities"
// @Router /admin/dashboard/activities [get]
func (c *AdminController) GetRecentActivities(ctx *gin.Context) {
	limit := uint64(10)
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	activities, err := c.dashboardService.GetRecentActivities(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      activities,
		Timestamp: time.Now(),
	})
}
