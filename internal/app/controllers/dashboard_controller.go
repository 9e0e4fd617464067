package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/app/services"
	"github.com/unpuzzleclub/backend/internal/middleware"
)

// DashboardController serves the owner dashboard read surfaces
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetAcademyStats returns the owner dashboard summary
// @Summary Get my academy statistics
// @Description Collects enrollment, teacher, batch and skill counts for the caller's academy
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AcademyStats} "Statistics"
// @Failure 404 {object} dto.ErrorResponse "Caller owns no academy"
// @Router /dashboard/stats [get]
func (c *DashboardController) GetAcademyStats(ctx *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	stats, err := c.dashboardService.GetAcademyStats(ctx, ownerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}

// GetAcademyBatches lists the caller's academy batches
// @Summary List my academy batches
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Batch} "Batches"
// @Router /dashboard/batches [get]
func (c *DashboardController) GetAcademyBatches(ctx *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	batches, err := c.dashboardService.GetAcademyBatches(ctx, ownerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      batches,
		Timestamp: time.Now(),
	})
}

// GetAcademyStudents lists the caller's academy student enrollments
// @Summary List my academy students
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.StudentEnrollment} "Enrollments"
// @Router /dashboard/students [get]
func (c *DashboardController) GetAcademyStudents(ctx *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollments, err := c.dashboardService.GetAcademyEnrollments(ctx, ownerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollments,
		Timestamp: time.Now(),
	})
}

// GetAcademyTeachers lists the caller's academy teacher assignments
// @Summary List my academy teachers
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.TeacherAssignment} "Assignments"
// @Router /dashboard/teachers [get]
func (c *DashboardController) GetAcademyTeachers(ctx *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	assignments, err := c.dashboardService.GetAcademyAssignments(ctx, ownerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      assignments,
		Timestamp: time.Now(),
	})
}
