package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/app/services"
	"github.com/unpuzzleclub/backend/internal/middleware"
	"github.com/unpuzzleclub/backend/internal/pkg/helpers"
)

// AcademyController handles academy operations
type AcademyController struct {
	academyService services.AcademyService
}

// NewAcademyController creates a new AcademyController
func NewAcademyController(academyService services.AcademyService) *AcademyController {
	return &AcademyController{
		academyService: academyService,
	}
}

// CreateAcademy registers a new academy
// @Summary Register an academy
// @Description Creates an academy in pending status for the given owner
// @Tags academies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAcademyRequest true "Academy information"
// @Success 201 {object} dto.APIResponse{data=models.Academy} "Academy created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Owner already has an academy"
// @Router /academies [post]
func (c *AcademyController) CreateAcademy(ctx *gin.Context) {
	var req dto.CreateAcademyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid academy data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	ownerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	academy := &models.Academy{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		OwnerID:     ownerID,
	}
	if req.LocationID != "" {
		locationID, err := uuid.Parse(req.LocationID)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid location ID").WithField("locationId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		academy.LocationID = &locationID
	}

	created, err := c.academyService.CreateAcademy(ctx, academy)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      created,
		Timestamp: time.Now(),
	})
}

// ListAcademies lists active academies
// @Summary List academies
// @Description Lists active academies ordered by name, optionally filtered by location
// @Tags academies
// @Produce json
// @Param locationId query string false "Filter by location ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Academy} "Academies"
// @Router /academies [get]
func (c *AcademyController) ListAcademies(ctx *gin.Context) {
	var locationID *uuid.UUID
	if raw := ctx.Query("locationId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid location ID").WithField("locationId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		locationID = &id
	}

	academies, err := c.academyService.ListActiveAcademies(ctx, locationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      academies,
		Timestamp: time.Now(),
	})
}

// ListAllAcademies lists every academy regardless of status
// @Summary List all academies
// @Description Lists academies of every status with pagination and an optional status filter. Admin only.
// @Tags academies
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Param status query string false "Filter by status" Enums(pending, active, suspended)
// @Success 200 {object} dto.APIResponse{data=dto.AcademyListResponse} "Academies"
// @Router /admin/academies [get]
func (c *AcademyController) ListAllAcademies(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var status *models.AcademyStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.AcademyStatus(raw)
		status = &s
	}

	academies, err := c.academyService.ListAllAcademies(ctx, status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      academies,
		Timestamp: time.Now(),
	})
}

// GetAcademyByID returns the academy detail view
// @Summary Get academy details
// @Description Returns the academy with its approved skills and approved photos
// @Tags academies
// @Produce json
// @Param id path string true "Academy ID"
// @Success 200 {object} dto.APIResponse{data=dto.AcademyInfoResponse} "Academy"
// @Failure 404 {object} dto.ErrorResponse "Academy not found"
// @Router /academies/{id} [get]
func (c *AcademyController) GetAcademyByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	info, err := c.academyService.GetAcademyByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      info,
		Timestamp: time.Now(),
	})
}

// GetMyAcademy returns the caller's academy
// @Summary Get my academy
// @Description Returns the academy owned by the authenticated user
// @Tags academies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Academy} "Academy"
// @Failure 404 {object} dto.ErrorResponse "Caller owns no academy"
// @Router /academies/me [get]
func (c *AcademyController) GetMyAcademy(ctx *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	academy, err := c.academyService.GetAcademyByOwner(ctx, ownerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      academy,
		Timestamp: time.Now(),
	})
}

// UpdateAcademy updates the caller's academy profile
// @Summary Update my academy
// @Tags academies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param request body dto.UpdateAcademyRequest true "Academy profile"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Academy updated"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Academy not found"
// @Router /academies/{id} [put]
func (c *AcademyController) UpdateAcademy(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	ownerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateAcademyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid academy data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var locationID *uuid.UUID
	if req.LocationID != "" {
		parsed, err := uuid.Parse(req.LocationID)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid location ID").WithField("locationId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		locationID = &parsed
	}

	if err := c.academyService.UpdateAcademy(ctx, ownerID, id, req.Name, req.PhoneNumber, locationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Academy updated successfully"},
		Timestamp: time.Now(),
	})
}

// UpdateAcademyStatus applies an admin status override
// @Summary Update academy status
// @Description Moves an academy between pending, active and suspended. Admin only.
// @Tags academies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param request body dto.UpdateAcademyStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated"
// @Failure 404 {object} dto.ErrorResponse "Academy not found"
// @Router /admin/academies/{id}/status [put]
func (c *AcademyController) UpdateAcademyStatus(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAcademyStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.academyService.UpdateAcademyStatus(ctx, id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Academy status updated successfully"},
		Timestamp: time.Now(),
	})
}

// RenameAcademy renames an academy
// @Summary Rename an academy
// @Description Overrides the academy name regardless of status. Admin only.
// @Tags academies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param request body dto.RenameAcademyRequest true "New name"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Academy renamed"
// @Failure 404 {object} dto.ErrorResponse "Academy not found"
// @Router /admin/academies/{id}/name [put]
func (c *AcademyController) RenameAcademy(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RenameAcademyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid name data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.academyService.RenameAcademy(ctx, id, req.Name); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Academy renamed successfully"},
		Timestamp: time.Now(),
	})
}

// DeleteAcademy removes an academy and its dependent records
// @Summary Delete an academy
// @Description Hard-deletes an academy; dependent photos, skills and batches are removed. Admin only.
// @Tags academies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Academy deleted"
// @Failure 404 {object} dto.ErrorResponse "Academy not found"
// @Router /admin/academies/{id} [delete]
func (c *AcademyController) DeleteAcademy(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.academyService.DeleteAcademy(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Academy deleted successfully"},
		Timestamp: time.Now(),
	})
}

// RequestSkill files a skill request for the caller's academy
// @Summary Request a skill
// @Description Files a pending skill request; duplicates are rejected
// @Tags academies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param request body dto.RequestSkillRequest true "Requested skill"
// @Success 201 {object} dto.APIResponse{data=models.AcademySkill} "Skill requested"
// @Failure 409 {object} dto.ErrorResponse "Skill already requested"
// @Router /academies/{id}/skills [post]
func (c *AcademyController) RequestSkill(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	ownerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.RequestSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid skill request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	skillID, err := uuid.Parse(req.SkillID)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid skill ID").WithField("skillId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	request, err := c.academyService.RequestSkill(ctx, ownerID, id, skillID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      request,
		Timestamp: time.Now(),
	})
}

// GetAcademySkills lists an academy's skill rows
// @Summary List academy skills
// @Description Lists an academy's skills; by default only approved ones
// @Tags academies
// @Produce json
// @Param id path string true "Academy ID"
// @Param all query bool false "Include pending and rejected rows"
// @Success 200 {object} dto.APIResponse{data=[]models.AcademySkill} "Skills"
// @Router /academies/{id}/skills [get]
func (c *AcademyController) GetAcademySkills(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	approvedOnly := ctx.Query("all") != "true"

	skills, err := c.academyService.GetAcademySkills(ctx, id, approvedOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      skills,
		Timestamp: time.Now(),
	})
}
