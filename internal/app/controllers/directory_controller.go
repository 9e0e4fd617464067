package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/app/services"
	"github.com/unpuzzleclub/backend/internal/middleware"
)

// DirectoryController handles location and skill catalog operations
type DirectoryController struct {
	directoryService services.DirectoryService
}

// NewDirectoryController creates a new DirectoryController
func NewDirectoryController(directoryService services.DirectoryService) *DirectoryController {
	return &DirectoryController{
		directoryService: directoryService,
	}
}

// CreateLocation handles location creation
// @Summary Create a new location
// @Description Creates a location; country defaults to India when omitted
// @Tags directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLocationRequest true "Location information"
// @Success 201 {object} dto.APIResponse{data=models.Location} "Location created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Location already exists"
// @Router /locations [post]
func (c *DirectoryController) CreateLocation(ctx *gin.Context) {
	var req dto.CreateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid location data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	location, err := c.directoryService.CreateLocation(ctx, &models.Location{
		Name:    req.Name,
		City:    req.City,
		State:   req.State,
		Country: req.Country,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      location,
		Timestamp: time.Now(),
	})
}

// GetAllLocations lists locations
// @Summary List locations
// @Description Lists locations ordered by name; pass all=true (admin view) to include inactive ones
// @Tags directory
// @Produce json
// @Param all query bool false "Include inactive locations"
// @Success 200 {object} dto.APIResponse{data=[]models.Location} "Locations"
// @Router /locations [get]
func (c *DirectoryController) GetAllLocations(ctx *gin.Context) {
	activeOnly := ctx.Query("all") != "true"

	locations, err := c.directoryService.GetAllLocations(ctx, activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      locations,
		Timestamp: time.Now(),
	})
}

// GetLocationByID retrieves one location
// @Summary Get location details
// @Tags directory
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} dto.APIResponse{data=models.Location} "Location"
// @Failure 404 {object} dto.ErrorResponse "Location not found"
// @Router /locations/{id} [get]
func (c *DirectoryController) GetLocationByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	location, err := c.directoryService.GetLocationByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      location,
		Timestamp: time.Now(),
	})
}

// UpdateLocation updates a location
// @Summary Update a location
// @Tags directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Param request body dto.UpdateLocationRequest true "Location information"
// @Success 200 {object} dto.APIResponse{data=models.Location} "Location updated"
// @Failure 404 {object} dto.ErrorResponse "Location not found"
// @Router /locations/{id} [put]
func (c *DirectoryController) UpdateLocation(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid location data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	location, err := c.directoryService.UpdateLocation(ctx, &models.Location{
		ID:       id,
		Name:     req.Name,
		City:     req.City,
		State:    req.State,
		Country:  req.Country,
		IsActive: req.IsActive,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      location,
		Timestamp: time.Now(),
	})
}

// DeleteLocation deletes a location
// @Summary Delete a location
// @Description Deletes a location; fails with 409 when any academy references it
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Location deleted"
// @Failure 404 {object} dto.ErrorResponse "Location not found"
// @Failure 409 {object} dto.ErrorResponse "Location is in use"
// @Router /locations/{id} [delete]
func (c *DirectoryController) DeleteLocation(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.directoryService.DeleteLocation(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Location deleted successfully"},
		Timestamp: time.Now(),
	})
}

// CreateSkill handles skill creation
// @Summary Create a new skill
// @Tags directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSkillRequest true "Skill information"
// @Success 201 {object} dto.APIResponse{data=models.Skill} "Skill created"
// @Failure 409 {object} dto.ErrorResponse "Skill already exists"
// @Router /skills [post]
func (c *DirectoryController) CreateSkill(ctx *gin.Context) {
	var req dto.CreateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid skill data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	skill, err := c.directoryService.CreateSkill(ctx, &models.Skill{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      skill,
		Timestamp: time.Now(),
	})
}

// GetAllSkills lists skills
// @Summary List skills
// @Description Lists skills ordered by name; pass all=true (admin view) to include inactive ones
// @Tags directory
// @Produce json
// @Param all query bool false "Include inactive skills"
// @Success 200 {object} dto.APIResponse{data=[]models.Skill} "Skills"
// @Router /skills [get]
func (c *DirectoryController) GetAllSkills(ctx *gin.Context) {
	activeOnly := ctx.Query("all") != "true"

	skills, err := c.directoryService.GetAllSkills(ctx, activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      skills,
		Timestamp: time.Now(),
	})
}

// GetSkillByID retrieves one skill
// @Summary Get skill details
// @Tags directory
// @Produce json
// @Param id path string true "Skill ID"
// @Success 200 {object} dto.APIResponse{data=models.Skill} "Skill"
// @Failure 404 {object} dto.ErrorResponse "Skill not found"
// @Router /skills/{id} [get]
func (c *DirectoryController) GetSkillByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	skill, err := c.directoryService.GetSkillByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      skill,
		Timestamp: time.Now(),
	})
}

// UpdateSkill updates a skill
// @Summary Update a skill
// @Tags directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Skill ID"
// @Param request body dto.UpdateSkillRequest true "Skill information"
// @Success 200 {object} dto.APIResponse{data=models.Skill} "Skill updated"
// @Failure 404 {object} dto.ErrorResponse "Skill not found"
// @Router /skills/{id} [put]
func (c *DirectoryController) UpdateSkill(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid skill data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	skill, err := c.directoryService.UpdateSkill(ctx, &models.Skill{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      skill,
		Timestamp: time.Now(),
	})
}

// DeleteSkill deletes a skill
// @Summary Delete a skill
// @Description Deletes a skill; fails with 409 when any academy offers or requested it
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Skill ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Skill deleted"
// @Failure 404 {object} dto.ErrorResponse "Skill not found"
// @Failure 409 {object} dto.ErrorResponse "Skill is in use"
// @Router /skills/{id} [delete]
func (c *DirectoryController) DeleteSkill(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.directoryService.DeleteSkill(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Skill deleted successfully"},
		Timestamp: time.Now(),
	})
}
