package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/app/services"
	"github.com/unpuzzleclub/backend/internal/middleware"
)

// PhotoController handles academy photo lifecycle operations
type PhotoController struct {
	photoService services.PhotoService
}

// NewPhotoController creates a new PhotoController
func NewPhotoController(photoService services.PhotoService) *PhotoController {
	return &PhotoController{
		photoService: photoService,
	}
}

// UploadPhoto uploads a photo for the caller's academy
// @Summary Upload an academy photo
// @Description Accepts a JPEG, PNG or WebP image up to 5MB. An academy holds at most 4 photos; new photos start pending.
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param photo formData file true "Photo file"
// @Success 201 {object} dto.APIResponse{data=dto.PhotoUploadResponse} "Photo uploaded"
// @Failure 400 {object} dto.ErrorResponse "File too large or wrong type"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 409 {object} dto.ErrorResponse "Photo quota exceeded"
// @Router /academies/{id}/photos [post]
func (c *PhotoController) UploadPhoto(ctx *gin.Context) {
	academyID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	ownerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := ctx.FormFile("photo")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Photo file is required").WithField("photo")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	photo, err := c.photoService.UploadPhoto(ctx, ownerID, academyID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.PhotoUploadResponse{Photo: photo},
		Timestamp: time.Now(),
	})
}

// GetAcademyPhotos lists an academy's photos
// @Summary List academy photos
// @Description Lists photos by display order; by default only approved ones
// @Tags photos
// @Produce json
// @Param id path string true "Academy ID"
// @Param all query bool false "Include pending and rejected photos"
// @Success 200 {object} dto.APIResponse{data=[]models.AcademyPhoto} "Photos"
// @Router /academies/{id}/photos [get]
func (c *PhotoController) GetAcademyPhotos(ctx *gin.Context) {
	academyID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	approvedOnly := ctx.Query("all") != "true"

	photos, err := c.photoService.GetAcademyPhotos(ctx, academyID, approvedOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      photos,
		Timestamp: time.Now(),
	})
}

// DeletePhoto removes a photo
// @Summary Delete a photo
// @Description Deletes a photo row and its binary. Owners delete their own photos; admins any.
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Photo deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Photo not found"
// @Router /photos/{id} [delete]
func (c *PhotoController) DeletePhoto(ctx *gin.Context) {
	photoID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	actorID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	isAdmin := ctx.GetBool(middleware.ContextIsAdmin)

	if err := c.photoService.DeletePhoto(ctx, actorID, isAdmin, photoID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Photo deleted successfully"},
		Timestamp: time.Now(),
	})
}

// ReorderPhoto overwrites one photo's display order
// @Summary Reorder a photo
// @Description Sets the display order of exactly one photo; siblings are not renumbered
// @Tags photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Param request body dto.ReorderPhotoRequest true "New display order"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Photo reordered"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Photo not found"
// @Router /photos/{id}/order [put]
func (c *PhotoController) ReorderPhoto(ctx *gin.Context) {
	photoID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	ownerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.ReorderPhotoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid reorder data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.photoService.ReorderPhoto(ctx, ownerID, photoID, req.DisplayOrder); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Photo order updated successfully"},
		Timestamp: time.Now(),
	})
}

// GetPendingPhotos lists the admin photo review queue
// @Summary List pending photos
// @Description Lists pending photos with academy and owner details, newest first. Admin only.
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PendingPhoto} "Pending photos"
// @Router /admin/photos/pending [get]
func (c *PhotoController) GetPendingPhotos(ctx *gin.Context) {
	photos, err := c.photoService.GetPendingPhotos(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      photos,
		Timestamp: time.Now(),
	})
}

// UpdatePhotoStatus approves or rejects a pending photo
// @Summary Resolve a pending photo
// @Description Approves or rejects a photo; re-resolving overwrites the previous outcome. Admin only.
// @Tags photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Param request body dto.UpdatePhotoStatusRequest true "Resolution"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Photo resolved"
// @Failure 404 {object} dto.ErrorResponse "Photo not found or already resolved"
// @Router /admin/photos/{id}/status [put]
func (c *PhotoController) UpdatePhotoStatus(ctx *gin.Context) {
	photoID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePhotoStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.photoService.UpdatePhotoStatus(ctx, photoID, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Photo status updated successfully"},
		Timestamp: time.Now(),
	})
}
