package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
)

// HandleAPIError maps domain errors onto HTTP responses. Controllers funnel
// every service error through here so status codes and error codes stay
// consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := func(fallback string) string {
		if errors.As(err, &custom) && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrAdminNotFound),
		errors.Is(err, apperrors.ErrLocationNotFound),
		errors.Is(err, apperrors.ErrSkillNotFound),
		errors.Is(err, apperrors.ErrAcademyNotFound),
		errors.Is(err, apperrors.ErrAcademySkillNotFound),
		errors.Is(err, apperrors.ErrPhotoNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message(err.Error())),
		})

	case errors.Is(err, apperrors.ErrLocationInUse),
		errors.Is(err, apperrors.ErrSkillInUse):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceInUse, message(err.Error())),
		})

	case errors.Is(err, apperrors.ErrSkillAlreadyRequested),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrAdminAlreadyExists),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message(err.Error())),
		})

	case errors.Is(err, apperrors.ErrPhotoQuotaExceeded):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeQuotaExceeded, apperrors.ErrPhotoQuotaExceeded.Error()),
		})

	case errors.Is(err, apperrors.ErrPhotoTooLarge):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeFileTooLarge, apperrors.ErrPhotoTooLarge.Error()).WithField("file"),
		})

	case errors.Is(err, apperrors.ErrPhotoTypeNotAllowed):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeFileTypeInvalid, apperrors.ErrPhotoTypeNotAllowed.Error()).WithField("file"),
		})

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})

	case errors.Is(err, apperrors.ErrGoogleTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidGoogleToken, "Google sign-in could not be verified"),
		})

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})

	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})

	case errors.Is(err, apperrors.ErrAccountSuspended):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is suspended"),
		})

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, message("Permission denied")),
		})

	case errors.Is(err, apperrors.ErrRoleNotSelectable):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.ErrRoleNotSelectable.Error()).WithField("role"),
		})

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message(err.Error())),
		})

	case errors.Is(err, apperrors.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeStorageUnavailable, "Photo storage unavailable"),
		})

	default:
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}
