package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
)

func handleError(err error) (int, dto.ErrorCode, string) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var body struct {
		Error struct {
			Code    dto.ErrorCode `json:"code"`
			Message string        `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		return w.Code, "", ""
	}
	return w.Code, body.Error.Code, body.Error.Message
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"academy not found", apperrors.ErrAcademyNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"photo not found", apperrors.ErrPhotoNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"location in use", apperrors.ErrLocationInUse, http.StatusConflict, dto.ErrorCodeResourceInUse},
		{"skill already requested", apperrors.ErrSkillAlreadyRequested, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"quota exceeded", apperrors.ErrPhotoQuotaExceeded, http.StatusConflict, dto.ErrorCodeQuotaExceeded},
		{"photo too large", apperrors.ErrPhotoTooLarge, http.StatusBadRequest, dto.ErrorCodeFileTooLarge},
		{"photo type not allowed", apperrors.ErrPhotoTypeNotAllowed, http.StatusBadRequest, dto.ErrorCodeFileTypeInvalid},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"google token rejected", apperrors.ErrGoogleTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidGoogleToken},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"account suspended", apperrors.ErrAccountSuspended, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"storage unavailable", apperrors.ErrStorageUnavailable, http.StatusServiceUnavailable, dto.ErrorCodeStorageUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handleError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestHandleAPIError_CustomMessageSurfaces(t *testing.T) {
	status, code, message := handleError(apperrors.NewConflictError("this user already owns an academy"))
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, code)
	assert.Equal(t, "this user already owns an academy", message)
}
