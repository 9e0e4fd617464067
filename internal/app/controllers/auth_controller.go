package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/app/services"
	"github.com/unpuzzleclub/backend/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// GoogleSignIn handles Google ID token sign-in
// @Summary Sign in with Google
// @Description Verifies a Google ID token and signs the user in, creating the account on first contact
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleSignInRequest true "Google ID token"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Signed in successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Google token could not be verified"
// @Failure 403 {object} dto.ErrorResponse "Account is suspended"
// @Router /auth/google [post]
func (c *AuthController) GoogleSignIn(ctx *gin.Context) {
	var req dto.GoogleSignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid sign-in data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.authService.GoogleSignIn(ctx, req.IDToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Login handles email/password login for back-office accounts
// @Summary Sign in with email and password
// @Description Authenticates a back-office account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Signed in successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// RefreshToken rotates a refresh token
// @Summary Refresh the session
// @Description Exchanges a refresh token for a new token pair; the used token is revoked
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Tokens refreshed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Token invalid, expired or revoked"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid refresh data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	tokens, err := c.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      tokens,
		Timestamp: time.Now(),
	})
}

// SelectRole assigns the post-signup role
// @Summary Select a role
// @Description Assigns the caller's role once after signup; only student, teacher and academy_owner are selectable
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SelectRoleRequest true "Selected role"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Role assigned, fresh tokens issued"
// @Failure 400 {object} dto.ErrorResponse "Role not selectable"
// @Failure 409 {object} dto.ErrorResponse "Role already selected"
// @Router /auth/role [post]
func (c *AuthController) SelectRole(ctx *gin.Context) {
	var req dto.SelectRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid role data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.authService.SelectRole(ctx, userID, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// GetMe returns the authenticated user
// @Summary Get the current user
// @Description Returns the caller's account, admin standing and landing route
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Current user"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) GetMe(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	user, isAdmin, err := c.authService.GetCurrentUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"user":     user,
			"isAdmin":  isAdmin,
			"redirect": services.DestinationFor(user.Role, isAdmin),
		},
		Timestamp: time.Now(),
	})
}
