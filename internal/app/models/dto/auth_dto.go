package dto

import "github.com/unpuzzleclub/backend/internal/app/models"

// GoogleSignInRequest carries the Google ID token obtained by the client
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// LoginRequest is the email/password login used by back-office accounts
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries a refresh token to be rotated
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SelectRoleRequest is the post-signup role selection
type SelectRoleRequest struct {
	Role models.Role `json:"role" binding:"required,oneof=student teacher academy_owner"`
}

// TokenResponse is the issued session token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`
	RefreshExpiresIn int    `json:"refreshExpiresIn"`
}

// AuthResponse is returned on successful sign-in
type AuthResponse struct {
	User     *models.User  `json:"user"`
	Tokens   TokenResponse `json:"tokens"`
	Redirect string        `json:"redirect"` // landing route for the signed-in principal
}
