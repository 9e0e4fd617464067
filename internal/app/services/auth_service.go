package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/app/models/dto"
	"github.com/unpuzzleclub/backend/internal/config"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
	"github.com/unpuzzleclub/backend/internal/pkg/auth"
	"github.com/unpuzzleclub/backend/internal/pkg/logger"
)

// Role landing routes used by the post-login redirect.
const (
	RouteAdmin         = "/admin"
	RouteAcademy       = "/academy"
	RouteDashboard     = "/dashboard"
	RouteRoleSelection = "/role-selection"
)

// DestinationFor maps an authenticated user to their landing route. Admin
// membership wins over the selected role; users without a role are sent to
// role selection.
func DestinationFor(role *models.Role, isAdmin bool) string {
	if isAdmin {
		return RouteAdmin
	}
	if role == nil {
		return RouteRoleSelection
	}
	switch *role {
	case models.RoleAcademyOwner:
		return RouteAcademy
	case models.RoleStudent, models.RoleTeacher:
		return RouteDashboard
	default:
		return RouteRoleSelection
	}
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	GoogleSignIn(ctx context.Context, idToken string) (*dto.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	SelectRole(ctx context.Context, userID uuid.UUID, role models.Role) (*dto.AuthResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, bool, error)
	IsAdmin(ctx context.Context, user *models.User) (bool, error)
}

// userStore is the subset of UserRepository the auth service needs
type userStore interface {
	CreateUser(ctx context.Context, user *models.User) (uuid.UUID, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByGoogleSub(ctx context.Context, sub string) (*models.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role models.Role) error
	LinkGoogleSub(ctx context.Context, id uuid.UUID, sub string) error
}

// adminStore is the subset of AdminRepository the auth service needs
type adminStore interface {
	IsActiveAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// tokenStore is the subset of TokenRepository the auth service needs
type tokenStore interface {
	CreateToken(ctx context.Context, token string, userID uuid.UUID, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (uuid.UUID, time.Time, bool, error)
	RevokeToken(ctx context.Context, token string) error
}

// googleVerifier verifies Google ID tokens
type googleVerifier interface {
	Verify(idToken string) (*auth.GoogleIdentity, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo   userStore
	adminRepo  adminStore
	tokenRepo  tokenStore
	google     googleVerifier
	jwtService *auth.JWTService
	cfg        *config.Config
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo userStore,
	adminRepo adminStore,
	tokenRepo tokenStore,
	google googleVerifier,
	jwtService *auth.JWTService,
	cfg *config.Config,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		adminRepo:  adminRepo,
		tokenRepo:  tokenRepo,
		google:     google,
		jwtService: jwtService,
		cfg:        cfg,
	}
}

// IsAdmin decides admin privilege server-side: either the email is on the
// configured allow-list or the user holds an active admins row. Nothing a
// client sends can influence this.
func (s *authServiceImpl) IsAdmin(ctx context.Context, user *models.User) (bool, error) {
	if s.cfg.IsAdminEmail(user.Email) {
		return true, nil
	}
	return s.adminRepo.IsActiveAdmin(ctx, user.ID)
}

// GoogleSignIn verifies a Google ID token and signs the user in, creating the
// account on first contact.
func (s *authServiceImpl) GoogleSignIn(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	identity, err := s.google.Verify(idToken)
	if err != nil {
		logger.Warn().Err(err).Msg("Google ID token rejected")
		return nil, apperrors.ErrGoogleTokenInvalid
	}

	user, err := s.userRepo.GetUserByGoogleSub(ctx, identity.Sub)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, fmt.Errorf("error looking up google account: %w", err)
		}
		user, err = s.findOrCreateGoogleUser(ctx, identity)
		if err != nil {
			return nil, err
		}
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountSuspended
	}

	return s.issueAuthResponse(ctx, user)
}

// findOrCreateGoogleUser links the Google subject to an existing account with
// the same email, or registers a fresh account.
func (s *authServiceImpl) findOrCreateGoogleUser(ctx context.Context, identity *auth.GoogleIdentity) (*models.User, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, identity.Email)
	if err == nil {
		if linkErr := s.userRepo.LinkGoogleSub(ctx, existing.ID, identity.Sub); linkErr != nil {
			return nil, fmt.Errorf("error linking google account: %w", linkErr)
		}
		existing.GoogleSub = &identity.Sub
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("error looking up account by email: %w", err)
	}

	user := &models.User{
		Email:     identity.Email,
		GoogleSub: &identity.Sub,
		IsActive:  true,
	}
	if identity.Name != "" {
		user.FullName = &identity.Name
	}

	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	user.ID = id

	logger.Info().Str("userID", id.String()).Msg("New account registered via Google")
	return user, nil
}

// Login authenticates a back-office account with email and password.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	if user.Password == nil {
		// Google-only account, no password to check
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(*user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountSuspended
	}

	return s.issueAuthResponse(ctx, user)
}

// RefreshToken exchanges a refresh token for a new token pair. The used token
// is revoked, so each refresh token works exactly once.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, expiryDate, isRevoked, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error looking up refresh token: %w", err)
	}

	if isRevoked {
		return nil, apperrors.ErrTokenInvalid
	}
	if time.Now().After(expiryDate) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading token owner: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountSuspended
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("error revoking used refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// SelectRole assigns the post-signup role. A role can be chosen once and only
// from the selectable set.
func (s *authServiceImpl) SelectRole(ctx context.Context, userID uuid.UUID, role models.Role) (*dto.AuthResponse, error) {
	if !role.IsSelectable() {
		return nil, apperrors.ErrRoleNotSelectable
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role != nil {
		return nil, apperrors.NewConflictError("role has already been selected")
	}

	if err := s.userRepo.UpdateUserRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user.Role = &role

	// Re-issue tokens so the claims carry the new role
	return s.issueAuthResponse(ctx, user)
}

// GetCurrentUser loads the authenticated user and their admin standing
func (s *authServiceImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, bool, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	isAdmin, err := s.IsAdmin(ctx, user)
	if err != nil {
		return nil, false, fmt.Errorf("error checking admin standing: %w", err)
	}

	return user, isAdmin, nil
}

func (s *authServiceImpl) issueAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	isAdmin, err := s.IsAdmin(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error checking admin standing: %w", err)
	}

	return &dto.AuthResponse{
		User:     user,
		Tokens:   *tokens,
		Redirect: DestinationFor(user.Role, isAdmin),
	}, nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	isAdmin, err := s.IsAdmin(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error checking admin standing: %w", err)
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("error generating token pair: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}
