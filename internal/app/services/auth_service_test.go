package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/config"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
	"github.com/unpuzzleclub/backend/internal/pkg/auth"
)

type fakeUserStore struct {
	usersByID   map[uuid.UUID]*models.User
	usersByMail map[string]*models.User
	usersBySub  map[string]*models.User
	created     []*models.User
	roleUpdates map[uuid.UUID]models.Role
	linkedSubs  map[uuid.UUID]string
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{
		usersByID:   map[uuid.UUID]*models.User{},
		usersByMail: map[string]*models.User{},
		usersBySub:  map[string]*models.User{},
		roleUpdates: map[uuid.UUID]models.Role{},
		linkedSubs:  map[uuid.UUID]string{},
	}
	for _, u := range users {
		s.add(u)
	}
	return s
}

func (s *fakeUserStore) add(u *models.User) {
	s.usersByID[u.ID] = u
	s.usersByMail[u.Email] = u
	if u.GoogleSub != nil {
		s.usersBySub[*u.GoogleSub] = u
	}
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *models.User) (uuid.UUID, error) {
	user.ID = uuid.New()
	s.add(user)
	s.created = append(s.created, user)
	return user.ID, nil
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := s.usersByID[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := s.usersByMail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetUserByGoogleSub(_ context.Context, sub string) (*models.User, error) {
	if u, ok := s.usersBySub[sub]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) UpdateUserRole(_ context.Context, id uuid.UUID, role models.Role) error {
	s.roleUpdates[id] = role
	return nil
}

func (s *fakeUserStore) LinkGoogleSub(_ context.Context, id uuid.UUID, sub string) error {
	s.linkedSubs[id] = sub
	return nil
}

type fakeAdminStore struct {
	activeAdmins map[uuid.UUID]bool
}

func (s *fakeAdminStore) IsActiveAdmin(_ context.Context, userID uuid.UUID) (bool, error) {
	return s.activeAdmins[userID], nil
}

type storedToken struct {
	userID    uuid.UUID
	expiry    time.Time
	isRevoked bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*storedToken{}}
}

func (s *fakeTokenStore) CreateToken(_ context.Context, token string, userID uuid.UUID, expiryDate time.Time) error {
	s.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (s *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (uuid.UUID, time.Time, bool, error) {
	t, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return t.userID, t.expiry, t.isRevoked, nil
}

func (s *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	if t, ok := s.tokens[token]; ok {
		t.isRevoked = true
	}
	return nil
}

type fakeGoogleVerifier struct {
	identity *auth.GoogleIdentity
	err      error
}

func (v *fakeGoogleVerifier) Verify(string) (*auth.GoogleIdentity, error) {
	return v.identity, v.err
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newAuthServiceForTest(users *fakeUserStore, admins *fakeAdminStore, tokens *fakeTokenStore, google *fakeGoogleVerifier, cfg *config.Config) AuthService {
	if admins == nil {
		admins = &fakeAdminStore{activeAdmins: map[uuid.UUID]bool{}}
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return NewAuthService(users, admins, tokens, google, newTestJWTService(), cfg)
}

func TestDestinationFor(t *testing.T) {
	owner := models.RoleAcademyOwner
	student := models.RoleStudent
	teacher := models.RoleTeacher

	tests := []struct {
		name    string
		role    *models.Role
		isAdmin bool
		want    string
	}{
		{"admin wins over role", &owner, true, RouteAdmin},
		{"admin without role", nil, true, RouteAdmin},
		{"academy owner", &owner, false, RouteAcademy},
		{"student", &student, false, RouteDashboard},
		{"teacher", &teacher, false, RouteDashboard},
		{"no role yet", nil, false, RouteRoleSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DestinationFor(tt.role, tt.isAdmin))
		})
	}
}

func TestGoogleSignIn_NewUser(t *testing.T) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	google := &fakeGoogleVerifier{identity: &auth.GoogleIdentity{
		Sub:   "sub-123",
		Email: "new@example.com",
		Name:  "New User",
	}}

	svc := newAuthServiceForTest(users, nil, tokens, google, nil)

	resp, err := svc.GoogleSignIn(context.Background(), "id-token")
	require.NoError(t, err)

	require.Len(t, users.created, 1)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.Nil(t, resp.User.Role)
	assert.Equal(t, RouteRoleSelection, resp.Redirect)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Contains(t, tokens.tokens, resp.Tokens.RefreshToken)
}

func TestGoogleSignIn_LinksExistingEmailAccount(t *testing.T) {
	existing := &models.User{
		ID:       uuid.New(),
		Email:    "known@example.com",
		IsActive: true,
	}
	users := newFakeUserStore(existing)
	google := &fakeGoogleVerifier{identity: &auth.GoogleIdentity{
		Sub:   "sub-456",
		Email: "known@example.com",
	}}

	svc := newAuthServiceForTest(users, nil, newFakeTokenStore(), google, nil)

	resp, err := svc.GoogleSignIn(context.Background(), "id-token")
	require.NoError(t, err)

	assert.Empty(t, users.created, "no new account should be registered")
	assert.Equal(t, existing.ID, resp.User.ID)
	assert.Equal(t, "sub-456", users.linkedSubs[existing.ID])
}

func TestGoogleSignIn_InvalidToken(t *testing.T) {
	google := &fakeGoogleVerifier{err: errors.New("bad signature")}
	svc := newAuthServiceForTest(newFakeUserStore(), nil, newFakeTokenStore(), google, nil)

	_, err := svc.GoogleSignIn(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperrors.ErrGoogleTokenInvalid)
}

func TestGoogleSignIn_SuspendedAccount(t *testing.T) {
	sub := "sub-789"
	suspended := &models.User{
		ID:        uuid.New(),
		Email:     "banned@example.com",
		GoogleSub: &sub,
		IsActive:  false,
	}
	google := &fakeGoogleVerifier{identity: &auth.GoogleIdentity{Sub: sub, Email: suspended.Email}}
	svc := newAuthServiceForTest(newFakeUserStore(suspended), nil, newFakeTokenStore(), google, nil)

	_, err := svc.GoogleSignIn(context.Background(), "id-token")
	assert.ErrorIs(t, err, apperrors.ErrAccountSuspended)
}

func TestGoogleSignIn_AdminAllowListRedirect(t *testing.T) {
	sub := "sub-admin"
	admin := &models.User{
		ID:        uuid.New(),
		Email:     "boss@example.com",
		GoogleSub: &sub,
		IsActive:  true,
	}
	cfg := &config.Config{}
	cfg.Auth.AdminEmails = []string{"boss@example.com"}
	google := &fakeGoogleVerifier{identity: &auth.GoogleIdentity{Sub: sub, Email: admin.Email}}

	svc := newAuthServiceForTest(newFakeUserStore(admin), nil, newFakeTokenStore(), google, cfg)

	resp, err := svc.GoogleSignIn(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, RouteAdmin, resp.Redirect)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	user := &models.User{
		ID:       uuid.New(),
		Email:    "ops@example.com",
		Password: &hash,
		IsActive: true,
	}

	t.Run("success", func(t *testing.T) {
		svc := newAuthServiceForTest(newFakeUserStore(user), nil, newFakeTokenStore(), nil, nil)
		resp, err := svc.Login(context.Background(), "ops@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newAuthServiceForTest(newFakeUserStore(user), nil, newFakeTokenStore(), nil, nil)
		_, err := svc.Login(context.Background(), "ops@example.com", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := newAuthServiceForTest(newFakeUserStore(), nil, newFakeTokenStore(), nil, nil)
		_, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("google-only account", func(t *testing.T) {
		googleOnly := &models.User{ID: uuid.New(), Email: "g@example.com", IsActive: true}
		svc := newAuthServiceForTest(newFakeUserStore(googleOnly), nil, newFakeTokenStore(), nil, nil)
		_, err := svc.Login(context.Background(), "g@example.com", "anything")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestRefreshToken_Rotation(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "user@example.com", IsActive: true}
	users := newFakeUserStore(user)
	tokens := newFakeTokenStore()
	require.NoError(t, tokens.CreateToken(context.Background(), "refresh-1", user.ID, time.Now().Add(time.Hour)))

	svc := newAuthServiceForTest(users, nil, tokens, nil, nil)

	resp, err := svc.RefreshToken(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.NotEqual(t, "refresh-1", resp.RefreshToken)
	assert.True(t, tokens.tokens["refresh-1"].isRevoked, "used refresh token must be revoked")

	// The same token cannot be used twice
	_, err = svc.RefreshToken(context.Background(), "refresh-1")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestRefreshToken_Expired(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "user@example.com", IsActive: true}
	tokens := newFakeTokenStore()
	require.NoError(t, tokens.CreateToken(context.Background(), "stale", user.ID, time.Now().Add(-time.Minute)))

	svc := newAuthServiceForTest(newFakeUserStore(user), nil, tokens, nil, nil)

	_, err := svc.RefreshToken(context.Background(), "stale")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestRefreshToken_Unknown(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserStore(), nil, newFakeTokenStore(), nil, nil)
	_, err := svc.RefreshToken(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestSelectRole(t *testing.T) {
	t.Run("assigns role and redirects", func(t *testing.T) {
		user := &models.User{ID: uuid.New(), Email: "fresh@example.com", IsActive: true}
		users := newFakeUserStore(user)
		svc := newAuthServiceForTest(users, nil, newFakeTokenStore(), nil, nil)

		resp, err := svc.SelectRole(context.Background(), user.ID, models.RoleAcademyOwner)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAcademyOwner, users.roleUpdates[user.ID])
		assert.Equal(t, RouteAcademy, resp.Redirect)
	})

	t.Run("rejects admin roles", func(t *testing.T) {
		user := &models.User{ID: uuid.New(), Email: "sneaky@example.com", IsActive: true}
		svc := newAuthServiceForTest(newFakeUserStore(user), nil, newFakeTokenStore(), nil, nil)

		_, err := svc.SelectRole(context.Background(), user.ID, models.RoleAdmin)
		assert.ErrorIs(t, err, apperrors.ErrRoleNotSelectable)
	})

	t.Run("role can only be chosen once", func(t *testing.T) {
		role := models.RoleStudent
		user := &models.User{ID: uuid.New(), Email: "set@example.com", Role: &role, IsActive: true}
		svc := newAuthServiceForTest(newFakeUserStore(user), nil, newFakeTokenStore(), nil, nil)

		_, err := svc.SelectRole(context.Background(), user.ID, models.RoleTeacher)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestIsAdmin(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "member@example.com", IsActive: true}

	t.Run("allow-list email", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Auth.AdminEmails = []string{"member@example.com"}
		svc := newAuthServiceForTest(newFakeUserStore(user), nil, newFakeTokenStore(), nil, cfg)

		isAdmin, err := svc.IsAdmin(context.Background(), user)
		require.NoError(t, err)
		assert.True(t, isAdmin)
	})

	t.Run("active admins row", func(t *testing.T) {
		admins := &fakeAdminStore{activeAdmins: map[uuid.UUID]bool{user.ID: true}}
		svc := newAuthServiceForTest(newFakeUserStore(user), admins, newFakeTokenStore(), nil, nil)

		isAdmin, err := svc.IsAdmin(context.Background(), user)
		require.NoError(t, err)
		assert.True(t, isAdmin)
	})

	t.Run("plain user", func(t *testing.T) {
		svc := newAuthServiceForTest(newFakeUserStore(user), nil, newFakeTokenStore(), nil, nil)

		isAdmin, err := svc.IsAdmin(context.Background(), user)
		require.NoError(t, err)
		assert.False(t, isAdmin)
	})
}
