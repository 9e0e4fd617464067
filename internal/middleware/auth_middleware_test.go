package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "middleware-test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "test",
	})
}

func tokenFor(t *testing.T, svc *auth.JWTService, role models.Role, isAdmin bool) (uuid.UUID, string) {
	t.Helper()
	user := &models.User{ID: uuid.New(), Email: "user@example.com"}
	if role != "" {
		user.Role = &role
	}
	accessToken, _, _, _, err := svc.GenerateTokenPair(user, isAdmin)
	require.NoError(t, err)
	return user.ID, accessToken
}

func protectedRouter(m *AuthMiddleware, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append([]gin.HandlerFunc{m.JWTAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"userID": id.String()})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	svc := testJWTService(time.Hour)
	m := NewAuthMiddleware(svc)

	t.Run("valid token passes", func(t *testing.T) {
		userID, token := tokenFor(t, svc, models.RoleStudent, false)
		w := doRequest(protectedRouter(m), "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(protectedRouter(m), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(protectedRouter(m), "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := testJWTService(-time.Minute)
		_, token := tokenFor(t, expired, models.RoleStudent, false)
		w := doRequest(protectedRouter(NewAuthMiddleware(expired)), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoleRequired(t *testing.T) {
	svc := testJWTService(time.Hour)
	m := NewAuthMiddleware(svc)
	router := protectedRouter(m, m.RoleRequired(models.RoleAcademyOwner))

	t.Run("matching role passes", func(t *testing.T) {
		_, token := tokenFor(t, svc, models.RoleAcademyOwner, false)
		assert.Equal(t, http.StatusOK, doRequest(router, "Bearer "+token).Code)
	})

	t.Run("other role is rejected", func(t *testing.T) {
		_, token := tokenFor(t, svc, models.RoleStudent, false)
		assert.Equal(t, http.StatusForbidden, doRequest(router, "Bearer "+token).Code)
	})

	t.Run("admin bypasses the role check", func(t *testing.T) {
		_, token := tokenFor(t, svc, models.RoleStudent, true)
		assert.Equal(t, http.StatusOK, doRequest(router, "Bearer "+token).Code)
	})
}

func TestAdminRequired(t *testing.T) {
	svc := testJWTService(time.Hour)
	m := NewAuthMiddleware(svc)
	router := protectedRouter(m, m.AdminRequired())

	t.Run("admin claim passes", func(t *testing.T) {
		_, token := tokenFor(t, svc, models.RoleStudent, true)
		assert.Equal(t, http.StatusOK, doRequest(router, "Bearer "+token).Code)
	})

	t.Run("plain user is rejected", func(t *testing.T) {
		_, token := tokenFor(t, svc, models.RoleAcademyOwner, false)
		assert.Equal(t, http.StatusForbidden, doRequest(router, "Bearer "+token).Code)
	})
}

func TestSuperAdminRequired(t *testing.T) {
	svc := testJWTService(time.Hour)
	m := NewAuthMiddleware(svc)
	router := protectedRouter(m, m.SuperAdminRequired())

	t.Run("super admin passes", func(t *testing.T) {
		_, token := tokenFor(t, svc, models.RoleSuperAdmin, true)
		assert.Equal(t, http.StatusOK, doRequest(router, "Bearer "+token).Code)
	})

	t.Run("regular admin is rejected", func(t *testing.T) {
		_, token := tokenFor(t, svc, models.RoleAdmin, true)
		assert.Equal(t, http.StatusForbidden, doRequest(router, "Bearer "+token).Code)
	})

	t.Run("non-admin super_admin role claim is rejected", func(t *testing.T) {
		_, token := tokenFor(t, svc, models.RoleSuperAdmin, false)
		assert.Equal(t, http.StatusForbidden, doRequest(router, "Bearer "+token).Code)
	})
}
