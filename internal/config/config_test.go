package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "test-secret"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "uploads", cfg.Server.StoragePath)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "720h", cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "test-secret"
`)

	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("AUTH_ADMIN_EMAILS", "root@unpuzzle.club, ops@unpuzzle.club")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, []string{"root@unpuzzle.club", "ops@unpuzzle.club"}, cfg.Auth.AdminEmails)
}

func TestIsAdminEmail(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.AdminEmails = []string{"Root@Unpuzzle.Club"}

	assert.True(t, cfg.IsAdminEmail("root@unpuzzle.club"))
	assert.True(t, cfg.IsAdminEmail("  ROOT@UNPUZZLE.CLUB  "))
	assert.False(t, cfg.IsAdminEmail("someone@unpuzzle.club"))
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "postgres"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5432"
	cfg.Database.DBName = "unpuzzle"

	assert.Equal(t, "postgres://postgres:pw@db:5432/unpuzzle?sslmode=disable", cfg.GetPostgresConnectionString())
}
