package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/titoscorner/backend/internal/auth"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join("testdata")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.True(t, cfg.Database.Postgres.Enabled)
	require.Equal(t, "db.example.com", cfg.Database.Postgres.Host)
	require.Equal(t, 5433, cfg.Database.Postgres.Port)

	require.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	require.True(t, cfg.Cache.Redis.Enabled)
	require.Equal(t, "redis.example.com:6380", cfg.Cache.Redis.Address)
	require.Equal(t, 2, cfg.Cache.Redis.DB)
	require.Equal(t, 2*time.Second, cfg.Cache.Redis.Timeout)

	require.Equal(t, "jwt-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWT.TTL)

	require.Equal(t, []string{"https://titoscorner.dev", "https://admin.titoscorner.dev"}, cfg.CORS.AllowedOrigins)

	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, 50, cfg.RateLimit.MaxRequests)
	require.Equal(t, 5*time.Minute, cfg.RateLimit.Window)

	require.Equal(t, "@every 1h", cfg.Maintenance.CacheCleanupSchedule)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.False(t, cfg.Cache.Redis.Enabled)
	require.Equal(t, time.Hour, cfg.Cache.TTL)
	require.Equal(t, 72*time.Hour, cfg.Auth.JWT.TTL)
	require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, 100, cfg.RateLimit.MaxRequests)
	require.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
}

func TestJWTServiceConfigAdapter(t *testing.T) {
	cfg := AuthConfig{
		JWT: JWTSettings{Secret: "secret", Issuer: "issuer", TTL: 30 * time.Minute},
	}
	require.Equal(t, auth.JWTConfig{
		Secret:         "secret",
		Issuer:         "issuer",
		AccessTokenTTL: 30 * time.Minute,
	}, cfg.JWTServiceConfig())

	var empty AuthConfig
	require.Equal(t, auth.DefaultAccessTokenTTL, empty.JWTServiceConfig().AccessTokenTTL)
}

func TestDatabaseSettingsAdapter(t *testing.T) {
	cfg := DatabaseConfig{
		Driver: "postgres",
		Postgres: DBAuthConfig{
			Enabled:  true,
			Host:     "db.example.com",
			Port:     5432,
			Database: "titoscorner",
			Username: "api",
			Password: "pw",
		},
	}

	settings := cfg.DatabaseSettings()
	require.Equal(t, "postgres", settings.Driver)
	require.Equal(t, "db.example.com", settings.Host)
	require.Equal(t, 5432, settings.Port)
	require.Equal(t, "titoscorner", settings.Name)
	require.Equal(t, "api", settings.User)
	require.Equal(t, "pw", settings.Password)
}
