package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "APP_ENV", "LOG_LEVEL", "FRONTEND_URL", "STORAGE", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "DB_MAX_CONNS", "RUN_MIGRATIONS", "JWT_SECRET_KEY",
		"JWT_ACCESS_EXPIRATION_TIME", "PAY_PERIOD_CHECK_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, StoragePostgres, cfg.App.Storage)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.True(t, cfg.Database.RunMigrations)
	assert.Equal(t, "1h", cfg.JWT.AccessExpiration)
	assert.Equal(t, time.Hour, cfg.Scheduler.PayPeriodCheckInterval)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORAGE", "Memory")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_MAX_CONNS", "5")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("PAY_PERIOD_CHECK_INTERVAL", "15m")
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, StorageMemory, cfg.App.Storage)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, int32(5), cfg.Database.MaxConns)
	assert.False(t, cfg.Database.RunMigrations)
	assert.Equal(t, 15*time.Minute, cfg.Scheduler.PayPeriodCheckInterval)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"DB_PORT", "abc"},
		{"APP_PORT", "port"},
		{"DB_MAX_CONNS", "many"},
		{"RUN_MIGRATIONS", "sometimes"},
		{"PAY_PERIOD_CHECK_INTERVAL", "hourly"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database:  DatabaseConfig{Password: "pw"},
			JWT:       JWTConfig{Secret: "s", AccessExpiration: "1h"},
			App:       AppConfig{Storage: StoragePostgres},
			Scheduler: SchedulerConfig{PayPeriodCheckInterval: time.Hour},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, "JWT_SECRET_KEY"},
		{"bad expiration", func(c *Config) { c.JWT.AccessExpiration = "soon" }, "JWT_ACCESS_EXPIRATION_TIME"},
		{"missing db password", func(c *Config) { c.Database.Password = "" }, "DB_PASSWORD"},
		{"unknown storage", func(c *Config) { c.App.Storage = "redis" }, "STORAGE"},
		{"zero interval", func(c *Config) { c.Scheduler.PayPeriodCheckInterval = 0 }, "PAY_PERIOD_CHECK_INTERVAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.wantErr)
		})
	}

	t.Run("memory storage needs no db password", func(t *testing.T) {
		c := valid()
		c.App.Storage = StorageMemory
		c.Database.Password = ""
		assert.NoError(t, c.Validate())
	})
}

func TestConfig_DatabaseURL(t *testing.T) {
	c := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "app", Password: "p@ss", Name: "timesheet", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://app:p%40ss@db:5433/timesheet?sslmode=disable", c.DatabaseURL())
}
