package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "DB_DRIVER", "SESSION_CACHE", "SESSION_TTL", "NOTIFY_TIMEOUT",
		"CHAT_RATE_LIMIT", "SUPPORT_INBOX", "DB_MIGRATE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, SessionCacheOff, cfg.SessionCache)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 15*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 120, cfg.ChatRateLimit)
	assert.NotEmpty(t, cfg.SupportInbox)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SESSION_CACHE", "redis")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("SUPPORT_INBOX", "desk@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, SessionCacheRedis, cfg.SessionCache)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "desk@example.com", cfg.SupportInbox)
}

func TestValidate(t *testing.T) {
	valid := Config{DatabaseDriver: "postgres", SessionCache: SessionCacheOff, SupportInbox: "a@b.c"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }},
		{"unknown cache", func(c *Config) { c.SessionCache = "memcached" }},
		{"migrate without url", func(c *Config) { c.RunMigrations = true }},
		{"empty inbox", func(c *Config) { c.SupportInbox = " " }},
		{"negative rate", func(c *Config) { c.ChatRateLimit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLocationFallback(t *testing.T) {
	assert.Equal(t, time.UTC, Config{DisplayTimezone: "Not/AZone"}.Location())
}

func TestWarnings(t *testing.T) {
	cfg := Config{SessionCache: SessionCacheMemory}
	assert.Len(t, cfg.Warnings(), 3)

	cfg = Config{DatabaseURL: "postgres://x", SMTPHost: "smtp.example.com", SessionCache: SessionCacheRedis}
	assert.Empty(t, cfg.Warnings())
}
