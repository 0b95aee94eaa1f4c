package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_DRIVER", "SESSION_TTL", "SESSION_STORE", "SEED_SAMPLE_DATA", "ALLOWED_ORIGINS", "SMTP_TIMEOUT", "SMTP_STARTTLS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.True(t, cfg.SeedSampleData)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.SMTPTimeout)
	assert.Equal(t, "opportunistic", cfg.SMTPStartTLS)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SEED_SAMPLE_DATA", "false")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://talents.example.com ,")

	cfg := Load()

	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.SeedSampleData)
	assert.Equal(t, []string{"http://localhost:5173", "https://talents.example.com"}, cfg.AllowedOrigins)
}

func TestLoad_IgnoresUnparsableValues(t *testing.T) {
	t.Setenv("SESSION_TTL", "a week")
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg := Load()

	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
}

func TestValidate(t *testing.T) {
	base := Config{StorageDriver: StorageMemory, SessionStore: SessionStoreMemory, SessionTTL: time.Hour}
	require.NoError(t, base.Validate())

	pg := base
	pg.StorageDriver = StoragePostgres
	assert.ErrorContains(t, pg.Validate(), "DATABASE_URL")

	rd := base
	rd.SessionStore = SessionStoreRedis
	assert.ErrorContains(t, rd.Validate(), "REDIS_URL")

	unknown := base
	unknown.StorageDriver = "mongo"
	assert.ErrorContains(t, unknown.Validate(), "unknown STORAGE_DRIVER")

	tlsPolicy := base
	tlsPolicy.SMTPStartTLS = "sometimes"
	assert.ErrorContains(t, tlsPolicy.Validate(), "SMTP_STARTTLS")

	admin := base
	admin.AdminEmail = "admin@example.com"
	assert.ErrorContains(t, admin.Validate(), "ADMIN_PASSWORD")
}
