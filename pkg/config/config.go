package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"talentdesk-backend/pkg/smtp"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Port string

	StorageDriver string
	DatabaseURL   string
	SQLitePath    string

	SessionSecret    string
	SessionTTL       time.Duration
	SessionStore     string
	RedisURL         string
	SessionSweepSpec string
	CookieSecure     bool

	SeedSampleData bool
	AdminEmail     string
	AdminPassword  string

	AllowedOrigins []string

	LogLevel  string
	LogFormat string

	SMTPTimeout  time.Duration
	SMTPStartTLS string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		SQLitePath:       getEnv("SQLITE_PATH", "talents.db"),
		SessionSecret:    getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
		SessionTTL:       getDuration("SESSION_TTL", 168*time.Hour), // one week
		SessionStore:     strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
		RedisURL:         getEnv("REDIS_URL", ""),
		SessionSweepSpec: getEnv("SESSION_SWEEP_SPEC", "@every 10m"),
		CookieSecure:     getBool("COOKIE_SECURE", false),
		SeedSampleData:   getBool("SEED_SAMPLE_DATA", true),
		AdminEmail:       getEnv("ADMIN_EMAIL", ""),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
		SMTPTimeout:      getDuration("SMTP_TIMEOUT", 30*time.Second),
		SMTPStartTLS:     strings.ToLower(getEnv("SMTP_STARTTLS", string(smtp.StartTLSOpportunistic))),
	}
}

// Validate reports settings that cannot work together
func (c *Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis session store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if _, err := smtp.ParseStartTLSPolicy(c.SMTPStartTLS); err != nil {
		errs = append(errs, fmt.Errorf("SMTP_STARTTLS: %w", err))
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
