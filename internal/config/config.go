package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Session cache backends.
const (
	SessionCacheOff    = "off"
	SessionCacheMemory = "memory"
	SessionCacheRedis  = "redis"
)

type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"*"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Database. An empty DatabaseURL selects the in-memory store seeded from FixturesPath.
	DatabaseDriver string `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL    string `env:"DB_URL"`
	RunMigrations  bool   `env:"DB_MIGRATE" envDefault:"false"`
	FixturesPath   string `env:"FIXTURES_PATH"`

	// Chat engine
	CatalogPath        string `env:"CHAT_CATALOG_PATH"`
	SupportInbox       string `env:"SUPPORT_INBOX" envDefault:"support-desk@ticketdesk.example"`
	PublicSupportEmail string `env:"PUBLIC_SUPPORT_EMAIL" envDefault:"help@ticketdesk.example"`
	Currency           string `env:"CURRENCY" envDefault:"INR"`
	DisplayTimezone    string `env:"DISPLAY_TIMEZONE" envDefault:"UTC"`

	// Outbound mail
	SMTPHost      string        `env:"SMTP_HOST"`
	SMTPPort      int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername  string        `env:"SMTP_USERNAME"`
	SMTPPassword  string        `env:"SMTP_PASSWORD"`
	MailFrom      string        `env:"MAIL_FROM" envDefault:"no-reply@ticketdesk.example"`
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"15s"`

	// Opt-in session state cache
	SessionCache  string        `env:"SESSION_CACHE" envDefault:"off"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`

	// Requests per minute per client IP on the chat endpoint; 0 disables limiting.
	ChatRateLimit int `env:"CHAT_RATE_LIMIT" envDefault:"120"`
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	cfg.SessionCache = strings.ToLower(strings.TrimSpace(cfg.SessionCache))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Warnings lists settings that work but degrade the service. They are
// returned rather than logged so the caller can configure logging first.
func (c Config) Warnings() []string {
	var out []string
	if c.DatabaseURL == "" {
		out = append(out, "DB_URL is not set; using the in-memory store")
	}
	if c.SMTPHost == "" {
		out = append(out, "SMTP_HOST is not set; support notifications will only be logged")
	}
	if c.SessionCache == SessionCacheMemory {
		out = append(out, "SESSION_CACHE=memory does not share sessions between replicas")
	}
	return out
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DatabaseDriver)
	}
	switch c.SessionCache {
	case SessionCacheOff, SessionCacheMemory, SessionCacheRedis:
	default:
		return fmt.Errorf("unsupported SESSION_CACHE %q", c.SessionCache)
	}
	if c.RunMigrations && c.DatabaseURL == "" {
		return fmt.Errorf("DB_MIGRATE requires DB_URL")
	}
	if strings.TrimSpace(c.SupportInbox) == "" {
		return fmt.Errorf("SUPPORT_INBOX must not be empty")
	}
	if c.ChatRateLimit < 0 {
		return fmt.Errorf("CHAT_RATE_LIMIT must not be negative")
	}
	return nil
}

// Location returns the display timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.DisplayTimezone); err == nil {
		return loc
	}
	return time.UTC
}
