package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment names recognized in ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Token lifetimes are fixed, matching the cookie Max-Age contract.
const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 365 * 24 * time.Hour
)

// Config holds application level configuration loaded once at startup and
// passed by injection. There are no global lookups after Load.
type Config struct {
	Env         string
	Port        string
	ServerURL   string
	FrontendURL string

	DatabaseURI string

	RedisAddr string
	RedisPass string
	RedisDB   int

	EmailAPIKey string
	EmailFrom   string

	AccessTokenSecret  string
	RefreshTokenSecret string

	RateLimitPoints   int
	RateLimitDuration time.Duration
}

// Load builds Config from a .env overlay (if present) and the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set vars directly.
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getEnv("ENV", EnvDevelopment),
		Port:        getEnv("PORT", "3000"),
		ServerURL:   getEnv("SERVER_URL", "http://localhost:3000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		DatabaseURI: getEnv("DATABASE_URI", "mongodb://localhost:27017/authbase"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		EmailAPIKey: os.Getenv("EMAIL_SERVICE_API_KEY"),
		EmailFrom:   getEnv("EMAIL_FROM", "Authbase <onboarding@resend.dev>"),

		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", "change-me"),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", "change-me-too"),

		RateLimitPoints:   getEnvInt("RATE_LIMIT_POINTS", 10),
		RateLimitDuration: time.Duration(getEnvInt("RATE_LIMIT_DURATION_SECONDS", 60)) * time.Second,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := url.Parse(c.ServerURL); err != nil {
		return fmt.Errorf("SERVER_URL is not a valid URL: %w", err)
	}
	if c.Env != EnvProduction {
		return nil
	}
	// Defaults are acceptable in development only.
	if c.AccessTokenSecret == "change-me" || c.RefreshTokenSecret == "change-me-too" {
		return fmt.Errorf("token secrets must be set in production")
	}
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return fmt.Errorf("access and refresh token secrets must differ")
	}
	return nil
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// CookieDomain derives the cookie domain from the configured server URL.
func (c *Config) CookieDomain() string {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
