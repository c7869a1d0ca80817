package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the practice harness
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Base URL the wizard client points at
	BaseURL string

	// Session configuration
	Session SessionConfig

	// Practice account
	Admin AdminConfig

	// Seat grid generation
	Seating SeatingConfig

	// Performance dates offered to the wizard
	Shows ShowsConfig

	// Challenge configuration
	Captcha CaptchaConfig

	// Payment overlay configuration
	Payment PaymentConfig

	// Redis configuration (optional captcha-store backend)
	Redis RedisConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Logging
	LogLevel string
}

// SessionConfig holds session token configuration
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
}

// AdminConfig holds the single practice credential pair
type AdminConfig struct {
	Username string
	Password string
}

// SeatingConfig holds seat grid generation parameters
type SeatingConfig struct {
	Rows          int
	Cols          int
	BookedPercent int
}

// ShowsConfig holds the date labels returned by /api/dates
type ShowsConfig struct {
	Dates []string
}

// CaptchaConfig holds challenge issue parameters
type CaptchaConfig struct {
	TTL        time.Duration
	CookieName string
}

// PaymentConfig holds payment overlay parameters
type PaymentConfig struct {
	// LoadDelay is the fixed loading-to-ready delay of the payment overlay.
	// Deterministic elapsed time, not I/O-dependent, so automation can rely
	// on it as an explicit-wait exercise.
	LoadDelay   time.Duration
	PollTimeout time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool
	WindowDuration time.Duration
	Requests       int
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		Session: SessionConfig{
			Secret:     getEnv("JWT_SECRET", "tixground-practice-secret"),
			TTL:        getDurationEnv("SESSION_TTL", 24*time.Hour),
			CookieName: getEnv("SESSION_COOKIE", "session_token"),
		},

		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "1234"),
		},

		Seating: SeatingConfig{
			Rows:          getIntEnv("SEAT_ROWS", 10),
			Cols:          getIntEnv("SEAT_COLS", 10),
			BookedPercent: getIntEnv("SEAT_BOOKED_PERCENT", 30),
		},

		Shows: ShowsConfig{
			Dates: getStringSliceEnv("SHOW_DATES", []string{"2025-12-24", "2025-12-25", "2026-01-01"}),
		},

		Captcha: CaptchaConfig{
			TTL:        getDurationEnv("CAPTCHA_TTL", 5*time.Minute),
			CookieName: getEnv("CAPTCHA_COOKIE", "captcha_id"),
		},

		Payment: PaymentConfig{
			LoadDelay:   getDurationEnv("PAYMENT_LOAD_DELAY", 1500*time.Millisecond),
			PollTimeout: getDurationEnv("PAYMENT_POLL_TIMEOUT", 25*time.Second),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},

		RateLimit: RateLimitConfig{
			Enabled:        getBoolEnv("RATE_LIMIT_ENABLED", false),
			WindowDuration: getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			Requests:       getIntEnv("RATE_LIMIT_REQUESTS", 120),
		},

		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	if cfg.Redis.Host != "" {
		cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port
	}

	return cfg
}

// RedisEnabled reports whether an external captcha store is configured
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
