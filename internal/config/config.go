package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service Ports
	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Database
	DBDriver    string `env:"DB_DRIVER" default:"sqlite"`
	DatabaseURL string `env:"DATABASE_URL" default:"./data/bookhub.db"`
	DBMaxConns  int    `env:"DB_MAX_CONNS" default:"8"`

	// Cache
	CacheDriver   string        `env:"CACHE_DRIVER" default:"memory"`
	RedisURL      string        `env:"REDIS_URL" default:"redis://localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	BooksCacheTTL time.Duration `env:"BOOKS_CACHE_TTL" default:"30m"`

	// Admin authentication (book management routes are disabled when empty)
	JWTSecret string `env:"JWT_SECRET"`

	// Reservation rate limiting per client IP, 0 disables it
	ReserveRateLimit float64 `env:"RESERVE_RATE_LIMIT" default:"5"`
	ReserveRateBurst int     `env:"RESERVE_RATE_BURST" default:"10"`

	// Development
	LogLevel           string `env:"LOG_LEVEL" default:"info"`
	LogFormat          string `env:"LOG_FORMAT" default:"text"`
	ExposeErrorDetails bool   `env:"EXPOSE_ERROR_DETAILS" default:"true"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env file is fine, system env vars still apply
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	config := &Config{}

	loadEnvString(&config.GoEnv, "GO_ENV", "development")

	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}

	// Database
	loadEnvString(&config.DBDriver, "DB_DRIVER", "sqlite")
	loadEnvString(&config.DatabaseURL, "DATABASE_URL", "./data/bookhub.db")
	if err := loadEnvInt(&config.DBMaxConns, "DB_MAX_CONNS", 8); err != nil {
		return nil, err
	}

	// Cache
	loadEnvString(&config.CacheDriver, "CACHE_DRIVER", "memory")
	loadEnvString(&config.RedisURL, "REDIS_URL", "redis://localhost:6379")
	loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", "")
	if err := loadEnvDuration(&config.BooksCacheTTL, "BOOKS_CACHE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}

	loadEnvString(&config.JWTSecret, "JWT_SECRET", "")

	if err := loadEnvFloat(&config.ReserveRateLimit, "RESERVE_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.ReserveRateBurst, "RESERVE_RATE_BURST", 10); err != nil {
		return nil, err
	}

	// Development
	loadEnvString(&config.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "text")
	if err := loadEnvBool(&config.ExposeErrorDetails, "EXPOSE_ERROR_DETAILS", true); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion
func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validDrivers := []string{"postgres", "sqlite"}
	if !contains(validDrivers, c.DBDriver) {
		errors = append(errors, fmt.Sprintf("DB_DRIVER must be one of: %s", strings.Join(validDrivers, ", ")))
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		errors = append(errors, "DATABASE_URL must not be empty")
	}
	if c.DBMaxConns < 1 {
		errors = append(errors, "DB_MAX_CONNS must be at least 1")
	}

	validCacheDrivers := []string{"redis", "memory"}
	if !contains(validCacheDrivers, c.CacheDriver) {
		errors = append(errors, fmt.Sprintf("CACHE_DRIVER must be one of: %s", strings.Join(validCacheDrivers, ", ")))
	}
	if c.BooksCacheTTL <= 0 {
		errors = append(errors, "BOOKS_CACHE_TTL must be positive")
	}

	if c.ReserveRateLimit < 0 {
		errors = append(errors, "RESERVE_RATE_LIMIT must not be negative")
	}
	if c.ReserveRateLimit > 0 && c.ReserveRateBurst < 1 {
		errors = append(errors, "RESERVE_RATE_BURST must be at least 1 when rate limiting is enabled")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	// An empty secret disables admin routes; a short one is rejected
	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// AdminEnabled reports whether the book management routes should be mounted.
func (c *Config) AdminEnabled() bool {
	return c.JWTSecret != ""
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
