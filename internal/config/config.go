package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting for the service. It is loaded once at
// process start and passed by reference to the components that need it.
type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP
	HTTPPort       int           `env:"HTTP_PORT" default:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"5s"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Authentication
	JWTSecret       string        `env:"JWT_SECRET" required:"true"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" default:"168h"`

	// Redis cache (optional; empty address disables caching)
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" default:"1h"`

	// External APIs
	CoinGeckoAPIURL string `env:"COINGECKO_API_URL" default:"https://api.coingecko.com/api/v3"`
	CoinGeckoAPIKey string `env:"COINGECKO_API_KEY"`

	// Development
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// LoadConfig loads configuration from environment variables, optionally
// seeded from a .env file in the working directory.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		// A missing .env file is fine, system env vars still apply.
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}

	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RequestTimeout, "REQUEST_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}

	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RefreshTokenTTL, "REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}

	if err := loadEnvString(&config.RedisAddr, "REDIS_ADDR", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", ""); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.CacheTTL, "CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}

	if err := loadEnvString(&config.CoinGeckoAPIURL, "COINGECKO_API_URL", "https://api.coingecko.com/api/v3"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.CoinGeckoAPIKey, "COINGECKO_API_KEY", ""); err != nil {
		return nil, err
	}

	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
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
	var errs []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET should be at least 32 characters long")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
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

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
