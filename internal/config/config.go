package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Logger   LoggerConfig
	Issuer   IssuerConfig
}

// DatabaseConfig holds SQLite storage configuration
type DatabaseConfig struct {
	Path        string
	BusyTimeout time.Duration
}

// IssuerConfig holds card issuing configuration
type IssuerConfig struct {
	BIN         string
	PINLength   int
	MaxAttempts int
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string // debug, info, warn, error
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Path:        getEnv("CARDBANK_DB_PATH", "card.db"),
			BusyTimeout: getEnvAsDuration("CARDBANK_DB_BUSY_TIMEOUT", "5s"),
		},
		Issuer: IssuerConfig{
			BIN:         getEnv("ISSUER_BIN", "400000"),
			PINLength:   getEnvAsInt("PIN_LENGTH", 4),
			MaxAttempts: getEnvAsInt("GEN_MAX_ATTEMPTS", 1000),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if len(c.Issuer.BIN) == 0 || len(c.Issuer.BIN) >= 16 {
		return fmt.Errorf("issuer BIN must be 1-15 digits, got %q", c.Issuer.BIN)
	}
	for _, r := range c.Issuer.BIN {
		if r < '0' || r > '9' {
			return fmt.Errorf("issuer BIN must contain only digits, got %q", c.Issuer.BIN)
		}
	}

	// PINs are drawn without digit repetition, so ten digits is the ceiling.
	if c.Issuer.PINLength < 1 || c.Issuer.PINLength > 10 {
		return fmt.Errorf("pin length must be between 1 and 10, got %d", c.Issuer.PINLength)
	}

	if c.Issuer.MaxAttempts < 1 {
		return fmt.Errorf("issuer max attempts must be positive, got %d", c.Issuer.MaxAttempts)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// DSN returns the SQLite connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"%s?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=%d&_synchronous=NORMAL",
		c.Path, c.BusyTimeout.Milliseconds(),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to parsing the default if provided value is invalid
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}
