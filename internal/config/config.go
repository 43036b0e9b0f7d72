package config

import (
	"os"
	"strconv"
	"time"

	"edakit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Export   ExportConfig
	Server   ServerConfig
	LogLevel string
}

// DatabaseConfig says where credentials live and which table to pull
type DatabaseConfig struct {
	CredentialsFile string
	Type            string
	Table           string
	ConnectTimeout  time.Duration
}

// ExportConfig holds output locations
type ExportConfig struct {
	OutputDir string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// Load reads configuration from environment variables and validates it.
// Call godotenv.Load first when a .env file should be honoured.
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			CredentialsFile: getEnvOrDefault("EDA_DB_CREDENTIALS", "credentials.yaml"),
			Type:            getEnvOrDefault("EDA_DB_TYPE", "postgres"),
			Table:           getEnvOrDefault("EDA_TABLE", "loan_payments"),
			ConnectTimeout:  getEnvDurationOrDefault("EDA_CONNECT_TIMEOUT", 10*time.Second),
		},
		Export: ExportConfig{
			OutputDir: getEnvOrDefault("EDA_OUTPUT_DIR", "."),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("EDA_SERVER_PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.Table == "" {
		return errors.ConfigInvalid("EDA_TABLE must not be empty")
	}
	if config.Database.ConnectTimeout <= 0 {
		return errors.ConfigInvalid("EDA_CONNECT_TIMEOUT must be positive")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("EDA_SERVER_PORT must be a number")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("15s") or bare seconds ("15")
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
