package config

import (
	"os"
	"path/filepath"
	"strconv"

	"inflammation/internal"
	"inflammation/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Log     LogConfig
	Sources SourceConfig
	Output  OutputConfig
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// SourceConfig holds discovery patterns for each data format
type SourceConfig struct {
	CSVPattern  string
	JSONPattern string
	XLSXPattern string
	XLSXSheet   string
}

// OutputConfig holds presentation settings
type OutputConfig struct {
	Precision int
}

// Load reads an optional .env file, then configuration from environment
// variables, and validates it
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from environment variables only
func FromEnv() (*Config, error) {
	config := &Config{
		Log: LogConfig{
			Level: internal.ParseLogLevel(os.Getenv("LOG_LEVEL")),
		},
		Sources: SourceConfig{
			CSVPattern:  getEnvOrDefault("INFLAMMATION_CSV_PATTERN", "inflammation*.csv"),
			JSONPattern: getEnvOrDefault("INFLAMMATION_JSON_PATTERN", "inflammation*.json"),
			XLSXPattern: getEnvOrDefault("INFLAMMATION_XLSX_PATTERN", "inflammation*.xlsx"),
			XLSXSheet:   getEnvOrDefault("INFLAMMATION_XLSX_SHEET", "Sheet1"),
		},
		Output: OutputConfig{
			Precision: getEnvIntOrDefault("INFLAMMATION_PRECISION", 3),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: internal.LogLevelInfo},
		Sources: SourceConfig{
			CSVPattern:  "inflammation*.csv",
			JSONPattern: "inflammation*.json",
			XLSXPattern: "inflammation*.xlsx",
			XLSXSheet:   "Sheet1",
		},
		Output: OutputConfig{Precision: 3},
	}
}

func validateConfig(config *Config) error {
	patterns := map[string]string{
		"INFLAMMATION_CSV_PATTERN":  config.Sources.CSVPattern,
		"INFLAMMATION_JSON_PATTERN": config.Sources.JSONPattern,
		"INFLAMMATION_XLSX_PATTERN": config.Sources.XLSXPattern,
	}
	for key, pattern := range patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return errors.ConfigInvalid(key + " is not a valid glob pattern")
		}
	}
	if config.Sources.XLSXSheet == "" {
		return errors.ConfigInvalid("INFLAMMATION_XLSX_SHEET is required")
	}
	if config.Output.Precision < 0 {
		return errors.ConfigInvalid("INFLAMMATION_PRECISION must not be negative")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
