// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Storage       StorageConfig       `yaml:"storage"`
	Dataset       DatasetConfig       `yaml:"dataset"`
	Allocation    AllocationConfig    `yaml:"allocation"`
	API           APIConfig           `yaml:"api"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// DatasetConfig controls the snapshot the engine reads
type DatasetConfig struct {
	// RetentionYears is how many prior calendar years to keep besides the
	// current one. 1 means "current and prior year".
	RetentionYears int `yaml:"retention_years"`
	// CacheTTLMinutes is how long a snapshot is served before it is
	// rebuilt from storage.
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"`
}

// CacheTTL returns the snapshot cache lifetime.
func (d DatasetConfig) CacheTTL() time.Duration {
	return time.Duration(d.CacheTTLMinutes) * time.Minute
}

// AllocationConfig holds allocation policy settings
type AllocationConfig struct {
	// MinProportionPercent is the significance threshold for the
	// proportions endpoint default. Allocation itself always uses the
	// engine policy constant.
	MinProportionPercent float64 `yaml:"min_proportion_percent"`
}

// APIConfig holds HTTP server configuration
type APIConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${LEDGER_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	cfg := defaults()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := defaults()
	cfg.Storage.DatabasePath = getEnv("LEDGER_DB_PATH", cfg.Storage.DatabasePath)
	cfg.Dataset.RetentionYears = getEnvInt("DATASET_RETENTION_YEARS", cfg.Dataset.RetentionYears)
	cfg.Dataset.CacheTTLMinutes = getEnvInt("DATASET_CACHE_TTL_MINUTES", cfg.Dataset.CacheTTLMinutes)
	cfg.API.Port = getEnvInt("API_PORT", cfg.API.Port)
	if origins := os.Getenv("API_ALLOWED_ORIGINS"); origins != "" {
		cfg.API.AllowedOrigins = splitAndTrim(origins)
	}
	cfg.Observability.Logging.Level = getEnv("LOG_LEVEL", cfg.Observability.Logging.Level)
	cfg.Observability.Logging.Format = getEnv("LOG_FORMAT", cfg.Observability.Logging.Format)
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from the specified path, falls back to
// environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

func defaults() *Config {
	return &Config{
		Storage: StorageConfig{
			DatabasePath: "checkout_ledger.db",
		},
		Dataset: DatasetConfig{
			RetentionYears:  1,
			CacheTTLMinutes: 60,
		},
		Allocation: AllocationConfig{
			MinProportionPercent: 1.0,
		},
		API: APIConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		},
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

func splitAndTrim(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
