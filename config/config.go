// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/artpar/admingate/core/options"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig                       `yaml:"server"`
	Database  DatabaseConfig                     `yaml:"database"`
	Branding  BrandingConfig                     `yaml:"branding"`
	Auth      AuthConfig                         `yaml:"auth"`
	Logging   LoggingConfig                      `yaml:"logging"`
	Metrics   MetricsConfig                      `yaml:"metrics"`
	Resources map[string]options.ResourceOptions `yaml:"resources"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig configures the datasource the admin panel introspects.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite" or "memory"
	DSN    string `yaml:"dsn"`
	Name   string `yaml:"name"` // database name shown in the panel
}

// BrandingConfig configures the panel identity.
type BrandingConfig struct {
	CompanyName string `yaml:"company_name"`
	RootPath    string `yaml:"root_path"`
	Logo        string `yaml:"logo,omitempty"`
}

// AuthConfig configures admin authentication.
type AuthConfig struct {
	SessionSecret string          `yaml:"session_secret"`
	SessionTTL    time.Duration   `yaml:"session_ttl"`
	Accounts      []AccountConfig `yaml:"accounts"`
}

// AccountConfig is a single admin account.
type AccountConfig struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"` // bcrypt hash
	Role         string `yaml:"role,omitempty"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // Enable /metrics endpoint
	Path    string `yaml:"path"`    // Custom path (default: /metrics)
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(&cfg)

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies ADMINGATE_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	// Server configuration
	if v := os.Getenv("ADMINGATE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("ADMINGATE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ADMINGATE_SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("ADMINGATE_SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	// Database configuration
	if v := os.Getenv("ADMINGATE_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("ADMINGATE_DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("ADMINGATE_DATABASE_NAME"); v != "" {
		cfg.Database.Name = v
	}

	// Branding configuration
	if v := os.Getenv("ADMINGATE_COMPANY_NAME"); v != "" {
		cfg.Branding.CompanyName = v
	}
	if v := os.Getenv("ADMINGATE_ROOT_PATH"); v != "" {
		cfg.Branding.RootPath = v
	}

	// Auth configuration
	if v := os.Getenv("ADMINGATE_SESSION_SECRET"); v != "" {
		cfg.Auth.SessionSecret = v
	}
	if v := os.Getenv("ADMINGATE_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Auth.SessionTTL = d
		}
	}

	// Logging configuration
	if v := os.Getenv("ADMINGATE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ADMINGATE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	// Metrics configuration
	if v := os.Getenv("ADMINGATE_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("ADMINGATE_METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "admingate.db"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = cfg.Database.Driver
	}

	if cfg.Branding.CompanyName == "" {
		cfg.Branding.CompanyName = "Admingate"
	}
	if cfg.Branding.RootPath == "" {
		cfg.Branding.RootPath = "/admin"
	}

	if cfg.Auth.SessionTTL == 0 {
		cfg.Auth.SessionTTL = 24 * time.Hour
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func validate(cfg *Config) error {
	validDrivers := map[string]bool{"sqlite": true, "memory": true}
	if !validDrivers[cfg.Database.Driver] {
		return fmt.Errorf("database.driver must be 'sqlite' or 'memory', got %q", cfg.Database.Driver)
	}
	if cfg.Database.Driver == "sqlite" && cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when database.driver is 'sqlite'")
	}

	if !strings.HasPrefix(cfg.Branding.RootPath, "/") {
		return fmt.Errorf("branding.root_path must start with '/', got %q", cfg.Branding.RootPath)
	}

	if len(cfg.Auth.Accounts) > 0 && cfg.Auth.SessionSecret == "" {
		return fmt.Errorf("auth.session_secret is required when auth.accounts is set")
	}
	for i, acc := range cfg.Auth.Accounts {
		if acc.Email == "" {
			return fmt.Errorf("auth.accounts[%d].email is required", i)
		}
		if acc.PasswordHash == "" {
			return fmt.Errorf("auth.accounts[%d].password_hash is required", i)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	return nil
}
