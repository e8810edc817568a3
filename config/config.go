// Package config provides centralized configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Security SecurityConfig `json:"security"`
	Logging  LoggingConfig  `json:"logging"`
	Engine   EngineConfig   `json:"engine"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
	Development  bool          `json:"development"` // controls whether stack traces are returned to clients
}

// DatabaseConfig holds database configuration for the optional Postgres-backed store
type DatabaseConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	User         string        `json:"user"`
	Password     string        `json:"password"`
	Database     string        `json:"database"`
	SSLMode      string        `json:"ssl_mode"`
	MaxOpenConns int           `json:"max_open_conns"`
	MaxIdleConns int           `json:"max_idle_conns"`
	MaxLifetime  time.Duration `json:"max_lifetime"`
	Enabled      bool          `json:"enabled"` // false selects the in-memory store instead
}

// SecurityConfig holds HTTP-layer security configuration
type SecurityConfig struct {
	RateLimitMax       float64       `json:"rate_limit_max"`
	RateLimitBurst     int           `json:"rate_limit_burst"`
	CORSAllowedOrigins []string      `json:"cors_allowed_origins"`
	RequestTimeout     time.Duration `json:"request_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `json:"level"`
	ServiceName string `json:"service_name"`
	Environment string `json:"environment"`
}

// EngineConfig holds rule-engine and refactor-engine tuning knobs (spec §4.3, §4.4)
type EngineConfig struct {
	RuleTimeout              time.Duration `json:"rule_timeout"`
	MaxSuggestionsPerViolation int         `json:"max_suggestions_per_violation"`
	EnableAutoFix             bool         `json:"enable_auto_fix"`
	MinConfidenceForAutoFix   int          `json:"min_confidence_for_auto_fix"`
	RulesConfigFile           string       `json:"rules_config_file"` // optional YAML override, empty disables
}

// Load loads configuration from environment variables and an optional JSON config file.
func Load() (*Config, error) {
	config := &Config{}

	if configFile := os.Getenv("CONFIG_FILE"); configFile != "" {
		if err := loadFromFile(configFile, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	loadFromEnv(config)
	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadFromFile(filename string, config *Config) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	return decoder.Decode(config)
}

func loadFromEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if os.Getenv("DEVELOPMENT") == "true" {
		config.Server.Development = true
	}

	if host := os.Getenv("DB_HOST"); host != "" {
		config.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Database.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.Database.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.Database.Password = password
	}
	if database := os.Getenv("DB_NAME"); database != "" {
		config.Database.Database = database
	}
	if os.Getenv("DB_ENABLED") == "true" {
		config.Database.Enabled = true
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		config.Security.CORSAllowedOrigins = strings.Split(origins, ",")
	}

	if v := os.Getenv("RULE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			config.Engine.RuleTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("MAX_SUGGESTIONS_PER_VIOLATION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Engine.MaxSuggestionsPerViolation = n
		}
	}
	if os.Getenv("ENABLE_AUTO_FIX") == "true" {
		config.Engine.EnableAutoFix = true
	}
	if v := os.Getenv("MIN_CONFIDENCE_FOR_AUTO_FIX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Engine.MinConfidenceForAutoFix = n
		}
	}
	if v := os.Getenv("RULES_CONFIG_FILE"); v != "" {
		config.Engine.RulesConfigFile = v
	}
}

func setDefaults(config *Config) {
	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 30 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 30 * time.Second
	}
	if config.Server.IdleTimeout == 0 {
		config.Server.IdleTimeout = 120 * time.Second
	}

	if config.Database.Host == "" {
		config.Database.Host = "localhost"
	}
	if config.Database.Port == 0 {
		config.Database.Port = 5432
	}
	if config.Database.User == "" {
		config.Database.User = "postgres"
	}
	if config.Database.Database == "" {
		config.Database.Database = "sentinelrefactor"
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = "disable"
	}
	if config.Database.MaxOpenConns == 0 {
		config.Database.MaxOpenConns = 25
	}
	if config.Database.MaxIdleConns == 0 {
		config.Database.MaxIdleConns = 5
	}
	if config.Database.MaxLifetime == 0 {
		config.Database.MaxLifetime = 5 * time.Minute
	}

	if config.Security.RateLimitMax == 0 {
		config.Security.RateLimitMax = 100
	}
	if config.Security.RateLimitBurst == 0 {
		config.Security.RateLimitBurst = 10
	}
	if len(config.Security.CORSAllowedOrigins) == 0 {
		config.Security.CORSAllowedOrigins = []string{"*"}
	}
	if config.Security.RequestTimeout == 0 {
		config.Security.RequestTimeout = 30 * time.Second
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.ServiceName == "" {
		config.Logging.ServiceName = "sentinel-refactor"
	}
	if config.Logging.Environment == "" {
		config.Logging.Environment = "development"
	}

	if config.Engine.RuleTimeout == 0 {
		config.Engine.RuleTimeout = 5000 * time.Millisecond
	}
	if config.Engine.MaxSuggestionsPerViolation == 0 {
		config.Engine.MaxSuggestionsPerViolation = 3
	}
	if config.Engine.MinConfidenceForAutoFix == 0 {
		config.Engine.MinConfidenceForAutoFix = 80
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Database.MaxOpenConns < config.Database.MaxIdleConns {
		return fmt.Errorf("max_open_conns must be >= max_idle_conns")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[config.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	if config.Engine.RuleTimeout <= 0 {
		return fmt.Errorf("engine.rule_timeout must be positive")
	}
	if config.Engine.MaxSuggestionsPerViolation <= 0 {
		return fmt.Errorf("engine.max_suggestions_per_violation must be positive")
	}
	if config.Engine.MinConfidenceForAutoFix < 0 || config.Engine.MinConfidenceForAutoFix > 100 {
		return fmt.Errorf("engine.min_confidence_for_auto_fix must be in [0,100]")
	}

	return nil
}

// GetDSN returns the database connection string for the Postgres-backed store.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddr returns the server listen address.
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsDevelopment reports whether stack traces should be included in error responses.
func (c *Config) IsDevelopment() bool {
	return c.Server.Development
}
