// Package config provides a startup guard against insecure production
// defaults, separate from the main config package to keep the check
// reusable without pulling in the full Config struct.
package config

import (
	"log"
	"os"
	"strings"
)

// ProductionConfig is the subset of settings this guard checks.
type ProductionConfig struct {
	CORSOrigin  string
	DatabaseURL string
}

// ValidateProductionConfig fails startup if insecure defaults are still
// active when ENVIRONMENT=production. No-op otherwise.
func ValidateProductionConfig(config *ProductionConfig) {
	env := getEnv("ENVIRONMENT", "development")
	if env != "production" {
		return
	}

	var errors []string

	if config.CORSOrigin == "*" {
		errors = append(errors, "CORS_ALLOWED_ORIGINS cannot be '*' in production")
	}
	if strings.Contains(config.DatabaseURL, "sslmode=disable") {
		errors = append(errors, "database connection must use SSL (sslmode=require) in production")
	}
	if strings.Contains(config.DatabaseURL, "password=postgres ") {
		errors = append(errors, "database password must not be the default")
	}

	if len(errors) > 0 {
		log.Fatalf("production configuration errors:\n%s", strings.Join(errors, "\n"))
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
