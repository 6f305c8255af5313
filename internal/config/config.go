package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Database  DatabaseConfig
	JWT       JWTConfig
	Audit     AuditConfig
	Bootstrap BootstrapConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AuditConfig controls how audit-write failures are treated.
// With Strict=false the audit log is best-effort: a failed append never
// rolls back or fails the triggering request.
type AuditConfig struct {
	Strict bool
}

// BootstrapConfig holds the break-glass admin credential used for first-run
// setup. Disable it once a real admin exists.
type BootstrapConfig struct {
	Enabled  bool
	Email    string
	Alias    string
	Password string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		// A missing signing secret is a fatal misconfiguration, not something
		// to paper over with a default.
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	auditStrict, _ := strconv.ParseBool(getEnv("AUDIT_STRICT", "false"))
	bootstrapEnabled, _ := strconv.ParseBool(getEnv("BOOTSTRAP_ADMIN_ENABLED", "true"))

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      JWTConfig{Secret: jwtSecret},
		Audit:    AuditConfig{Strict: auditStrict},
		Bootstrap: BootstrapConfig{
			Enabled:  bootstrapEnabled,
			Email:    getEnv("BOOTSTRAP_ADMIN_EMAIL", "anish@ums.com"),
			Alias:    getEnv("BOOTSTRAP_ADMIN_ALIAS", "anish"),
			Password: getEnv("BOOTSTRAP_ADMIN_PASSWORD", "12345678"),
		},
	}

	if config.Bootstrap.Enabled {
		log.Println("⚠️ Bootstrap admin login is ENABLED (break-glass credential). Disable BOOTSTRAP_ADMIN_ENABLED once provisioned.")
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "ums"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://ums.example.edu"
	}
	return origins
}
