// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Server  ServerConfig
	Data    DataConfig
	Admin   AdminConfig
	Auth    AuthConfig
	Catalog CatalogConfig
	CORS    CORSConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// DataConfig holds document store configuration.
type DataConfig struct {
	// Dir is the directory holding the badger database files.
	Dir string
}

// AdminConfig holds the administrator account configuration.
// The password is hashed at startup; the plaintext never leaves config.
type AdminConfig struct {
	Username string
	Password string
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key for session tokens (32 bytes)
	TokenKey []byte
	// TokenDuration is the admin session lifetime (default: 12h)
	TokenDuration time.Duration
}

// CatalogConfig holds catalog-level configuration.
type CatalogConfig struct {
	// AllowedTags is the controlled tag vocabulary for books.
	AllowedTags []string
}

// CORSConfig holds cross-origin configuration for the admin frontend.
type CORSConfig struct {
	AllowedOrigins []string
}

// DefaultTags is the built-in tag vocabulary, used when CATALOG_TAGS is unset.
var DefaultTags = []string{
	"Science Fiction",
	"Fantasy",
	"Mystery",
	"Historical",
	"Romance",
	"Non-fiction",
	"Biography",
	"Young Adult",
	"Horror",
	"Adventure",
	"Classic",
	"Thriller",
	"Humor",
	"Political",
	"Novella",
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataDir := flag.String("data-dir", "", "Directory for the document store")
	adminUsername := flag.String("admin-username", "", "Administrator username")
	adminPassword := flag.String("admin-password", "", "Administrator password")

	// Auth flags
	tokenDuration := flag.String("token-duration", "", "Admin session lifetime (e.g., 12h)")

	// Server flags
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	// Parse flags but don't exit on error - we want to handle it gracefully.
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Data: DataConfig{
			Dir: getConfigValue(*dataDir, "DATA_DIR", ""),
		},
		Admin: AdminConfig{
			Username: getConfigValue(*adminUsername, "ADMIN_USERNAME", "admin"),
			Password: getConfigValue(*adminPassword, "ADMIN_PASSWORD", ""),
		},
		Auth: AuthConfig{
			TokenKey: nil, // Set by auth.LoadOrGenerateKey in main.
		},
		Catalog: CatalogConfig{
			AllowedTags: getListConfigValue("", "CATALOG_TAGS", DefaultTags),
		},
		CORS: CORSConfig{
			AllowedOrigins: getListConfigValue(*corsOrigins, "CORS_ORIGINS", []string{"*"}),
		},
	}

	// Parse auth duration.
	tokenDurationStr := getConfigValue(*tokenDuration, "TOKEN_DURATION", "12h")
	duration, err := time.ParseDuration(tokenDurationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid token duration %q: %w", tokenDurationStr, err)
	}
	cfg.Auth.TokenDuration = duration

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	// Expand and validate the data directory.
	if err := cfg.expandDataDir(); err != nil {
		return nil, fmt.Errorf("invalid data dir: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.Dir == "" {
		return errors.New("data dir cannot be empty after expansion")
	}

	if c.Admin.Username == "" {
		return errors.New("ADMIN_USERNAME is required")
	}
	if c.Admin.Password == "" {
		return errors.New("ADMIN_PASSWORD is required")
	}

	if len(c.Catalog.AllowedTags) == 0 {
		return errors.New("catalog tag vocabulary cannot be empty")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataDir expands ~ and makes the path absolute.
// Defaults to ~/PageKeep/data if not specified.
func (c *Config) expandDataDir() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "PageKeep", "data")

	expanded, err := expandPath(c.Data.Dir, defaultPath)
	if err != nil {
		return err
	}
	c.Data.Dir = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getListConfigValue returns a comma-separated list from flag, env var, or default.
// Entries are trimmed; empty entries are dropped.
func getListConfigValue(flagValue, envKey string, defaultValue []string) []string {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	parts := strings.Split(strValue, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
