package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration with validation
type Config struct {
	// Application settings
	Port     int
	LogLevel string

	// Backend REST API
	Backend BackendConfig

	// Audit recorder
	Audit AuditConfig

	// Session cookie
	Session SessionConfig

	// Security settings
	Security SecurityConfig

	// Performance settings
	Server ServerConfig

	// Third-party CAPTCHA widget key rendered on the auth pages
	RecaptchaSiteKey string
}

// BackendConfig holds backend API client configuration
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AuditConfig holds audit recorder configuration
type AuditConfig struct {
	QueueSize   int
	PostTimeout time.Duration
}

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	Secret string
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	RateLimitRPS    int
	RateLimitBurst  int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	TrustedProxies  []string
}

// ServerConfig holds server performance configuration
type ServerConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

// LoadConfig loads and validates the configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:     getEnvAsInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", ""),
			Timeout: getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
		},

		Audit: AuditConfig{
			QueueSize:   getEnvAsInt("AUDIT_QUEUE_SIZE", 64),
			PostTimeout: getEnvAsDuration("AUDIT_POST_TIMEOUT", 5*time.Second),
		},

		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
		},

		Security: SecurityConfig{
			RateLimitRPS:    getEnvAsInt("RATE_LIMIT_RPS", 100),
			RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 200),
			RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
			TrustedProxies:  getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},

		Server: ServerConfig{
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1MB
		},

		RecaptchaSiteKey: getEnv("RECAPTCHA_SITE_KEY", ""),
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// validateConfig performs basic validation on the configuration
func validateConfig(config *Config) error {
	var errors []string

	if config.Backend.BaseURL == "" {
		errors = append(errors, "backend base URL is required")
	}
	if config.Session.Secret == "" {
		errors = append(errors, "session secret is required")
	}
	if config.Port < 1 || config.Port > 65535 {
		errors = append(errors, "port must be between 1 and 65535")
	}
	if config.Audit.QueueSize < 1 {
		errors = append(errors, "audit queue size must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
