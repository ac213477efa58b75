package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Quote     QuoteConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// QuoteConfig holds market-data provider configuration. EncryptionKey is a
// base64 fernet key used to protect the provider API token at rest; quotes
// still work without it as long as no token is configured.
type QuoteConfig struct {
	EncryptionKey string
}

// SchedulerConfig holds cron schedules for the background jobs.
type SchedulerConfig struct {
	Enabled        bool
	QuoteSpec      string // daily mark-price refresh
	MonthCloseSpec string // recap computation for the closed month
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/finance_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost"), ","),
		},
		Quote: QuoteConfig{
			EncryptionKey: getEnv("QUOTE_ENCRYPTION_KEY", ""),
		},
		Scheduler: SchedulerConfig{
			Enabled:        getEnv("SCHEDULER_ENABLED", "true") == "true",
			QuoteSpec:      getEnv("SCHEDULER_QUOTE_SPEC", "0 6 * * *"),
			MonthCloseSpec: getEnv("SCHEDULER_MONTH_CLOSE_SPEC", "30 0 1 * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
