package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Advisor   AdvisorConfig
	Refresher RefresherConfig
	Developer DeveloperConfig
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

// AdvisorConfig holds the upstream advisor endpoint and the resilience
// parameters of the fetch orchestrator. The timing defaults (2s watchdog,
// 3 attempts, 1s backoff base, 30s attempt timeout) are inherited from the
// original product behaviour and are deliberately overridable rather than
// compiled in; they have never been formally tuned.
type AdvisorConfig struct {
	// Endpoint is the GraphQL endpoint URL. There is no production default;
	// the local default exists for development only.
	Endpoint string

	// Token is the fallback bearer token, used when no credential has been
	// stored through the developer API.
	Token string

	// EncryptionKey is the base64 fernet key protecting stored credentials.
	EncryptionKey string

	Watchdog       time.Duration // primary-vs-fallback failover delay
	MaxAttempts    int           // fallback attempt budget
	BackoffBase    time.Duration // first retry delay, doubled per attempt
	AttemptTimeout time.Duration // per-attempt network timeout
}

// RefresherConfig holds the background warm-fetch schedule.
type RefresherConfig struct {
	Enabled bool
	Spec    string // cron spec, robfig/cron v3 syntax
}

// DeveloperConfig guards the developer/telemetry routes.
type DeveloperConfig struct {
	APIKey string // empty disables the guard (development mode)
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
			Path: getEnv("DB_PATH", "./data/advisor_gateway.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Advisor: AdvisorConfig{
			Endpoint:       getEnv("ADVISOR_ENDPOINT", "http://localhost:8000/graphql/"),
			Token:          getEnv("ADVISOR_TOKEN", ""),
			EncryptionKey:  getEnv("ADVISOR_ENCRYPTION_KEY", ""),
			Watchdog:       getEnvMillis("ADVISOR_WATCHDOG_MS", 2000),
			MaxAttempts:    getEnvInt("ADVISOR_MAX_ATTEMPTS", 3),
			BackoffBase:    getEnvMillis("ADVISOR_BACKOFF_BASE_MS", 1000),
			AttemptTimeout: getEnvMillis("ADVISOR_ATTEMPT_TIMEOUT_MS", 30000),
		},
		Refresher: RefresherConfig{
			Enabled: getEnvBool("REFRESHER_ENABLED", false),
			Spec:    getEnv("REFRESHER_SPEC", "@every 15m"),
		},
		Developer: DeveloperConfig{
			APIKey: getEnv("DEVELOPER_API_KEY", ""),
		},
	}

	if config.Advisor.MaxAttempts < 1 {
		return nil, fmt.Errorf("ADVISOR_MAX_ATTEMPTS must be at least 1, got %d", config.Advisor.MaxAttempts)
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

// getEnvInt gets an integer environment variable or returns a default value.
// Unparseable values fall back to the default.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvMillis gets a millisecond-valued environment variable as a duration.
func getEnvMillis(key string, defaultMillis int) time.Duration {
	return time.Duration(getEnvInt(key, defaultMillis)) * time.Millisecond
}

// getEnvBool gets a boolean environment variable or returns a default value.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
