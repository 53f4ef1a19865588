package app

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	StoreDriver  string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile string // Optional: SQLite database file (default: ./finlink.db)
	DatabaseURL  string // Required with postgres: connection string

	UseRealAPI       bool          // Default gateway mode until settings are saved (default: false)
	APIURL           string        // Default backend URL until settings are saved
	GatewayTimeout   time.Duration // Per-call backend timeout (default: 10s)
	GatewayMode      string        // fallback or strict (default: fallback)
	WidgetMode       string        // simulated or hosted (default: simulated)
	SimulatedLatency time.Duration // Delay added to simulated answers (default: 0)
	WidgetDelay      time.Duration // Simulated widget time in "bank selection" (default: 0)
	PendingLinkTTL   time.Duration // How long a hosted widget may stay open (default: 30m)
	HealthSchedule   string        // Cron spec with seconds (default: every 30s)

	SessionTTL           time.Duration // Session token lifetime (default: 12h)
	SessionIssuer        string        // Session token issuer (default: finlink)
	SessionKeyFile       string        // Optional: Ed25519 PKCS8 PEM; generated per start when empty
	CredentialSecret     string        // Optional: seals the stored access credential when set
	HousekeepingInterval time.Duration // Expired session sweep interval (default: 5m)
}

func LoadConfig() Config {
	return Config{
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		StoreDriver:  strings.ToLower(getEnvOrDefault("STORE_DRIVER", "sqlite")),
		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "finlink.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),

		UseRealAPI:       getEnvBoolOrDefault("PLAID_USE_REAL_API", false),
		APIURL:           os.Getenv("PLAID_API_URL"),
		GatewayTimeout:   getEnvDurationOrDefault("GATEWAY_TIMEOUT", 10*time.Second),
		GatewayMode:      getEnvOrDefault("GATEWAY_MODE", "fallback"),
		WidgetMode:       getEnvOrDefault("WIDGET_MODE", "simulated"),
		SimulatedLatency: getEnvDurationOrDefault("SIMULATED_LATENCY", 0),
		WidgetDelay:      getEnvDurationOrDefault("WIDGET_DELAY", 0),
		PendingLinkTTL:   getEnvDurationOrDefault("PENDING_LINK_TTL", 30*time.Minute),
		HealthSchedule:   getEnvOrDefault("HEALTH_CHECK_SCHEDULE", "*/30 * * * * *"),

		SessionTTL:           getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),
		SessionIssuer:        getEnvOrDefault("SESSION_ISSUER", "finlink"),
		SessionKeyFile:       os.Getenv("SESSION_KEY_FILE"),
		CredentialSecret:     os.Getenv("CREDENTIAL_SECRET"),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 5*time.Minute),
	}
}

// LoadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
